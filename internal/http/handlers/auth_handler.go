// README: Login/logout handlers backed by credential lookup and sessions.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/catalog"
	"oxa/internal/types"
)

// Sessions is the session lifecycle the auth handlers drive.
type Sessions interface {
	Create(ctx context.Context, restaurantID types.ID) (string, error)
	Clear(ctx context.Context, token string) error
}

type AuthHandler struct {
	catalog  *catalog.Service
	sessions Sessions
}

func NewAuthHandler(catalogSvc *catalog.Service, sessions Sessions) *AuthHandler {
	return &AuthHandler{catalog: catalogSvc, sessions: sessions}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.catalog.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeCatalogError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "restaurantId": id})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
