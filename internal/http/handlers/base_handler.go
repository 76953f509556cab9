// README: Shared handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/modules/catalog"
	"oxa/internal/modules/order"
	"oxa/internal/upload"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrConflict), errors.Is(err, order.ErrNoTransition):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrProductNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrBadCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, catalog.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrRateLimited):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "failed to upload image")
	}
}
