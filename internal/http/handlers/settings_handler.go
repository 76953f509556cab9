// README: Store settings read/update handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/catalog"
	"oxa/internal/types"
)

type SettingsHandler struct {
	catalog *catalog.Service
}

func NewSettingsHandler(catalogSvc *catalog.Service) *SettingsHandler {
	return &SettingsHandler{catalog: catalogSvc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	r, err := h.catalog.Restaurant(c.Request.Context(), middleware.RestaurantID(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

type settingsReq struct {
	Name          *string           `json:"name"`
	Banner        *string           `json:"banner"`
	Category      []string          `json:"category"`
	WorkTime      *catalog.WorkTime `json:"workTime"`
	DeliveryPrice *int64            `json:"deliveryPrice"`
	City          *string           `json:"city"`
	Location      *types.Point      `json:"location"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.catalog.UpdateSettings(c.Request.Context(), middleware.RestaurantID(c), catalog.SettingsInput{
		Name:          req.Name,
		Banner:        req.Banner,
		Category:      req.Category,
		WorkTime:      req.WorkTime,
		DeliveryPrice: req.DeliveryPrice,
		City:          req.City,
		Location:      req.Location,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
