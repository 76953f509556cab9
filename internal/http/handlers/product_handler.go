// README: Product CRUD handlers over the restaurant menu.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/catalog"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalogSvc *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogSvc}
}

func (h *ProductHandler) List(c *gin.Context) {
	menu, err := h.catalog.Menu(c.Request.Context(), middleware.RestaurantID(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": menu})
}

func (h *ProductHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context(), middleware.RestaurantID(c))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

type productReq struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Img      string `json:"img"`
	IsThere  bool   `json:"isThere"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.catalog.AddProduct(c.Request.Context(), middleware.RestaurantID(c), catalog.ProductInput{
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
		Img:      req.Img,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), middleware.RestaurantID(c), c.Param("id"), catalog.ProductInput{
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
		Img:      req.Img,
		IsThere:  req.IsThere,
	})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.catalog.RemoveProduct(c.Request.Context(), middleware.RestaurantID(c), c.Param("id"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
