// README: Dashboard handlers: live counters, revenue trend, top products.
package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/stats"
)

type DashboardHandler struct {
	src stats.Source
	log *slog.Logger
}

func NewDashboardHandler(src stats.Source, log *slog.Logger) *DashboardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DashboardHandler{src: src, log: log}
}

// Metrics streams the four dashboard counters over SSE. Records with
// ready=false mean some slot has not reported yet; the client shows a
// loading state.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	rid := middleware.RestaurantID(c)
	ctx := c.Request.Context()

	records := stats.WatchMetrics(ctx, h.src, rid, h.log)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case rec, ok := <-records:
			if !ok {
				return false
			}
			c.SSEvent("metrics", rec)
			return true
		}
	})
}

// Revenue streams the 12 month revenue buckets over SSE.
func (h *DashboardHandler) Revenue(c *gin.Context) {
	rid := middleware.RestaurantID(c)
	ctx := c.Request.Context()

	trends := stats.WatchMonthlyRevenue(ctx, h.src, rid, h.log)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case t, ok := <-trends:
			if !ok {
				return false
			}
			if t.Err != nil {
				c.SSEvent("trend_error", gin.H{"error": "revenue stream interrupted"})
			}
			c.SSEvent("revenue", t)
			return true
		}
	})
}

// TopProducts returns the five most-ordered products as a one-shot ranking.
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	rid := middleware.RestaurantID(c)

	ranks, err := stats.TopProducts(c.Request.Context(), h.src, rid, stats.DefaultTopProducts)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": ranks})
}
