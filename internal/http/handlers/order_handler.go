// README: Order queue handlers: live SSE feed and status advance.
package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/order"
)

type OrderHandler struct {
	orders  *order.Service
	watcher order.Watcher
	log     *slog.Logger
}

func NewOrderHandler(svc *order.Service, watcher order.Watcher, log *slog.Logger) *OrderHandler {
	if log == nil {
		log = slog.Default()
	}
	return &OrderHandler{orders: svc, watcher: watcher, log: log}
}

// Advance moves one order a single step along the lifecycle. A 409 means
// either a concurrent admin won the race or the order's state has no admin
// action; the client re-renders from the live feed either way.
func (h *OrderHandler) Advance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}

	next, err := h.orders.RequestAdvance(c.Request.Context(), middleware.RestaurantID(c), id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "status": next})
}

// Feed streams the live order queue over SSE. Events:
//   - "orders": the full sorted undelivered queue (optionally filtered by
//     ?status=...)
//   - "new_order": fired once per arrival after the client has unlocked
//     audio (?unlocked=1)
//   - "feed_error": the store stream failed; the queue shown is the last
//     good one
//
// The subscription lives exactly as long as the request: client disconnect
// cancels the request context, which releases the store listener.
func (h *OrderHandler) Feed(c *gin.Context) {
	rid := middleware.RestaurantID(c)
	ctx := c.Request.Context()

	feed := order.NewFeed(h.watcher)
	go feed.Run(ctx)
	feed.SetRestaurant(rid)

	notifier := order.NewNotifier(nil, h.log)
	if c.Query("unlocked") == "1" {
		notifier.Unlock()
	}

	var filter order.Status
	if s := order.Status(c.Query("status")); s.Valid() {
		filter = s
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, ok := <-feed.Snapshots():
			if !ok {
				return false
			}
			if notifier.Observe(snap.Orders) {
				c.SSEvent("new_order", gin.H{"undelivered": len(snap.Orders)})
			}
			if snap.Err != nil {
				c.SSEvent("feed_error", gin.H{"error": "order stream interrupted"})
			}
			visible := snap.Orders
			if filter != "" {
				visible = order.FilterByStatus(visible, filter)
			}
			c.SSEvent("orders", visible)
			return true
		}
	})
}
