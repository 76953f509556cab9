package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"oxa/internal/http/middleware"
	"oxa/internal/modules/order"
	"oxa/internal/session"
	"oxa/internal/types"
)

type stubResolver struct {
	tokens map[string]types.ID
}

func (r *stubResolver) Resolve(_ context.Context, token string) (types.ID, error) {
	if id, ok := r.tokens[token]; ok {
		return id, nil
	}
	return "", session.ErrNoSession
}

type memOrderStore struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func (s *memOrderStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrderStore) UpdateOrderStatus(_ context.Context, id string, from, to order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if o.Status != from {
		return order.ErrConflict
	}
	o.Status = to
	return nil
}

func newAdvanceRouter(t *testing.T, store *memOrderStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := order.NewService(store, nil, nil)
	h := NewOrderHandler(svc, nil, nil)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Auth(&stubResolver{tokens: map[string]types.ID{"tok-r1": "r1"}}))
	api.POST("/orders/:id/advance", h.Advance)
	return r
}

func testOrders() *memOrderStore {
	return &memOrderStore{orders: map[string]*order.Order{
		"o1": {ID: "o1", RestaurantID: "r1", Status: order.StatusWait},
		"o2": {ID: "o2", RestaurantID: "r1", Status: order.StatusDelivered},
		"o3": {ID: "o3", RestaurantID: "r2", Status: order.StatusWait},
	}}
}

func doAdvance(r *gin.Engine, id, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+id+"/advance", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdvanceRequiresSession(t *testing.T) {
	r := newAdvanceRouter(t, testOrders())

	if w := doAdvance(r, "o1", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}
	if w := doAdvance(r, "o1", "bad-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown token: status = %d, want 401", w.Code)
	}
}

func TestAdvanceMovesOrderOneStep(t *testing.T) {
	store := testOrders()
	r := newAdvanceRouter(t, store)

	w := doAdvance(r, "o1", "tok-r1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != string(order.StatusCooking) {
		t.Fatalf("status = %s, want cooking", resp.Status)
	}
	if got := store.orders["o1"].Status; got != order.StatusCooking {
		t.Fatalf("stored status = %s, want cooking", got)
	}
}

func TestAdvanceDeliveredOrderConflicts(t *testing.T) {
	r := newAdvanceRouter(t, testOrders())

	if w := doAdvance(r, "o2", "tok-r1"); w.Code != http.StatusConflict {
		t.Fatalf("delivered order: status = %d, want 409", w.Code)
	}
}

func TestAdvanceForeignOrderHidden(t *testing.T) {
	store := testOrders()
	r := newAdvanceRouter(t, store)

	// Another restaurant's order reads as missing, not forbidden.
	if w := doAdvance(r, "o3", "tok-r1"); w.Code != http.StatusNotFound {
		t.Fatalf("foreign order: status = %d, want 404", w.Code)
	}
	if got := store.orders["o3"].Status; got != order.StatusWait {
		t.Fatalf("foreign order was mutated to %s", got)
	}
}

func TestAdvanceMissingOrder(t *testing.T) {
	r := newAdvanceRouter(t, testOrders())

	if w := doAdvance(r, "nope", "tok-r1"); w.Code != http.StatusNotFound {
		t.Fatalf("missing order: status = %d, want 404", w.Code)
	}
}
