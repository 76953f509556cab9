// README: Order service implements admin-triggered status advances.
package order

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"oxa/internal/types"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrConflict     = errors.New("order status changed concurrently")
	ErrNoTransition = errors.New("no admin transition from current status")
)

// Store is the slice of the document store the service needs: a point read
// and the single guarded status update.
type Store interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	// UpdateOrderStatus writes status=to only if the stored status still
	// equals from, and returns ErrConflict otherwise.
	UpdateOrderStatus(ctx context.Context, id string, from, to Status) error
}

// TransitionEvent records one accepted status advance for the audit log.
type TransitionEvent struct {
	OrderID      string
	RestaurantID types.ID
	FromStatus   Status
	ToStatus     Status
	CreatedAt    time.Time
}

// EventSink receives transition events. Appends are best-effort: a sink
// failure never fails the advance that produced the event.
type EventSink interface {
	AppendTransition(ctx context.Context, e TransitionEvent) error
}

type Service struct {
	store  Store
	events EventSink
	log    *slog.Logger
}

// NewService wires the order service. events may be nil when no audit log is
// configured.
func NewService(store Store, events EventSink, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, events: events, log: log}
}

// RequestAdvance moves the order one step along the lifecycle per the
// transition table and returns the new status. The order must belong to
// restaurantID; another restaurant's order reads as ErrNotFound so order
// ids are not probeable. The write carries an expected-current-status
// precondition, so two admins racing on the same order produce exactly one
// accepted advance; the loser gets ErrConflict and the caller rolls its
// optimistic UI back. Orders in a state with no admin transition return
// ErrNoTransition without touching the store.
func (s *Service) RequestAdvance(ctx context.Context, restaurantID types.ID, orderID string) (Status, error) {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.RestaurantID != restaurantID {
		return "", ErrNotFound
	}

	next, ok := Next(o.Status, o.Pickup)
	if !ok {
		return o.Status, ErrNoTransition
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, o.Status, next); err != nil {
		return o.Status, err
	}

	if s.events != nil {
		e := TransitionEvent{
			OrderID:      orderID,
			RestaurantID: o.RestaurantID,
			FromStatus:   o.Status,
			ToStatus:     next,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.events.AppendTransition(ctx, e); err != nil {
			s.log.Warn("transition event append failed",
				"order_id", orderID, "error", err)
		}
	}
	return next, nil
}
