// README: Order collection reads, watches and the guarded status update.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"oxa/internal/modules/order"
	"oxa/internal/types"
)

func (s *Store) orderQuery(restaurantID types.ID, f order.StatusFilter) firestore.Query {
	q := s.client.Collection(ordersCollection).
		Where("restaurantId", "==", string(restaurantID))
	if f.Op != "" {
		q = q.Where("status", f.Op, string(f.Status))
	}
	return q
}

// WatchOrders streams snapshots of the matching orders until ctx is
// cancelled. A stream failure is delivered as an Event with Err set, after
// which the channel closes; resubscription is the caller's decision.
func (s *Store) WatchOrders(ctx context.Context, restaurantID types.ID, f order.StatusFilter) <-chan order.Event {
	out := make(chan order.Event, 1)
	snaps := s.orderQuery(restaurantID, f).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				s.log.Warn("order watch stream failed",
					"restaurant_id", restaurantID, "error", err)
				select {
				case out <- order.Event{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			orders, err := s.decodeOrders(snap.Documents)
			ev := order.Event{Orders: orders}
			if err != nil {
				s.log.Warn("order snapshot iteration failed",
					"restaurant_id", restaurantID, "error", err)
				ev = order.Event{Err: err}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// GetOrders is the one-shot form of WatchOrders.
func (s *Store) GetOrders(ctx context.Context, restaurantID types.ID, f order.StatusFilter) ([]order.Order, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	docs := s.orderQuery(restaurantID, f).Documents(ctx)
	defer docs.Stop()
	orders, err := s.decodeOrders(docs)
	if err != nil {
		return nil, fmt.Errorf("listing orders for %s: %w", restaurantID, err)
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	doc, err := s.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %s: %w", id, err)
	}
	o, err := decodeOrder(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding order %s: %w", id, err)
	}
	return o, nil
}

// UpdateOrderStatus writes status=to under an expected-current-status
// precondition, inside a transaction. Two admins racing on the same order
// get exactly one accepted write; the other sees order.ErrConflict.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, from, to order.Status) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	ref := s.client.Collection(ordersCollection).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return order.ErrNotFound
			}
			return err
		}
		raw, err := doc.DataAt("status")
		if err != nil {
			return err
		}
		current, _ := raw.(string)
		if order.Status(current) != from {
			return order.ErrConflict
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(to)},
		})
	})
}

// orderDocs is the slice of firestore.DocumentIterator the drain needs.
type orderDocs interface {
	Next() (*firestore.DocumentSnapshot, error)
}

// decodeOrders drains a document iterator. Documents that fail to decode
// are skipped: a malformed order is a display gap, not a feed outage. An
// iteration failure is returned so the caller surfaces the read as broken
// instead of serving a truncated list.
func (s *Store) decodeOrders(docs orderDocs) ([]order.Order, error) {
	var orders []order.Order
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return orders, nil
		}
		if err != nil {
			return nil, err
		}
		o, err := decodeOrder(doc)
		if err != nil {
			s.log.Warn("skipping undecodable order", "order_id", doc.Ref.ID, "error", err)
			continue
		}
		orders = append(orders, *o)
	}
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*order.Order, error) {
	var o order.Order
	if err := doc.DataTo(&o); err != nil {
		return nil, err
	}
	o.ID = doc.Ref.ID
	return &o, nil
}
