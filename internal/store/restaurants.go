// README: Restaurant document reads, watches and menu array mutations.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"oxa/internal/modules/catalog"
	"oxa/internal/types"
)

func (s *Store) restaurantRef(id types.ID) *firestore.DocumentRef {
	return s.client.Collection(restaurantsCollection).Doc(string(id))
}

// WatchRestaurant streams the restaurant document until ctx is cancelled.
// A deleted or missing document is delivered as catalog.ErrNotFound without
// ending the stream; the document may reappear.
func (s *Store) WatchRestaurant(ctx context.Context, id types.ID) <-chan catalog.Event {
	out := make(chan catalog.Event, 1)
	snaps := s.restaurantRef(id).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			doc, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				s.log.Warn("restaurant watch stream failed",
					"restaurant_id", id, "error", err)
				select {
				case out <- catalog.Event{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			ev := catalog.Event{}
			if !doc.Exists() {
				ev.Err = catalog.ErrNotFound
			} else if r, err := decodeRestaurant(doc); err != nil {
				ev.Err = err
			} else {
				ev.Restaurant = r
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

func (s *Store) GetRestaurant(ctx context.Context, id types.ID) (*catalog.Restaurant, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	doc, err := s.restaurantRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting restaurant %s: %w", id, err)
	}
	return decodeRestaurant(doc)
}

func (s *Store) UpdateRestaurantFields(ctx context.Context, id types.ID, fields map[string]any) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.restaurantRef(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return catalog.ErrNotFound
	}
	return err
}

// AddMenuProduct appends one product to the menu array.
func (s *Store) AddMenuProduct(ctx context.Context, id types.ID, p catalog.Product) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.restaurantRef(id).Update(ctx, []firestore.Update{
		{Path: "menu", Value: firestore.ArrayUnion(p)},
	})
	if status.Code(err) == codes.NotFound {
		return catalog.ErrNotFound
	}
	return err
}

// RemoveMenuProduct removes by whole-element equality, so p must match the
// stored element exactly.
func (s *Store) RemoveMenuProduct(ctx context.Context, id types.ID, p catalog.Product) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.restaurantRef(id).Update(ctx, []firestore.Update{
		{Path: "menu", Value: firestore.ArrayRemove(p)},
	})
	if status.Code(err) == codes.NotFound {
		return catalog.ErrNotFound
	}
	return err
}

// ReplaceMenuProduct swaps a menu element in two array updates, the same way
// the admin UI always edited products. The brief window where the element is
// absent is acceptable for a single-admin workload.
func (s *Store) ReplaceMenuProduct(ctx context.Context, id types.ID, old, updated catalog.Product) error {
	if err := s.RemoveMenuProduct(ctx, id, old); err != nil {
		return err
	}
	return s.AddMenuProduct(ctx, id, updated)
}

// FindRestaurantByAdmin resolves admin credentials with an equality query on
// the embedded admin fields.
func (s *Store) FindRestaurantByAdmin(ctx context.Context, username, password string) (types.ID, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	docs := s.client.Collection(restaurantsCollection).
		Where("admin.username", "==", username).
		Where("admin.password", "==", password).
		Limit(1).
		Documents(ctx)
	defer docs.Stop()

	doc, err := docs.Next()
	if err == iterator.Done {
		return "", catalog.ErrBadCredentials
	}
	if err != nil {
		return "", fmt.Errorf("admin lookup: %w", err)
	}
	return types.ID(doc.Ref.ID), nil
}

func decodeRestaurant(doc *firestore.DocumentSnapshot) (*catalog.Restaurant, error) {
	var r catalog.Restaurant
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("decoding restaurant %s: %w", doc.Ref.ID, err)
	}
	r.ID = types.ID(doc.Ref.ID)
	return &r, nil
}
