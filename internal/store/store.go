// README: Firestore-backed document store consumed by all modules.
package store

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
)

const (
	ordersCollection      = "orders"
	restaurantsCollection = "restaurants"

	defaultOpTimeout = 10 * time.Second
)

// Store wraps the Firestore client behind the operations the dashboard
// needs: push-based watches, one-shot reads and single-field updates. Live
// watches run until their context is cancelled; one-shot calls get a
// per-operation timeout.
type Store struct {
	client    *firestore.Client
	opTimeout time.Duration
	log       *slog.Logger
}

type Option func(*Store)

// WithOpTimeout overrides the one-shot read/write timeout.
func WithOpTimeout(d time.Duration) Option {
	return func(s *Store) { s.opTimeout = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(client *firestore.Client, opts ...Option) *Store {
	s := &Store{
		client:    client,
		opTimeout: defaultOpTimeout,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}
