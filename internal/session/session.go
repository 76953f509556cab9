// README: Redis-backed admin sessions with an explicit lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"oxa/internal/types"
)

// ErrNoSession means the token is unknown or expired.
var ErrNoSession = errors.New("session not found")

const keyPrefix = "session:%s"

// Manager maps opaque session tokens to the restaurant an admin operates.
// The mapping lives in Redis with a TTL, so there is no ambient process-wide
// "current restaurant": every request resolves its token explicitly.
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewManager(r *redis.Client, ttl time.Duration) *Manager {
	return &Manager{redis: r, ttl: ttl}
}

// Create opens a session for restaurantID and returns its token.
func (m *Manager) Create(ctx context.Context, restaurantID types.ID) (string, error) {
	token := uuid.NewString()
	if err := m.redis.Set(ctx, sessionKey(token), string(restaurantID), m.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Resolve returns the restaurant a token belongs to, refreshing its TTL.
func (m *Manager) Resolve(ctx context.Context, token string) (types.ID, error) {
	val, err := m.redis.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("resolving session: %w", err)
	}
	// Sliding expiry; a dashboard left open through a shift stays signed in.
	_ = m.redis.Expire(ctx, sessionKey(token), m.ttl).Err()
	return types.ID(val), nil
}

// Clear ends a session. Clearing an unknown token is not an error.
func (m *Manager) Clear(ctx context.Context, token string) error {
	return m.redis.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf(keyPrefix, token)
}
