package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL bounds how long a pending external login attempt stays valid.
const stateTTL = 10 * time.Minute

// StateStore holds single-use OAuth state nonces in Redis.
// Key format: oauth:state:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Save records a freshly issued state nonce (expires after stateTTL).
func (s *StateStore) Save(ctx context.Context, state string) error {
	return s.client.Set(ctx, s.key(state), "1", stateTTL).Err()
}

// Consume removes the nonce and reports whether it existed. A state can only
// ever be consumed once, which defeats replayed or forged callbacks.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, s.key(state)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume state: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return "oauth:state:" + state
}
