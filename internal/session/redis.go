package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobportal/internal/auth"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so logins survive process restarts and
// are shared across replicas. Expiry rides on the Redis key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore with the given session TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context, p auth.Principal) (string, error) {
	token := newToken()

	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode session principal: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*auth.Principal, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	var p auth.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode session principal: %w", err)
	}
	return &p, nil
}

// Refresh replaces the stored principal without rotating the token,
// preserving the remaining TTL. Unknown tokens are ignored.
func (s *RedisStore) Refresh(ctx context.Context, token string, p auth.Principal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session principal: %w", err)
	}
	// SetXX only touches existing keys, so an expired session never comes
	// back. It reports redis.Nil for a missing key, which is not a failure.
	err = s.client.SetXX(ctx, sessionKey(token), payload, redis.KeepTTL).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
