package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindowStore is a WindowStore backed by Redis, sharing one counter per
// key across all API instances. The counter key carries the window as its
// TTL, so the window rolls over when Redis expires it.
type RedisWindowStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisWindowStore creates a Redis-backed window store.
func NewRedisWindowStore(client redis.UniversalClient) *RedisWindowStore {
	return &RedisWindowStore{
		client:    client,
		keyPrefix: "ratelimit:",
	}
}

// Hit implements WindowStore.
func (s *RedisWindowStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := s.keyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	// NX: only the first hit of a window sets the expiry.
	pipe.ExpireNX(ctx, k, window)
	pttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate limit hit for %q: %w", key, err)
	}

	ttl := pttl.Val()
	if ttl <= 0 {
		ttl = window
	}
	return incr.Val(), ttl, nil
}
