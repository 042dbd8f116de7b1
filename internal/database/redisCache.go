package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisDedupeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDedupeCache(client *redis.Client, ttl time.Duration) DedupeCache {
	return &redisDedupeCache{client: client, ttl: ttl}
}

// MarkNotified sets coincidence:notified:<id> if absent. SETNX makes the
// check-and-mark atomic, so two concurrent deliveries of the same event race
// to a single winner.
func (r *redisDedupeCache) MarkNotified(ctx context.Context, coincidenciaID string) (bool, error) {
	key := fmt.Sprintf("coincidence:notified:%s", coincidenciaID)
	first, err := r.client.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark coincidence %s: %w", coincidenciaID, err)
	}
	return first, nil
}
