package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"salonpos/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 2 * time.Minute,
	}
}

// RedisCache is a read-through cache for catalog searches. Entries are
// short-lived; stock changes make long TTLs misleading.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]domain.CatalogItem, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal catalog entries failed: %w", err)
	}
	return items, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, items []domain.CatalogItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal catalog entries failed: %w", err)
	}

	// Jitter spreads expirations of entries written in a burst.
	jitter := time.Duration(rand.Intn(30)) * time.Second
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, tenantID string) error {
	iter := r.client.Scan(ctx, 0, fmt.Sprintf("catalog:%s:*", tenantID), 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}

// SearchKey builds the cache key for one tenant's search.
func SearchKey(tenantID, query string, activeOnly bool) string {
	return fmt.Sprintf("catalog:%s:%t:%s", tenantID, activeOnly, query)
}
