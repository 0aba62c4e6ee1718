package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"salonpos/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewRedisCache(client), mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	key := SearchKey("t1", "sham", true)

	items := []domain.CatalogItem{
		{ID: "i1", TenantID: "t1", SKU: "IT-SHAMPOO", Name: "Shampoo", Kind: domain.ItemKindProduct, PriceCents: 2500, StockQty: 3},
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, string(data)))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "IT-SHAMPOO", got[0].SKU)
	assert.Equal(t, int64(2500), got[0].PriceCents)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := cache.Get(context.Background(), SearchKey("t1", "nothing", true))
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	key := SearchKey("t1", "sham", true)
	require.NoError(t, mr.Set(key, "{not json"))

	_, err := cache.Get(context.Background(), key)
	require.ErrorContains(t, err, "unmarshal catalog entries failed")
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	key := SearchKey("t1", "sham", true)
	err := cache.Set(context.Background(), key, []domain.CatalogItem{{ID: "i1"}})
	require.NoError(t, err)

	ttl := mr.TTL(key)
	assert.True(t, ttl >= 2*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= 2*time.Minute+30*time.Second, "TTL should be base + max jitter")
}

func TestInvalidate_TenantScoped(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(SearchKey("t1", "a", true), "[]"))
	require.NoError(t, mr.Set(SearchKey("t1", "b", false), "[]"))
	require.NoError(t, mr.Set(SearchKey("t2", "a", true), "[]"))

	require.NoError(t, cache.Invalidate(context.Background(), "t1"))

	assert.False(t, mr.Exists(SearchKey("t1", "a", true)))
	assert.False(t, mr.Exists(SearchKey("t1", "b", false)))
	assert.True(t, mr.Exists(SearchKey("t2", "a", true)), "other tenants keep their entries")
}

func TestSearchKey_Format(t *testing.T) {
	assert.Equal(t, "catalog:t1:true:sham", SearchKey("t1", "sham", true))
	assert.Equal(t, "catalog:t1:false:", SearchKey("t1", "", false))
}
