package cache

import (
	"context"
	"errors"

	"salonpos/internal/domain"
)

// CatalogCache stores catalog search results keyed by tenant and query.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.CatalogItem, error)
	Set(ctx context.Context, key string, items []domain.CatalogItem) error
	Invalidate(ctx context.Context, tenantID string) error
}

var ErrCacheMiss = errors.New("cache miss")
