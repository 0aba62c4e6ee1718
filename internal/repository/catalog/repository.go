package catalog

import (
	"context"

	"salonpos/internal/domain"
)

type Repository interface {
	Search(ctx context.Context, tenantID, query string, activeOnly bool) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.CatalogItem, error)
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}
