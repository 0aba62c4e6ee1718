package client

import (
	"context"

	"salonpos/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Client, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
}
