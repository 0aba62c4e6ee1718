package outbox

import (
	"context"

	"salonpos/internal/domain"
)

type Repository interface {
	Unprocessed(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string) error
}
