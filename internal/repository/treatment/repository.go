package treatment

import (
	"context"

	"salonpos/internal/domain"
)

type CreateTreatmentInput struct {
	TenantID      string
	ClientID      string
	DiscountCents int64
}

type AddLineInput struct {
	ItemID         string
	Name           string
	Kind           string
	QuantityMils   int64
	UnitPriceCents int64
	DiscountCents  int64
	TotalCents     int64
}

type Repository interface {
	Create(ctx context.Context, in CreateTreatmentInput) (*domain.Treatment, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Treatment, error)
	AddLine(ctx context.Context, treatmentID string, in AddLineInput) (*domain.TreatmentLine, error)
	DeleteLine(ctx context.Context, treatmentID, lineID string) error
	SetDiscount(ctx context.Context, tenantID, treatmentID string, discountCents int64) error
	// Close flips the treatment to closed and writes the outbox event in
	// the same transaction.
	Close(ctx context.Context, tenantID, treatmentID string, eventPayload []byte) error
}
