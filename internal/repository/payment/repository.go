package payment

import (
	"context"

	"salonpos/internal/domain"
)

type CreatePaymentInput struct {
	TreatmentID  string
	MethodID     string
	AmountCents  int64
	Installments int
}

type Repository interface {
	ListMethods(ctx context.Context, tenantID string, activeOnly bool) ([]domain.PaymentMethod, error)
	GetMethod(ctx context.Context, tenantID, id string) (*domain.PaymentMethod, error)
	CreatePayment(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	ListByTreatment(ctx context.Context, treatmentID string) ([]domain.Payment, error)
}
