package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"salonpos/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const methodColumns = `id::text, tenant_id::text, name, kind, installment_limit, active, created_at`

func (r *postgresRepo) ListMethods(ctx context.Context, tenantID string, activeOnly bool) ([]domain.PaymentMethod, error) {
	q := `
SELECT ` + methodColumns + `
FROM payment_methods
WHERE tenant_id = $1
`
	if activeOnly {
		q += `  AND active
`
	}
	q += `ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Kind, &m.InstallmentLimit, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetMethod(ctx context.Context, tenantID, id string) (*domain.PaymentMethod, error) {
	const q = `
SELECT ` + methodColumns + `
FROM payment_methods
WHERE tenant_id = $1 AND id = $2
`
	var m domain.PaymentMethod
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(&m.ID, &m.TenantID, &m.Name, &m.Kind, &m.InstallmentLimit, &m.Active, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) CreatePayment(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	const q = `
INSERT INTO payments (treatment_id, method_id, amount_cents, installments)
VALUES ($1, $2, $3, $4)
RETURNING id::text, treatment_id::text, method_id::text, amount_cents, installments, created_at
`
	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, in.TreatmentID, in.MethodID, in.AmountCents, in.Installments).Scan(
		&p.ID, &p.TreatmentID, &p.MethodID, &p.AmountCents, &p.Installments, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) ListByTreatment(ctx context.Context, treatmentID string) ([]domain.Payment, error) {
	const q = `
SELECT id::text, treatment_id::text, method_id::text, amount_cents, installments, created_at
FROM payments
WHERE treatment_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TreatmentID, &p.MethodID, &p.AmountCents, &p.Installments, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
