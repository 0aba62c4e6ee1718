package treatment

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

const treatmentColumns = `id::text, tenant_id::text, client_id::text, status, discount_cents, total_cents, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateTreatmentInput) (*domain.Treatment, error) {
	const q = `
INSERT INTO treatments (tenant_id, client_id, status, discount_cents, total_cents)
VALUES ($1, $2, 'open', $3, 0)
RETURNING ` + treatmentColumns + `
`
	var t domain.Treatment
	err := r.pool.QueryRow(ctx, q, in.TenantID, in.ClientID, in.DiscountCents).Scan(
		&t.ID, &t.TenantID, &t.ClientID, &t.Status, &t.DiscountCents, &t.TotalCents, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Treatment, error) {
	const q = `
SELECT ` + treatmentColumns + `
FROM treatments
WHERE tenant_id = $1 AND id = $2
`
	var t domain.Treatment
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.ClientID, &t.Status, &t.DiscountCents, &t.TotalCents, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, treatment_id::text, item_id::text, name, kind, quantity_mils, unit_price_cents, discount_cents, total_cents, created_at
FROM treatment_lines
WHERE treatment_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, t.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.TreatmentLine
		if err := rows.Scan(
			&line.ID,
			&line.TreatmentID,
			&line.ItemID,
			&line.Name,
			&line.Kind,
			&line.QuantityMils,
			&line.UnitPriceCents,
			&line.DiscountCents,
			&line.TotalCents,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		t.Lines = append(t.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *postgresRepo) AddLine(ctx context.Context, treatmentID string, in AddLineInput) (*domain.TreatmentLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var line domain.TreatmentLine
	err = tx.QueryRow(ctx, `
INSERT INTO treatment_lines (treatment_id, item_id, name, kind, quantity_mils, unit_price_cents, discount_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text, treatment_id::text, item_id::text, name, kind, quantity_mils, unit_price_cents, discount_cents, total_cents, created_at
`, treatmentID, in.ItemID, in.Name, in.Kind, in.QuantityMils, in.UnitPriceCents, in.DiscountCents, in.TotalCents).Scan(
		&line.ID,
		&line.TreatmentID,
		&line.ItemID,
		&line.Name,
		&line.Kind,
		&line.QuantityMils,
		&line.UnitPriceCents,
		&line.DiscountCents,
		&line.TotalCents,
		&line.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := updateTreatmentTotal(ctx, tx, treatmentID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) DeleteLine(ctx context.Context, treatmentID, lineID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
DELETE FROM treatment_lines
WHERE id = $1 AND treatment_id = $2
`, lineID, treatmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := updateTreatmentTotal(ctx, tx, treatmentID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetDiscount(ctx context.Context, tenantID, treatmentID string, discountCents int64) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE treatments
SET discount_cents = $1
WHERE tenant_id = $2 AND id = $3 AND status = 'open'
`, discountCents, tenantID, treatmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Close(ctx context.Context, tenantID, treatmentID string, eventPayload []byte) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE treatments
SET status = 'closed'
WHERE tenant_id = $1 AND id = $2 AND status = 'open'
`, tenantID, treatmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO outbox_events (topic, payload)
VALUES ('treatment-closed', $1)
`, eventPayload); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func updateTreatmentTotal(ctx context.Context, tx pgx.Tx, treatmentID string) error {
	_, err := tx.Exec(ctx, `
UPDATE treatments
SET total_cents = COALESCE((
	SELECT SUM(total_cents)
	FROM treatment_lines
	WHERE treatment_id = $1
), 0)
WHERE id = $1
`, treatmentID)
	return err
}
