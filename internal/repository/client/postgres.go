package client

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

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Client, error) {
	const q = `
SELECT id::text, tenant_id::text, name, contract, created_at
FROM clients
WHERE tenant_id = $1 AND id = $2
`
	var c domain.Client
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(&c.ID, &c.TenantID, &c.Name, &c.Contract, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Client, error) {
	const q = `
SELECT id::text, tenant_id::text, name, contract, created_at
FROM clients
WHERE tenant_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Contract, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	const q = `
INSERT INTO clients (tenant_id, name, contract)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	var out domain.Client
	err := r.pool.QueryRow(ctx, q, client.TenantID, client.Name, client.Contract).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	out.TenantID = client.TenantID
	out.Name = client.Name
	out.Contract = client.Contract
	return &out, nil
}
