package catalog

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

const itemColumns = `id::text, tenant_id::text, sku, name, kind, price_cents, fractional, active, stock_qty, created_at`

func (r *postgresRepo) Search(ctx context.Context, tenantID, query string, activeOnly bool) ([]domain.CatalogItem, error) {
	q := `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE tenant_id = $1
  AND (name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%')
`
	if activeOnly {
		q += `  AND active
`
	}
	q += `ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, q, tenantID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		components, err := r.loadComponents(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Components = components
	}
	return items, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.CatalogItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE tenant_id = $1 AND id = $2
`
	row := r.pool.QueryRow(ctx, q, tenantID, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	components, err := r.loadComponents(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Components = components
	return item, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	const q = `
INSERT INTO catalog_items (tenant_id, sku, name, kind, price_cents, fractional, active, stock_qty)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (tenant_id, sku) DO UPDATE
SET name = EXCLUDED.name,
    kind = EXCLUDED.kind,
    price_cents = EXCLUDED.price_cents,
    fractional = EXCLUDED.fractional,
    active = EXCLUDED.active,
    stock_qty = EXCLUDED.stock_qty
RETURNING id::text, created_at
`
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := item
	err = tx.QueryRow(ctx, q,
		item.TenantID, item.SKU, item.Name, item.Kind,
		item.PriceCents, item.Fractional, item.Active, item.StockQty,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Re-declaring an item replaces its component list wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM item_components WHERE item_id = $1`, out.ID); err != nil {
		return nil, err
	}
	for _, c := range item.Components {
		_, err := tx.Exec(ctx,
			`INSERT INTO item_components (item_id, supply_id, qty_per_unit) VALUES ($1, $2, $3)`,
			out.ID, c.SupplyID, c.QtyPerUnit,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) loadComponents(ctx context.Context, itemID string) ([]domain.ItemComponent, error) {
	const q = `
SELECT ic.supply_id::text, s.stock_qty, ic.qty_per_unit
FROM item_components ic
JOIN catalog_items s ON s.id = ic.supply_id
WHERE ic.item_id = $1
`
	rows, err := r.pool.Query(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ItemComponent
	for rows.Next() {
		var c domain.ItemComponent
		if err := rows.Scan(&c.SupplyID, &c.SupplyStockQty, &c.QtyPerUnit); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanItem(row pgx.Row) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.SKU,
		&item.Name,
		&item.Kind,
		&item.PriceCents,
		&item.Fractional,
		&item.Active,
		&item.StockQty,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
