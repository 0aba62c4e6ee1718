package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type itemSeed struct {
	SKU        string
	Name       string
	Kind       string
	PriceCents int64
	Fractional bool
	StockQty   int64
}

type methodSeed struct {
	Name             string
	Kind             string
	InstallmentLimit int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	tenantID, err := ensureTenant(ctx, pool, "default", "Demo Salon")
	if err != nil {
		return fmt.Errorf("ensure tenant: %w", err)
	}

	items := []itemSeed{
		{SKU: "SV-CUT", Name: "Haircut", Kind: "service", PriceCents: 6000},
		{SKU: "SV-COLOR", Name: "Coloring", Kind: "service", PriceCents: 18000},
		{SKU: "IT-SHAMPOO", Name: "Shampoo 300ml", Kind: "item", PriceCents: 2500, StockQty: 24},
		{SKU: "IT-OIL", Name: "Argan Oil", Kind: "item", PriceCents: 4500, Fractional: true, StockQty: 10},
	}
	for _, it := range items {
		if err := upsertItem(ctx, pool, tenantID, it); err != nil {
			return fmt.Errorf("upsert item %s: %w", it.SKU, err)
		}
	}

	methods := []methodSeed{
		{Name: "Cash", Kind: "cash", InstallmentLimit: 1},
		{Name: "Pix", Kind: "pix", InstallmentLimit: 1},
		{Name: "Credit Card", Kind: "credit_card", InstallmentLimit: 12},
		{Name: "Debit Card", Kind: "debit_card", InstallmentLimit: 1},
	}
	for _, m := range methods {
		if err := upsertMethod(ctx, pool, tenantID, m); err != nil {
			return fmt.Errorf("upsert payment method %s: %w", m.Name, err)
		}
	}

	if err := ensureClient(ctx, pool, tenantID, "Walk-in", false); err != nil {
		return fmt.Errorf("ensure walk-in client: %w", err)
	}
	if err := ensureClient(ctx, pool, tenantID, "Contract Corp", true); err != nil {
		return fmt.Errorf("ensure contract client: %w", err)
	}

	return nil
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, key, name string) (string, error) {
	const q = `
INSERT INTO tenants (key, name)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, key, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertItem(ctx context.Context, pool *pgxpool.Pool, tenantID string, it itemSeed) error {
	const q = `
INSERT INTO catalog_items (tenant_id, sku, name, kind, price_cents, fractional, active, stock_qty)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
ON CONFLICT (tenant_id, sku) DO UPDATE SET
    name = EXCLUDED.name,
    kind = EXCLUDED.kind,
    price_cents = EXCLUDED.price_cents,
    fractional = EXCLUDED.fractional,
    stock_qty = EXCLUDED.stock_qty
`
	_, err := pool.Exec(ctx, q, tenantID, it.SKU, it.Name, it.Kind, it.PriceCents, it.Fractional, it.StockQty)
	return err
}

func upsertMethod(ctx context.Context, pool *pgxpool.Pool, tenantID string, m methodSeed) error {
	const q = `
INSERT INTO payment_methods (tenant_id, name, kind, installment_limit, active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (tenant_id, name) DO UPDATE SET
    kind = EXCLUDED.kind,
    installment_limit = EXCLUDED.installment_limit
`
	_, err := pool.Exec(ctx, q, tenantID, m.Name, m.Kind, m.InstallmentLimit)
	return err
}

func ensureClient(ctx context.Context, pool *pgxpool.Pool, tenantID, name string, contract bool) error {
	const q = `
INSERT INTO clients (tenant_id, name, contract)
SELECT $1, $2, $3
WHERE NOT EXISTS (
    SELECT 1 FROM clients WHERE tenant_id = $1 AND name = $2
)
`
	_, err := pool.Exec(ctx, q, tenantID, name, contract)
	return err
}
