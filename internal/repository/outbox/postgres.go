package outbox

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"salonpos/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Unprocessed(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	const q = `
SELECT id::text, topic, payload, created_at, processed_at
FROM outbox_events
WHERE processed_at IS NULL
ORDER BY created_at ASC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OutboxEvent
	for rows.Next() {
		var ev domain.OutboxEvent
		if err := rows.Scan(&ev.ID, &ev.Topic, &ev.Payload, &ev.CreatedAt, &ev.ProcessedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) MarkProcessed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE outbox_events
SET processed_at = now()
WHERE id = $1
`, id)
	return err
}
