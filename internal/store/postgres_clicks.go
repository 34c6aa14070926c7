package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shrinklab/shrink/internal/clicks"
)

// PostgresClickStore is a PostgreSQL implementation of clicks.Store.
// Rows cascade-delete with their short_urls record.
type PostgresClickStore struct {
	pool *pgxpool.Pool
}

// NewPostgresClickStore creates a PostgreSQL-backed click ledger store.
func NewPostgresClickStore(pool *pgxpool.Pool) *PostgresClickStore {
	return &PostgresClickStore{pool: pool}
}

func (p *PostgresClickStore) Append(ctx context.Context, event *clicks.Event) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO click_logs (url_id, clicked_at, referrer, user_agent, client_address)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))`,
		event.URLID,
		event.ClickedAt,
		event.Referrer,
		event.UserAgent,
		event.ClientIP,
	)

	return err
}

func (p *PostgresClickStore) ListByURL(ctx context.Context, urlID int64) ([]*clicks.Entry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, url_id, clicked_at,
		       COALESCE(referrer, ''), COALESCE(user_agent, ''), COALESCE(client_address, '')
		FROM click_logs
		WHERE url_id = $1
		ORDER BY clicked_at`,
		urlID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*clicks.Entry

	for rows.Next() {
		var entry clicks.Entry

		err := rows.Scan(
			&entry.ID,
			&entry.URLID,
			&entry.ClickedAt,
			&entry.Referrer,
			&entry.UserAgent,
			&entry.ClientIP,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

var _ clicks.Store = (*PostgresClickStore)(nil)
