package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shrinklab/shrink/internal/redirect"
	"github.com/shrinklab/shrink/internal/shortener"
)

const pgUniqueViolation = "23505"

const urlColumns = `id, original_url, short_code, owner_id, click_count, created_at, expires_at, max_clicks, one_time_use`

// PostgresURLStore is a PostgreSQL implementation of shortener.Repository
// and redirect.RecordStore.
type PostgresURLStore struct {
	pool *pgxpool.Pool
}

// NewPostgresURLStore creates a PostgreSQL-backed URL store.
func NewPostgresURLStore(pool *pgxpool.Pool) *PostgresURLStore {
	return &PostgresURLStore{pool: pool}
}

func (p *PostgresURLStore) Create(ctx context.Context, params shortener.CreateParams) (*shortener.URL, error) {
	query := `
		INSERT INTO short_urls (original_url, short_code, owner_id, expires_at, max_clicks, one_time_use)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + urlColumns

	row := p.pool.QueryRow(ctx, query,
		params.OriginalURL,
		params.ShortCode,
		params.OwnerID,
		params.ExpiresAt,
		params.MaxClicks,
		params.OneTimeUse,
	)

	url, err := scanURL(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, shortener.ErrDuplicateCode
		}

		return nil, err
	}

	return url, nil
}

func (p *PostgresURLStore) FindByCode(ctx context.Context, code string) (*shortener.URL, error) {
	query := `SELECT ` + urlColumns + ` FROM short_urls WHERE short_code = $1`

	return p.queryOne(ctx, query, code)
}

func (p *PostgresURLStore) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*shortener.URL, error) {
	query := `SELECT ` + urlColumns + ` FROM short_urls WHERE id = $1 AND owner_id = $2`

	return p.queryOne(ctx, query, id, ownerID)
}

func (p *PostgresURLStore) Update(ctx context.Context, id, ownerID int64, params shortener.UpdateParams) (*shortener.URL, error) {
	// COALESCE keeps columns whose params are nil. The CASE forces the
	// click ceiling to one whenever the record ends up one-time-use, in
	// the same statement so no intermediate row state is ever visible.
	query := `
		UPDATE short_urls
		SET original_url = COALESCE($3, original_url),
		    expires_at   = COALESCE($4, expires_at),
		    one_time_use = COALESCE($6, one_time_use),
		    max_clicks   = CASE WHEN COALESCE($6, one_time_use) THEN 1
		                        ELSE COALESCE($5, max_clicks) END
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + urlColumns

	return p.queryOne(ctx, query, id, ownerID,
		params.OriginalURL, params.ExpiresAt, params.MaxClicks, params.OneTimeUse,
	)
}

func (p *PostgresURLStore) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM short_urls WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresURLStore) ListByOwner(ctx context.Context, ownerID int64) ([]*shortener.URL, error) {
	query := `SELECT ` + urlColumns + ` FROM short_urls WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []*shortener.URL

	for rows.Next() {
		url, err := scanURL(rows)
		if err != nil {
			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// Resolve implements redirect.RecordStore. The row lock serializes
// concurrent redirects for the same code, so increment-and-check races
// cannot double-admit a max_clicks or one-time-use record.
func (p *PostgresURLStore) Resolve(
	ctx context.Context,
	code string,
	apply func(*shortener.URL) (redirect.Mutation, error),
) (*shortener.URL, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin redirect tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`SELECT `+urlColumns+` FROM short_urls WHERE short_code = $1 FOR UPDATE`, code)

	url, err := scanURL(row)
	if err != nil {
		return nil, err
	}

	mut, err := apply(url)
	if err != nil {
		return nil, err
	}

	if mut.IncrementClicks || mut.ExpireAt != nil {
		row = tx.QueryRow(ctx, `
			UPDATE short_urls
			SET click_count = click_count + $2,
			    expires_at  = COALESCE($3, expires_at)
			WHERE id = $1
			RETURNING `+urlColumns,
			url.ID, boolToInt(mut.IncrementClicks), mut.ExpireAt)

		url, err = scanURL(row)
		if err != nil {
			return nil, fmt.Errorf("persist redirect mutation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit redirect tx: %w", err)
	}

	return url, nil
}

func (p *PostgresURLStore) queryOne(ctx context.Context, query string, args ...any) (*shortener.URL, error) {
	return scanURL(p.pool.QueryRow(ctx, query, args...))
}

func scanURL(row pgx.Row) (*shortener.URL, error) {
	var url shortener.URL

	err := row.Scan(
		&url.ID,
		&url.OriginalURL,
		&url.ShortCode,
		&url.OwnerID,
		&url.ClickCount,
		&url.CreatedAt,
		&url.ExpiresAt,
		&url.MaxClicks,
		&url.OneTimeUse,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &url, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// Compile-time checks.
var (
	_ shortener.Repository = (*PostgresURLStore)(nil)
	_ redirect.RecordStore = (*PostgresURLStore)(nil)
)
