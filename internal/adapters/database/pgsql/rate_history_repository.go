// Package pgsql persists fetched exchange rates for reporting screens.
package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// PgxRateHistoryRepository implements ports.RateHistoryRepository using
// pgxpool. One row is written per currency per fetch; refetches of the same
// provider date overwrite the prior value.
type PgxRateHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRateHistoryRepository creates a new PgxRateHistoryRepository.
func NewPgxRateHistoryRepository(pool *pgxpool.Pool) *PgxRateHistoryRepository {
	return &PgxRateHistoryRepository{pool: pool}
}

// SaveRateSet upserts every multiplier of set as one history row.
func (r *PgxRateHistoryRepository) SaveRateSet(ctx context.Context, set domain.ExchangeRateSet, source string) error {
	batch := &pgx.Batch{}
	now := time.Now()
	for code, rate := range set.Rates {
		batch.Queue(`
			INSERT INTO rate_history (
				entry_id, base_currency, currency_code, rate, rate_date, source, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (base_currency, currency_code, rate_date)
			DO UPDATE SET rate = EXCLUDED.rate, source = EXCLUDED.source, created_at = EXCLUDED.created_at`,
			uuid.NewString(), set.Base, code, rate, set.Date, source, now,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range set.Rates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save rate history row: %w", err)
		}
	}
	return nil
}

// ListEntries returns the most recent history rows for base, newest first.
func (r *PgxRateHistoryRepository) ListEntries(ctx context.Context, base string, limit int) ([]domain.RateHistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT entry_id, base_currency, currency_code, rate, rate_date, source, created_at
		FROM rate_history
		WHERE base_currency = $1
		ORDER BY rate_date DESC, currency_code ASC
		LIMIT $2`,
		base, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history: %w", err)
	}
	defer rows.Close()

	var entries []domain.RateHistoryEntry
	for rows.Next() {
		var e domain.RateHistoryEntry
		if err := rows.Scan(&e.EntryID, &e.BaseCurrency, &e.CurrencyCode, &e.Rate, &e.RateDate, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rate history rows: %w", err)
	}
	return entries, nil
}
