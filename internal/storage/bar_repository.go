// Package storage persists daily bars and completed scan reports in
// PostgreSQL. Repositories are thin over pgx; no business rules here.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradescout/tradescout/internal/core/series"
)

// BarRepository stores daily close bars per symbol.
type BarRepository struct {
	pool *pgxpool.Pool
}

// NewBarRepository creates a bar repository.
func NewBarRepository(pool *pgxpool.Pool) *BarRepository {
	return &BarRepository{pool: pool}
}

// SaveBars upserts a symbol's bars. Re-running a collection for the
// same dates overwrites in place.
func (r *BarRepository) SaveBars(ctx context.Context, symbol string, bars []series.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_bars (symbol, trade_date, close_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, trade_date)
		DO UPDATE SET close_price = EXCLUDED.close_price
	`

	batch := &pgx.Batch{}
	for _, bar := range bars {
		batch.Queue(query, symbol, bar.Date, bar.Close)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save bars for %s: %w", symbol, err)
		}
	}
	return nil
}

// GetBars returns a symbol's bars in [from, to], oldest first.
func (r *BarRepository) GetBars(ctx context.Context, symbol string, from, to time.Time) ([]series.Bar, error) {
	query := `
		SELECT trade_date, close_price
		FROM daily_bars
		WHERE symbol = $1 AND trade_date >= $2 AND trade_date <= $3
		ORDER BY trade_date
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("query bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []series.Bar
	for rows.Next() {
		var bar series.Bar
		if err := rows.Scan(&bar.Date, &bar.Close); err != nil {
			return nil, fmt.Errorf("scan bar row: %w", err)
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bar rows: %w", err)
	}
	return bars, nil
}

// GetSeries loads a symbol's bars since from and validates them into a
// Series.
func (r *BarRepository) GetSeries(ctx context.Context, symbol string, from time.Time) (series.Series, error) {
	bars, err := r.GetBars(ctx, symbol, from, time.Now().UTC())
	if err != nil {
		return series.Series{}, err
	}
	s, err := series.New(bars)
	if err != nil {
		return series.Series{}, fmt.Errorf("stored bars for %s: %w", symbol, err)
	}
	return s, nil
}
