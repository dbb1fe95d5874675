package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the tables the repositories depend on. Applied at
// startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS daily_bars (
		symbol      TEXT NOT NULL,
		trade_date  DATE NOT NULL,
		close_price DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (symbol, trade_date)
	)`,
	`CREATE TABLE IF NOT EXISTS scan_runs (
		id       BIGSERIAL PRIMARY KEY,
		run_date TIMESTAMPTZ NOT NULL,
		scanned  INTEGER NOT NULL,
		failed   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scan_picks (
		id       BIGSERIAL PRIMARY KEY,
		run_id   BIGINT NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
		strategy TEXT NOT NULL,
		rank     INTEGER NOT NULL,
		symbol   TEXT NOT NULL,
		score    INTEGER NOT NULL,
		payload  JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scan_alerts (
		id          BIGSERIAL PRIMARY KEY,
		run_id      BIGINT NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
		symbol      TEXT NOT NULL,
		alert_type  TEXT NOT NULL,
		category    TEXT NOT NULL,
		description TEXT NOT NULL,
		severity    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scan_picks_run ON scan_picks(run_id, strategy, rank)`,
	`CREATE INDEX IF NOT EXISTS idx_scan_alerts_run ON scan_alerts(run_id)`,
}

// EnsureSchema creates the storage tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
