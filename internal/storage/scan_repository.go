package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradescout/tradescout/internal/core/breakout"
	"github.com/tradescout/tradescout/internal/core/ranking"
	"github.com/tradescout/tradescout/internal/core/scoring"
	"github.com/tradescout/tradescout/internal/scan"
)

// ErrNoReports is returned when no scan has been persisted yet.
var ErrNoReports = errors.New("no scan reports stored")

// ScanRepository persists completed scan reports: one run row, the
// ranked picks per strategy, and every fired alert.
type ScanRepository struct {
	pool *pgxpool.Pool
}

// NewScanRepository creates a scan repository.
func NewScanRepository(pool *pgxpool.Pool) *ScanRepository {
	return &ScanRepository{pool: pool}
}

// SaveReport stores a report atomically and returns the run id.
func (r *ScanRepository) SaveReport(ctx context.Context, report *scan.Report) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO scan_runs (run_date, scanned, failed)
		VALUES ($1, $2, $3)
		RETURNING id
	`, report.Date, report.Scanned, report.Failed).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("insert scan run: %w", err)
	}

	if err := r.savePicks(ctx, tx, runID, report); err != nil {
		return 0, err
	}
	if err := r.saveAlerts(ctx, tx, runID, report); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit scan run: %w", err)
	}
	return runID, nil
}

func (r *ScanRepository) savePicks(ctx context.Context, tx pgx.Tx, runID int64, report *scan.Report) error {
	query := `
		INSERT INTO scan_picks (run_id, strategy, rank, symbol, score, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for strategy, picks := range report.Strategies {
		for i, pick := range picks {
			payload, err := json.Marshal(pick)
			if err != nil {
				return fmt.Errorf("marshal pick %s/%s: %w", strategy, pick.Stock.Symbol, err)
			}
			_, err = tx.Exec(ctx, query, runID, string(strategy), i+1, pick.Stock.Symbol, pick.Result.Score, payload)
			if err != nil {
				return fmt.Errorf("insert pick %s/%s: %w", strategy, pick.Stock.Symbol, err)
			}
		}
	}
	return nil
}

func (r *ScanRepository) saveAlerts(ctx context.Context, tx pgx.Tx, runID int64, report *scan.Report) error {
	query := `
		INSERT INTO scan_alerts (run_id, symbol, alert_type, category, description, severity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, alerts := range report.Alerts {
		for _, a := range alerts {
			_, err := tx.Exec(ctx, query, runID, a.Symbol, a.Type, string(a.Category), a.Description, string(a.Severity))
			if err != nil {
				return fmt.Errorf("insert alert %s/%s: %w", a.Symbol, a.Type, err)
			}
		}
	}
	return nil
}

// LatestReport loads the most recently stored report.
func (r *ScanRepository) LatestReport(ctx context.Context) (*scan.Report, error) {
	report := &scan.Report{
		Strategies: make(map[scoring.Strategy][]ranking.ScoredStock),
		Alerts:     make(map[breakout.Category][]breakout.Alert),
	}

	var runID int64
	err := r.pool.QueryRow(ctx, `
		SELECT id, run_date, scanned, failed
		FROM scan_runs
		ORDER BY run_date DESC, id DESC
		LIMIT 1
	`).Scan(&runID, &report.Date, &report.Scanned, &report.Failed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoReports
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	if err := r.loadPicks(ctx, runID, report); err != nil {
		return nil, err
	}
	if err := r.loadAlerts(ctx, runID, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *ScanRepository) loadPicks(ctx context.Context, runID int64, report *scan.Report) error {
	rows, err := r.pool.Query(ctx, `
		SELECT strategy, payload
		FROM scan_picks
		WHERE run_id = $1
		ORDER BY strategy, rank
	`, runID)
	if err != nil {
		return fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var strategyName string
		var payload []byte
		if err := rows.Scan(&strategyName, &payload); err != nil {
			return fmt.Errorf("scan pick row: %w", err)
		}

		var pick ranking.ScoredStock
		if err := json.Unmarshal(payload, &pick); err != nil {
			return fmt.Errorf("unmarshal pick payload: %w", err)
		}

		strategy := scoring.Strategy(strategyName)
		report.Strategies[strategy] = append(report.Strategies[strategy], pick)
	}
	return rows.Err()
}

func (r *ScanRepository) loadAlerts(ctx context.Context, runID int64, report *scan.Report) error {
	rows, err := r.pool.Query(ctx, `
		SELECT symbol, alert_type, category, description, severity
		FROM scan_alerts
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a breakout.Alert
		var category, severity string
		if err := rows.Scan(&a.Symbol, &a.Type, &category, &a.Description, &severity); err != nil {
			return fmt.Errorf("scan alert row: %w", err)
		}
		a.Category = breakout.Category(category)
		a.Severity = breakout.Severity(severity)
		report.Alerts[a.Category] = append(report.Alerts[a.Category], a)
	}
	return rows.Err()
}
