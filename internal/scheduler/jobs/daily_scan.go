// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/tradescout/tradescout/internal/scan"
	"github.com/tradescout/tradescout/pkg/logger"
)

// ReportStore persists completed scan reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *scan.Report) (int64, error)
}

// Broadcaster pushes completed scan summaries to stream subscribers.
type Broadcaster interface {
	Broadcast(v interface{})
}

// DailyScan runs the full screening pass after the close, persists the
// report, and notifies stream subscribers. Store and broadcaster may be
// nil.
type DailyScan struct {
	scanner     *scan.Scanner
	store       ReportStore
	broadcaster Broadcaster
	schedule    string
	logger      *logger.Logger
}

// NewDailyScan creates the job with its cron schedule.
func NewDailyScan(scanner *scan.Scanner, store ReportStore, broadcaster Broadcaster, schedule string, log *logger.Logger) *DailyScan {
	return &DailyScan{
		scanner:     scanner,
		store:       store,
		broadcaster: broadcaster,
		schedule:    schedule,
		logger:      log,
	}
}

// Name implements scheduler.Job.
func (j *DailyScan) Name() string {
	return "daily_scan"
}

// Schedule implements scheduler.Job.
func (j *DailyScan) Schedule() string {
	return j.schedule
}

// Run implements scheduler.Job.
func (j *DailyScan) Run(ctx context.Context) error {
	report, err := j.scanner.Run(ctx, scan.Options{})
	if err != nil {
		return fmt.Errorf("daily scan: %w", err)
	}

	if j.store != nil {
		runID, err := j.store.SaveReport(ctx, report)
		if err != nil {
			return fmt.Errorf("persist daily scan: %w", err)
		}
		j.logger.WithFields(map[string]interface{}{
			"run_id":  runID,
			"scanned": report.Scanned,
			"failed":  report.Failed,
		}).Info("Daily scan persisted")
	}

	if j.broadcaster != nil {
		j.broadcaster.Broadcast(map[string]interface{}{
			"event":   "scan_completed",
			"date":    report.Date,
			"scanned": report.Scanned,
			"failed":  report.Failed,
		})
	}
	return nil
}
