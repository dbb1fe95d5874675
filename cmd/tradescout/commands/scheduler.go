package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradescout/tradescout/internal/scheduler"
	"github.com/tradescout/tradescout/internal/scheduler/jobs"
	"github.com/tradescout/tradescout/internal/storage"
	"github.com/tradescout/tradescout/pkg/database"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage scheduled jobs",
	Long: `Run the scheduler daemon or trigger jobs manually.

Registered jobs:
  daily_scan - full screening pass after the close (SCAN_SCHEDULE)

Example:
  go run ./cmd/tradescout scheduler start
  go run ./cmd/tradescout scheduler run daily_scan`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildScheduler wires the scheduler with the daily scan job.
func buildScheduler(ctx context.Context, d *deps) (*scheduler.Scheduler, func(), error) {
	cleanup := func() {}

	var store jobs.ReportStore
	if d.cfg.Database.URL != "" {
		db, err := database.New(d.cfg)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect to database: %w", err)
		}
		cleanup = db.Close

		if err := storage.EnsureSchema(ctx, db.Pool); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		store = storage.NewScanRepository(db.Pool)
	} else {
		d.log.Warn("DATABASE_URL not set, scan results will not be persisted")
	}

	sched := scheduler.New(d.log)
	daily := jobs.NewDailyScan(d.scanner, store, nil, d.cfg.Scan.Schedule, d.log)
	if err := sched.AddJob(daily); err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return sched, cleanup, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, cleanup, err := buildScheduler(cmd.Context(), d)
	if err != nil {
		return err
	}
	defer cleanup()

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, cleanup, err := buildScheduler(cmd.Context(), d)
	if err != nil {
		return err
	}
	defer cleanup()

	name := args[0]
	if err := sched.RunNow(name); err != nil {
		return err
	}
	fmt.Printf("Job %s triggered\n", name)

	// RunNow is asynchronous; wait for the run to land in history
	// before exiting.
	for {
		history, err := sched.History(name)
		if err != nil {
			return err
		}
		if results := history.Latest(1); len(results) > 0 {
			last := results[0]
			if !last.Success {
				return fmt.Errorf("job %s failed: %s", name, last.Error)
			}
			fmt.Printf("Job %s completed in %s\n", name, last.Duration)
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
}
