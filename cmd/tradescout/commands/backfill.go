package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradescout/tradescout/internal/storage"
	"github.com/tradescout/tradescout/pkg/database"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Backfill daily bars into the database",
	Long: `Fetch close history for a set of symbols and upsert the daily
bars into PostgreSQL. Re-running the same window is safe.

Without --symbols the most-active universe is discovered from the
screener page.

Example:
  go run ./cmd/tradescout backfill --symbols AAPL,MSFT --days 730
  go run ./cmd/tradescout backfill --days 365`,
	RunE: runBackfill,
}

var (
	backfillSymbols string
	backfillDays    int
	backfillLimit   int
)

func init() {
	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().StringVar(&backfillSymbols, "symbols", "", "comma-separated symbols (default: discover)")
	backfillCmd.Flags().IntVar(&backfillDays, "days", 730, "calendar days of history to fetch")
	backfillCmd.Flags().IntVar(&backfillLimit, "limit", 100, "universe size when discovering symbols")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if d.cfg.Database.URL == "" {
		return fmt.Errorf("backfill requires DATABASE_URL")
	}

	db, err := database.New(d.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := storage.EnsureSchema(ctx, db.Pool); err != nil {
		return err
	}
	bars := storage.NewBarRepository(db.Pool)

	symbols := splitSymbols(backfillSymbols)
	if len(symbols) == 0 {
		symbols, err = d.provider.MostActive(ctx, backfillLimit)
		if err != nil {
			return fmt.Errorf("discover universe: %w", err)
		}
	}

	fmt.Printf("Backfilling %d symbols, %d days\n", len(symbols), backfillDays)

	failed := 0
	for _, symbol := range symbols {
		history, err := d.provider.History(ctx, symbol, backfillDays)
		if err != nil {
			failed++
			d.log.WithError(err).WithField("symbol", symbol).Warn("History fetch failed")
			continue
		}
		if err := bars.SaveBars(ctx, symbol, history.Bars()); err != nil {
			return err
		}
		fmt.Printf("  %-6s %d bars\n", symbol, history.Len())
	}

	if failed > 0 {
		fmt.Printf("%d symbols failed\n", failed)
	}
	return nil
}
