package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var crossoversCmd = &cobra.Command{
	Use:   "crossovers [symbol]",
	Short: "Show golden/death crosses for a symbol",
	Long: `Fetch a symbol's close history and report every golden and
death cross of its 50-day and 200-day moving averages over the last
three years.

Example:
  go run ./cmd/tradescout crossovers AAPL
  go run ./cmd/tradescout crossovers AAPL --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCrossovers,
}

var crossoversJSON bool

func init() {
	rootCmd.AddCommand(crossoversCmd)
	crossoversCmd.Flags().BoolVar(&crossoversJSON, "json", false, "print the report as JSON")
}

func runCrossovers(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	symbol := strings.ToUpper(args[0])
	report, err := d.scanner.Crossovers(cmd.Context(), symbol)
	if err != nil {
		return fmt.Errorf("crossovers for %s: %w", symbol, err)
	}

	if crossoversJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("%s: %d trading days, current state: %s\n",
		report.Symbol, report.TotalTradingDays, stateLabel(string(report.CurrentState)))
	if report.CurrentSMA50 != nil && report.CurrentSMA200 != nil {
		fmt.Printf("SMA50 %.2f / SMA200 %.2f (close %.2f on %s)\n",
			*report.CurrentSMA50, *report.CurrentSMA200,
			report.CurrentClose, report.CurrentDate.Format("2006-01-02"))
	}

	if len(report.Crossovers) == 0 {
		fmt.Println("No crossovers in the lookback window")
		return nil
	}

	fmt.Printf("\n%d crossovers:\n", len(report.Crossovers))
	for _, event := range report.Crossovers {
		fmt.Printf("  %s  %-13s SMA50=%.2f SMA200=%.2f close=%.2f\n",
			event.Date.Format("2006-01-02"), event.Type,
			event.SMA50, event.SMA200, event.Close)
	}
	return nil
}

func stateLabel(state string) string {
	if state == "" {
		return "unknown"
	}
	return state
}
