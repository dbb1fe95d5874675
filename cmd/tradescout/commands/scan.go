package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tradescout/tradescout/internal/core/scoring"
	"github.com/tradescout/tradescout/internal/scan"
	"github.com/tradescout/tradescout/internal/strategyconfig"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a screening pass",
	Long: `Run one full screening pass and print the ranked picks.

Without --symbols the most-active universe is discovered from the
screener page. A scan profile (--profile or SCAN_PROFILE) pins the
universe, top-N, and history depth.

Example:
  go run ./cmd/tradescout scan
  go run ./cmd/tradescout scan --symbols AAPL,MSFT,NVDA --top 5
  go run ./cmd/tradescout scan --strategy momentum --json`,
	RunE: runScan,
}

var (
	scanSymbols  string
	scanTopN     int
	scanStrategy string
	scanProfile  string
	scanJSON     bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanSymbols, "symbols", "", "comma-separated symbols (default: discover)")
	scanCmd.Flags().IntVar(&scanTopN, "top", 0, "picks per strategy (default: configured)")
	scanCmd.Flags().StringVar(&scanStrategy, "strategy", "", "print only one strategy")
	scanCmd.Flags().StringVar(&scanProfile, "profile", "", "scan profile YAML path")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the full report as JSON")
}

func runScan(cmd *cobra.Command, args []string) error {
	only, err := resolveStrategy(scanStrategy)
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	opts := scan.Options{TopN: scanTopN}
	if scanSymbols != "" {
		opts.Symbols = splitSymbols(scanSymbols)
	}

	profilePath := scanProfile
	if profilePath == "" {
		profilePath = d.cfg.Scan.ProfilePath
	}
	if profilePath != "" {
		profile, _, err := strategyconfig.Load(profilePath)
		if err != nil {
			return fmt.Errorf("load scan profile: %w", err)
		}
		hash, _ := strategyconfig.Hash(profile)
		d.log.WithFields(map[string]interface{}{
			"profile": profile.Meta.ProfileID,
			"hash":    hash,
		}).Info("Scan profile loaded")

		applyProfile(&opts, profile)
	}

	report, err := d.scanner.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report, only)
	return nil
}

// resolveStrategy validates the --strategy flag. Empty means all
// strategies.
func resolveStrategy(flag string) (scoring.Strategy, error) {
	if flag == "" {
		return "", nil
	}
	return scoring.Parse(flag)
}

// applyProfile maps profile settings onto run options. Explicit flags
// win over the profile.
func applyProfile(opts *scan.Options, profile *strategyconfig.Profile) {
	if len(opts.Symbols) == 0 && !profile.Universe.Discover {
		opts.Symbols = profile.Universe.Symbols
	}
	if opts.TopN == 0 {
		opts.TopN = profile.Scan.TopN
	}
	if opts.Workers == 0 {
		opts.Workers = profile.Scan.Workers
	}
	if opts.HistoryDays == 0 {
		opts.HistoryDays = profile.Scan.HistoryDays
	}
}

func printReport(report *scan.Report, only scoring.Strategy) {
	fmt.Printf("Scan of %s: %d symbols, %d failed\n\n",
		report.Date.Format("2006-01-02 15:04 MST"), report.Scanned, report.Failed)

	for _, strategy := range scoring.Strategies() {
		if only != "" && strategy != only {
			continue
		}
		picks := report.Strategies[strategy]
		fmt.Printf("=== %s (%d picks) ===\n", strategy, len(picks))
		for i, pick := range picks {
			fmt.Printf("%2d. %-6s score=%d (%.0f/100) signals=%s\n",
				i+1, pick.Stock.Symbol, pick.Result.Score, pick.Result.Normalized,
				strings.Join(pick.Result.Signals, ", "))
		}
		fmt.Println()
	}

	total := 0
	for _, alerts := range report.Alerts {
		total += len(alerts)
	}
	fmt.Printf("%d alerts across %d categories\n", total, len(report.Alerts))
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			symbols = append(symbols, strings.ToUpper(trimmed))
		}
	}
	return symbols
}
