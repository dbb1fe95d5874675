// Package commands wires the CLI: config, logging, storage, provider,
// and the long-running surfaces (API server, scheduler).
package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradescout",
	Short: "Tradescout - equity screening and trade-idea engine",
	Long: `Tradescout screens the market for trade ideas.

It computes technical indicators (SMA, RSI, MACD), classifies breakout
alerts, and scores each stock under three strategies: medium_term,
day_trade, and momentum.

Usage:
  go run ./cmd/tradescout [command]

Examples:
  go run ./cmd/tradescout api
  go run ./cmd/tradescout scan --strategy day_trade
  go run ./cmd/tradescout crossovers AAPL
  go run ./cmd/tradescout scheduler start`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
