// Package scan orchestrates a full screening run: universe discovery,
// per-symbol snapshot assembly, alert classification, strategy scoring,
// and ranking. The core packages stay pure; all I/O, parallelism, and
// partial-failure handling lives here.
package scan

import (
	"context"
	"sync"
	"time"

	"github.com/tradescout/tradescout/internal/core/breakout"
	"github.com/tradescout/tradescout/internal/core/crossover"
	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/ranking"
	"github.com/tradescout/tradescout/internal/core/scoring"
	"github.com/tradescout/tradescout/internal/marketdata"
	"github.com/tradescout/tradescout/pkg/logger"
)

// Default run parameters. Two years of history keeps the 200-day SMA
// and the MACD chain defined; three years of crossover lookback matches
// the report contract.
const (
	defaultHistoryDays   = 730
	defaultUniverseSize  = 100
	crossoverLookback    = 5 * 365
	crossoverCutoffYears = 3
)

// Options tunes one screening run. Zero values fall back to defaults.
type Options struct {
	Symbols     []string // explicit universe; empty means discover
	TopN        int
	Workers     int
	HistoryDays int
}

// Report is the output of one completed screening run.
type Report struct {
	Date       time.Time                                  `json:"date"`
	Strategies map[scoring.Strategy][]ranking.ScoredStock `json:"strategies"`
	Alerts     map[breakout.Category][]breakout.Alert     `json:"alerts"`
	Scanned    int                                        `json:"scanned"`
	Failed     int                                        `json:"failed"`
}

// Scanner runs screening passes against a market-data provider.
type Scanner struct {
	provider marketdata.Provider
	logger   *logger.Logger
	workers  int
	topN     int
}

// New creates a scanner with default worker and top-N settings.
func New(provider marketdata.Provider, workers, topN int, log *logger.Logger) *Scanner {
	if workers <= 0 {
		workers = 4
	}
	if topN <= 0 {
		topN = 10
	}
	return &Scanner{
		provider: provider,
		logger:   log,
		workers:  workers,
		topN:     topN,
	}
}

// symbolResult carries one worker's outcome.
type symbolResult struct {
	symbol    string
	candidate ranking.Candidate
	err       error
}

// Run executes a full screening pass. Per-symbol failures are counted
// and logged, never fatal; the run fails only when the universe itself
// cannot be established.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Report, error) {
	symbols := opts.Symbols
	if len(symbols) == 0 {
		discovered, err := s.provider.MostActive(ctx, defaultUniverseSize)
		if err != nil {
			return nil, err
		}
		symbols = discovered
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = s.workers
	}
	historyDays := opts.HistoryDays
	if historyDays <= 0 {
		historyDays = defaultHistoryDays
	}

	s.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"workers": workers,
	}).Info("Starting scan")

	symbolCh := make(chan string, len(symbols))
	resultCh := make(chan symbolResult, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, symbolCh, resultCh, historyDays)
		}()
	}

	for _, symbol := range symbols {
		symbolCh <- symbol
	}
	close(symbolCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	candidates := make([]ranking.Candidate, 0, len(symbols))
	failed := 0
	for res := range resultCh {
		if res.err != nil {
			failed++
			s.logger.WithError(res.err).WithField("symbol", res.symbol).Warn("Symbol scan failed")
			continue
		}
		candidates = append(candidates, res.candidate)
	}

	report := buildReport(candidates, pickTopN(opts.TopN, s.topN))
	report.Scanned = len(symbols)
	report.Failed = failed

	s.logger.WithFields(map[string]interface{}{
		"scanned": report.Scanned,
		"failed":  report.Failed,
	}).Info("Scan completed")
	return report, nil
}

// worker processes symbols until the channel drains. A missing history
// degrades the snapshot (no RSI, no MACD) instead of failing the
// symbol; a missing quote fails it. After cancellation every remaining
// symbol is reported as failed so Scanned and Failed stay consistent.
func (s *Scanner) worker(ctx context.Context, symbolCh <-chan string, resultCh chan<- symbolResult, historyDays int) {
	for symbol := range symbolCh {
		select {
		case <-ctx.Done():
			resultCh <- symbolResult{symbol: symbol, err: ctx.Err()}
			continue
		default:
		}

		quote, err := s.provider.Quote(ctx, symbol)
		if err != nil {
			resultCh <- symbolResult{symbol: symbol, err: err}
			continue
		}

		var closes []float64
		if history, err := s.provider.History(ctx, symbol, historyDays); err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("History unavailable, snapshot degraded")
		} else {
			closes = history.Closes()
		}

		snap := indicator.BuildSnapshot(quote, closes)
		resultCh <- symbolResult{
			symbol: symbol,
			candidate: ranking.Candidate{
				Snapshot: snap,
				Alerts:   breakout.Classify(snap),
			},
		}
	}
}

// buildReport scores the deduplicated candidates under every strategy
// and groups all fired alerts by category.
func buildReport(candidates []ranking.Candidate, topN int) *Report {
	candidates = ranking.Dedupe(candidates)

	report := &Report{
		Date:       time.Now().UTC(),
		Strategies: make(map[scoring.Strategy][]ranking.ScoredStock, len(scoring.Strategies())),
		Alerts:     make(map[breakout.Category][]breakout.Alert),
	}

	var allAlerts []breakout.Alert
	for _, c := range candidates {
		allAlerts = append(allAlerts, c.Alerts...)
	}
	report.Alerts = breakout.GroupByCategory(allAlerts)

	for _, strategy := range scoring.Strategies() {
		scored := make([]ranking.ScoredStock, 0, len(candidates))
		for _, c := range candidates {
			res, err := scoring.Evaluate(strategy, scoring.Input{Snapshot: c.Snapshot, Alerts: c.Alerts})
			if err != nil {
				continue
			}
			scored = append(scored, ranking.ScoredStock{Stock: c.Snapshot, Result: res})
		}
		report.Strategies[strategy] = ranking.Rank(strategy, scored, topN)
	}

	return report
}

// Crossovers fetches the close history for one symbol and builds its
// golden/death cross report over the last three years.
func (s *Scanner) Crossovers(ctx context.Context, symbol string) (crossover.Report, error) {
	history, err := s.provider.History(ctx, symbol, crossoverLookback)
	if err != nil {
		return crossover.Report{}, err
	}
	cutoff := time.Now().UTC().AddDate(-crossoverCutoffYears, 0, 0)
	return crossover.BuildReport(symbol, history, cutoff), nil
}

func pickTopN(requested, fallback int) int {
	if requested > 0 {
		return requested
	}
	return fallback
}
