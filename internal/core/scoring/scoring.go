// Package scoring applies the rule-based strategy tables to a stock's
// snapshot and alert set. Every strategy is a fixed-order additive point
// table followed by a qualification gate; evaluation is deterministic
// and produces bit-identical results for identical inputs.
package scoring

import (
	"errors"
	"fmt"

	"github.com/tradescout/tradescout/internal/core/breakout"
	"github.com/tradescout/tradescout/internal/core/indicator"
)

// Strategy names the rule table to apply.
type Strategy string

const (
	MediumTerm Strategy = "medium_term"
	DayTrade   Strategy = "day_trade"
	Momentum   Strategy = "momentum"
)

// ErrUnknownStrategy is returned for a strategy name the engine does not
// recognize. Callers must never be silently defaulted to a strategy.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies returns all known strategies in a stable order.
func Strategies() []Strategy {
	return []Strategy{MediumTerm, DayTrade, Momentum}
}

// Parse validates a strategy name.
func Parse(name string) (Strategy, error) {
	switch Strategy(name) {
	case MediumTerm, DayTrade, Momentum:
		return Strategy(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Maximum attainable raw score per strategy, used only to project the
// raw score onto a 0-100 display scale. Qualification always gates on
// the raw score.
var maxAttainable = map[Strategy]int{
	MediumTerm: 24,
	DayTrade:   26,
	Momentum:   24,
}

// BreakdownItem records one fired rule.
type BreakdownItem struct {
	Label    string  `json:"label"`
	Observed float64 `json:"observed_value"`
	Points   int     `json:"points_delta"`
}

// Result is the outcome of evaluating one strategy for one symbol.
// Score is the raw additive total; Normalized is the 0-100 display
// projection and is never used for qualification.
type Result struct {
	Symbol       string          `json:"symbol"`
	Strategy     Strategy        `json:"strategy"`
	Score        int             `json:"score"`
	Normalized   float64         `json:"normalized_score"`
	Signals      []string        `json:"signals"`
	ValidSignals int             `json:"valid_signals"`
	Qualifies    bool            `json:"qualifies"`
	Breakdown    []BreakdownItem `json:"breakdown"`
}

// Input bundles everything a strategy evaluation may consult.
type Input struct {
	Snapshot indicator.Snapshot
	Alerts   []breakout.Alert
}

// Evaluate applies the named strategy's rule table.
func Evaluate(strategy Strategy, in Input) (Result, error) {
	t := newTally(in.Snapshot.Symbol, strategy)
	switch strategy {
	case MediumTerm:
		scoreMediumTerm(in, t)
	case DayTrade:
		scoreDayTrade(in, t)
	case Momentum:
		scoreMomentum(in, t)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	return t.result(), nil
}

// EvaluateAll runs every strategy against the same input.
func EvaluateAll(in Input) map[Strategy]Result {
	results := make(map[Strategy]Result, len(Strategies()))
	for _, s := range Strategies() {
		res, _ := Evaluate(s, in)
		results[s] = res
	}
	return results
}

// negativeLabels is the deny-list of purely negative signal labels. They
// appear in the signal list but never count toward the valid-signal
// qualification bar, so a single disqualifying flag cannot inflate the
// count.
var negativeLabels = map[string]bool{
	"Overbought":     true,
	"Death Cross":    true,
	"MACD Bearish":   true,
	"Extended":       true,
	"Below 200MA":    true,
	"Below 50MA":     true,
	"Red Day":        true,
	"Overheated RSI": true,
	"Thin Volume":    true,
}

// tally accumulates rule outcomes in evaluation order, suppressing
// duplicate labels on first occurrence.
type tally struct {
	symbol    string
	strategy  Strategy
	score     int
	signals   []string
	seen      map[string]bool
	breakdown []BreakdownItem
	qualifies bool
}

func newTally(symbol string, strategy Strategy) *tally {
	return &tally{
		symbol:   symbol,
		strategy: strategy,
		signals:  make([]string, 0, 8),
		seen:     make(map[string]bool),
	}
}

// add records a fired rule with the value it observed.
func (t *tally) add(label string, observed float64, points int) {
	t.score += points
	t.breakdown = append(t.breakdown, BreakdownItem{Label: label, Observed: observed, Points: points})
	if !t.seen[label] {
		t.seen[label] = true
		t.signals = append(t.signals, label)
	}
}

// validSignals counts signals outside the deny-list.
func (t *tally) validSignals() int {
	n := 0
	for _, s := range t.signals {
		if !negativeLabels[s] {
			n++
		}
	}
	return n
}

func (t *tally) result() Result {
	normalized := 0.0
	if max := maxAttainable[t.strategy]; max > 0 && t.score > 0 {
		normalized = float64(t.score) / float64(max) * 100
		if normalized > 100 {
			normalized = 100
		}
	}
	return Result{
		Symbol:       t.symbol,
		Strategy:     t.strategy,
		Score:        t.score,
		Normalized:   normalized,
		Signals:      t.signals,
		ValidSignals: t.validSignals(),
		Qualifies:    t.qualifies,
		Breakdown:    t.breakdown,
	}
}

// Input helpers. Each returns the observed value only when present;
// rules on absent fields never fire, in either direction.

func (in Input) hasAlert(alertType string) bool {
	for _, a := range in.Alerts {
		if a.Type == alertType {
			return true
		}
	}
	return false
}

func (in Input) hasAlertCategory(cat breakout.Category) bool {
	for _, a := range in.Alerts {
		if a.Category == cat {
			return true
		}
	}
	return false
}

func (in Input) macdBullish() bool {
	return in.Snapshot.MACDSignal == indicator.SignalBullishCrossover
}

func (in Input) macdBearish() bool {
	return in.Snapshot.MACDSignal == indicator.SignalBearishCrossover
}
