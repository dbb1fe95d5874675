// Package crossover detects golden and death crosses between the 50-day
// and 200-day simple moving averages of a price series.
package crossover

import (
	"math"
	"time"

	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/series"
)

// Moving-average windows the detector compares.
const (
	ShortWindow = 50
	LongWindow  = 200
)

// Type identifies the direction of a cross.
type Type string

const (
	GoldenCross Type = "golden_cross"
	DeathCross  Type = "death_cross"
)

// State classifies where the short average currently sits relative to the
// long one.
type State string

const (
	StateGolden  State = "golden"
	StateDeath   State = "death"
	StateUnknown State = ""
)

// Event is a single detected cross. Events are derived values and never
// mutated; detecting twice over the same series yields identical lists.
type Event struct {
	Date   time.Time `json:"date"`
	Type   Type      `json:"type"`
	SMA50  float64   `json:"sma50"`
	SMA200 float64   `json:"sma200"`
	Close  float64   `json:"close"`
}

// Report is the crossover query output for one symbol.
type Report struct {
	Symbol           string    `json:"symbol"`
	Crossovers       []Event   `json:"crossovers"`
	CurrentSMA50     *float64  `json:"current_sma50,omitempty"`
	CurrentSMA200    *float64  `json:"current_sma200,omitempty"`
	CurrentClose     float64   `json:"current_close"`
	CurrentDate      time.Time `json:"current_date"`
	CurrentState     State     `json:"current_state,omitempty"`
	TotalTradingDays int       `json:"total_trading_days"`
}

// Detect folds over two aligned NaN-padded SMA sequences and emits every
// cross on or after cutoff, in chronological order. A cross at index i
// requires both averages defined at i and i-1.
func Detect(bars []series.Bar, sma50, sma200 []float64, cutoff time.Time) []Event {
	events := make([]Event, 0)
	for i := 1; i < len(bars) && i < len(sma50) && i < len(sma200); i++ {
		if math.IsNaN(sma50[i]) || math.IsNaN(sma200[i]) ||
			math.IsNaN(sma50[i-1]) || math.IsNaN(sma200[i-1]) {
			continue
		}
		if bars[i].Date.Before(cutoff) {
			continue
		}

		var t Type
		switch {
		case sma50[i-1] <= sma200[i-1] && sma50[i] > sma200[i]:
			t = GoldenCross
		case sma50[i-1] >= sma200[i-1] && sma50[i] < sma200[i]:
			t = DeathCross
		default:
			continue
		}

		events = append(events, Event{
			Date:   bars[i].Date,
			Type:   t,
			SMA50:  sma50[i],
			SMA200: sma200[i],
			Close:  bars[i].Close,
		})
	}
	return events
}

// CurrentState compares the latest defined values of both averages.
// If either is undefined at the latest index the state is unknown.
func CurrentState(sma50, sma200 []float64) State {
	if len(sma50) == 0 || len(sma200) == 0 {
		return StateUnknown
	}
	s50, s200 := sma50[len(sma50)-1], sma200[len(sma200)-1]
	if math.IsNaN(s50) || math.IsNaN(s200) {
		return StateUnknown
	}
	if s50 > s200 {
		return StateGolden
	}
	return StateDeath
}

// BuildReport computes both SMA sequences for the series and assembles
// the full crossover report with the given history cutoff.
func BuildReport(symbol string, s series.Series, cutoff time.Time) Report {
	bars := s.Bars()
	closes := s.Closes()
	sma50 := indicator.SMASeries(closes, ShortWindow)
	sma200 := indicator.SMASeries(closes, LongWindow)

	report := Report{
		Symbol:           symbol,
		Crossovers:       Detect(bars, sma50, sma200, cutoff),
		CurrentState:     CurrentState(sma50, sma200),
		TotalTradingDays: s.Len(),
	}

	if s.Len() > 0 {
		last := s.Last()
		report.CurrentClose = last.Close
		report.CurrentDate = last.Date
		if v := sma50[len(sma50)-1]; !math.IsNaN(v) {
			report.CurrentSMA50 = &v
		}
		if v := sma200[len(sma200)-1]; !math.IsNaN(v) {
			report.CurrentSMA200 = &v
		}
	}

	return report
}
