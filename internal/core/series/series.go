// Package series holds the validated daily-bar price series the whole
// engine computes from. A Series is immutable after construction.
package series

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSeries is the base error for series validation failures.
var ErrInvalidSeries = errors.New("invalid price series")

// Bar is a single daily price bar.
type Bar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Series is an ordered, gap-free sequence of daily bars. Calendar gaps
// (weekends, holidays) are expected; index gaps are not.
type Series struct {
	bars []Bar
}

// New validates the bars and constructs a Series. Dates must be strictly
// increasing and every close must be positive; anything else is rejected
// rather than silently producing nonsense downstream.
func New(bars []Bar) (Series, error) {
	for i, b := range bars {
		if b.Close <= 0 {
			return Series{}, fmt.Errorf("%w: non-positive close %g at index %d", ErrInvalidSeries, b.Close, i)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return Series{}, fmt.Errorf("%w: dates not strictly increasing at index %d (%s -> %s)",
				ErrInvalidSeries, i, bars[i-1].Date.Format("2006-01-02"), b.Date.Format("2006-01-02"))
		}
	}

	copied := make([]Bar, len(bars))
	copy(copied, bars)
	return Series{bars: copied}, nil
}

// Len returns the number of bars.
func (s Series) Len() int {
	return len(s.bars)
}

// Bar returns the bar at index i.
func (s Series) Bar(i int) Bar {
	return s.bars[i]
}

// Last returns the most recent bar. It panics on an empty series; callers
// check Len first.
func (s Series) Last() Bar {
	return s.bars[len(s.bars)-1]
}

// Closes returns the close prices in chronological order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates returns the bar dates in chronological order.
func (s Series) Dates() []time.Time {
	dates := make([]time.Time, len(s.bars))
	for i, b := range s.bars {
		dates[i] = b.Date
	}
	return dates
}

// Bars returns a copy of the underlying bars.
func (s Series) Bars() []Bar {
	copied := make([]Bar, len(s.bars))
	copy(copied, s.bars)
	return copied
}
