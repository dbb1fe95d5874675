package indicator

import "math"

// MACD parameters. The engine uses the textbook 12/26/9 configuration.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// SignalType classifies the MACD/signal-line relationship at the two most
// recent points.
type SignalType string

const (
	SignalNone             SignalType = ""
	SignalBullishCrossover SignalType = "bullish_crossover"
	SignalBearishCrossover SignalType = "bearish_crossover"
	SignalStrongBullish    SignalType = "strong_bullish"
	SignalStrongBearish    SignalType = "strong_bearish"
)

// MACDResult carries the two most recent points of the MACD line and its
// signal line. PrevSignal is the true previous value from the signal-line
// recursion, not an algebraic reconstruction; crossover classification is
// numerically delicate and depends on it.
type MACDResult struct {
	Value      float64 `json:"value"`
	Signal     float64 `json:"signal"`
	Histogram  float64 `json:"histogram"`
	PrevValue  float64 `json:"prev_value"`
	PrevSignal float64 `json:"prev_signal"`
}

// MACD computes MACD(12,26,9) over the close history. Both EMAs are
// seeded with the simple mean of their first period closes and recursed
// with multiplier 2/(n+1); no intermediate rounding. At least
// slow+signal (35) closes are required, which guarantees the signal line
// has a genuine previous value.
func MACD(closes []float64) (MACDResult, bool) {
	if len(closes) < MACDSlowPeriod+MACDSignalPeriod {
		return MACDResult{}, false
	}

	ema12 := emaSeries(closes, MACDFastPeriod)
	ema26 := emaSeries(closes, MACDSlowPeriod)

	// MACD line exists once both EMAs are defined, i.e. from the slow
	// seed index onward.
	macdLine := make([]float64, 0, len(closes)-MACDSlowPeriod+1)
	for i := MACDSlowPeriod - 1; i < len(closes); i++ {
		macdLine = append(macdLine, ema12[i]-ema26[i])
	}

	signal := emaSeries(macdLine, MACDSignalPeriod)

	last := len(macdLine) - 1
	if last < 1 || math.IsNaN(signal[last]) || math.IsNaN(signal[last-1]) {
		return MACDResult{}, false
	}

	res := MACDResult{
		Value:      macdLine[last],
		Signal:     signal[last],
		PrevValue:  macdLine[last-1],
		PrevSignal: signal[last-1],
	}
	res.Histogram = res.Value - res.Signal
	return res, true
}

// SignalType classifies the current MACD/signal relationship. A fresh
// cross of the signal line takes precedence over the continuation
// states. A cross requires actual movement: when both points sit
// exactly on the signal line there is no cross, and steady contact from
// above counts as bullish continuation.
func (r MACDResult) SignalType() SignalType {
	crossedDown := r.PrevValue >= r.PrevSignal && r.Value <= r.Signal &&
		(r.PrevValue > r.PrevSignal || r.Value < r.Signal)

	switch {
	case r.PrevValue < r.PrevSignal && r.Value > r.Signal:
		return SignalBullishCrossover
	case crossedDown:
		return SignalBearishCrossover
	case r.Value > 0 && r.Value >= r.Signal:
		return SignalStrongBullish
	case r.Value < 0 && r.Value < r.Signal:
		return SignalStrongBearish
	default:
		return SignalNone
	}
}

// emaSeries computes an exponential moving average chain aligned to
// values: NaN before the seed index, the simple mean of the first period
// values at the seed, then the standard recursion. Intermediate values
// are never rounded.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}
