// Package indicator computes the technical indicators the screening
// strategies are built on: SMA, Wilder RSI, and MACD(12,26,9). All
// functions are pure; insufficient input yields an absent value, never
// zero and never an error.
package indicator

import "math"

// SMASeries computes the simple moving average over the trailing period
// for every index of closes. Positions before period-1 are NaN. Values
// are rounded to two decimals on emission; this series is display-grade
// and feeds crossover comparisons, so the rounding is part of its
// contract. EMA chains never use it.
func SMASeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(closes) < period {
		return out
	}

	var sum float64
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = round2(sum / float64(period))
		}
	}
	return out
}

// SMA returns the latest simple moving average over the trailing period,
// or ok == false when fewer than period closes exist.
func SMA(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	var sum float64
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return round2(sum / float64(period)), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
