// Package ranking orders qualified stocks per strategy and truncates to
// a watchlist. Each strategy's comparator chain is a strict total order;
// ties that survive the whole chain fall back to symbol order so output
// is fully deterministic.
package ranking

import (
	"math"
	"sort"

	"github.com/tradescout/tradescout/internal/core/breakout"
	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/scoring"
)

// Candidate is one stock entering a scoring pass.
type Candidate struct {
	Snapshot indicator.Snapshot
	Alerts   []breakout.Alert
}

// ScoredStock pairs a snapshot with its strategy result.
type ScoredStock struct {
	Stock  indicator.Snapshot `json:"stock"`
	Result scoring.Result     `json:"result"`
}

// Dedupe collapses candidates sharing a symbol, keeping the entry with
// higher trading volume. Some sources list the same issuer under two
// listing symbols; the more liquid listing wins. First-seen order of the
// surviving symbols is preserved.
func Dedupe(cands []Candidate) []Candidate {
	index := make(map[string]int, len(cands))
	out := make([]Candidate, 0, len(cands))

	for _, c := range cands {
		i, seen := index[c.Snapshot.Symbol]
		if !seen {
			index[c.Snapshot.Symbol] = len(out)
			out = append(out, c)
			continue
		}
		if volume(c.Snapshot) > volume(out[i].Snapshot) {
			out[i] = c
		}
	}
	return out
}

// Rank filters to qualifying results, sorts with the strategy's
// comparator chain, and truncates to topN.
func Rank(strategy scoring.Strategy, scored []ScoredStock, topN int) []ScoredStock {
	qualified := make([]ScoredStock, 0, len(scored))
	for _, s := range scored {
		if s.Result.Qualifies {
			qualified = append(qualified, s)
		}
	}

	less := comparator(strategy)
	sort.SliceStable(qualified, func(i, j int) bool {
		return less(qualified[i], qualified[j])
	})

	if topN > 0 && len(qualified) > topN {
		qualified = qualified[:topN]
	}
	return qualified
}

// comparator returns the tie-break chain for a strategy. Each chain
// starts with raw score descending and ends with symbol ascending.
func comparator(strategy scoring.Strategy) func(a, b ScoredStock) bool {
	switch strategy {
	case scoring.MediumTerm:
		return func(a, b ScoredStock) bool {
			if a.Result.Score != b.Result.Score {
				return a.Result.Score > b.Result.Score
			}
			if a.Result.ValidSignals != b.Result.ValidSignals {
				return a.Result.ValidSignals > b.Result.ValidSignals
			}
			if ha, hb := healthyRSI(a.Stock), healthyRSI(b.Stock); ha != hb {
				return ha
			}
			if va, vb := fval(a.Stock.RelativeVolume), fval(b.Stock.RelativeVolume); va != vb {
				return va > vb
			}
			return a.Stock.Symbol < b.Stock.Symbol
		}
	case scoring.DayTrade:
		return func(a, b ScoredStock) bool {
			if a.Result.Score != b.Result.Score {
				return a.Result.Score > b.Result.Score
			}
			if ca, cb := fval(a.Stock.ChangePercent), fval(b.Stock.ChangePercent); ca != cb {
				return ca > cb
			}
			if va, vb := fval(a.Stock.RelativeVolume), fval(b.Stock.RelativeVolume); va != vb {
				return va > vb
			}
			return a.Stock.Symbol < b.Stock.Symbol
		}
	default: // scoring.Momentum
		return func(a, b ScoredStock) bool {
			if a.Result.Score != b.Result.Score {
				return a.Result.Score > b.Result.Score
			}
			// Closer to the 52-week high wins.
			if pa, pb := fval(a.Stock.PctFrom52WHigh), fval(b.Stock.PctFrom52WHigh); pa != pb {
				return pa > pb
			}
			if ca, cb := fval(a.Stock.ChangePercent), fval(b.Stock.ChangePercent); ca != cb {
				return ca > cb
			}
			return a.Stock.Symbol < b.Stock.Symbol
		}
	}
}

// healthyRSI reports whether RSI sits in the medium-term sweet spot.
func healthyRSI(s indicator.Snapshot) bool {
	return s.RSI != nil && *s.RSI >= 50 && *s.RSI <= 65
}

// fval unwraps an optional field for comparison; absent sorts last.
func fval(p *float64) float64 {
	if p == nil {
		return math.Inf(-1)
	}
	return *p
}

func volume(s indicator.Snapshot) int64 {
	if s.Volume == nil {
		return -1
	}
	return *s.Volume
}
