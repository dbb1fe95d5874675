package scoring

import "github.com/tradescout/tradescout/internal/core/breakout"

// Medium-term ("top picks") qualification gate.
const (
	mediumMinScore        = 6
	mediumMinValidSignals = 3
)

// scoreMediumTerm applies the medium-term rule table: trend position,
// crossover state, RSI zone, MACD, 52-week positioning, and day action,
// with penalties for overextension. Qualification additionally requires
// the stock to be above its 200-day MA.
func scoreMediumTerm(in Input, t *tally) {
	snap := in.Snapshot

	if p := snap.PctFromSMA50; p != nil && *p > 0 && *p <= 8 {
		t.add("Above 50-day MA", *p, 3)
	}
	if p := snap.PctFromSMA200; p != nil && *p > 0 && *p <= 20 {
		t.add("Above 200-day MA", *p, 3)
	}

	if in.hasAlert(breakout.TypeGoldenCross) {
		t.add("Golden Cross", 1, 5)
	}

	if r := snap.RSI; r != nil {
		switch {
		case *r >= 50 && *r <= 65:
			t.add("Healthy RSI", *r, 3)
		case *r >= 40 && *r < 50:
			t.add("Neutral RSI", *r, 1)
		case *r >= 30 && *r < 40:
			// Oversold territory with room to bounce.
			t.add("Oversold Bounce", *r, 2)
		}
	}

	if in.macdBullish() {
		t.add("MACD Bullish", 1, 4)
	}

	if p := snap.PctFrom52WHigh; p != nil && *p >= -10 {
		t.add("Near 52W High", *p, 2)
	}

	if c := snap.ChangePercent; c != nil {
		if rv := snap.RelativeVolume; rv != nil && *c > 2 && *rv > 1.2 {
			t.add("Breakout Move", *c, 2)
		} else if *c > 0 {
			t.add("Green Day", *c, 1)
		}

		if in.hasAlertCategory(breakout.CategoryVolumeBreakout) && *c > 0 {
			t.add("Volume Surge", *c, 2)
		}
	}

	// Penalties.
	if r := snap.RSI; r != nil && *r > 70 {
		t.add("Overbought", *r, -4)
	}
	if in.hasAlert(breakout.TypeDeathCross) {
		t.add("Death Cross", 1, -5)
	}
	if in.macdBearish() {
		t.add("MACD Bearish", 1, -3)
	}
	if p := snap.PctFromSMA50; p != nil && *p > 15 {
		t.add("Extended", *p, -2)
	}
	if p := snap.PctFromSMA200; p != nil && *p < 0 {
		t.add("Below 200MA", *p, -2)
	}

	above200 := snap.PctFromSMA200 != nil && *snap.PctFromSMA200 > 0
	t.qualifies = t.score >= mediumMinScore &&
		t.validSignals() >= mediumMinValidSignals &&
		above200
}
