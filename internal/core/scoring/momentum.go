package scoring

// Momentum qualification gate.
const (
	momentumMinScore        = 10
	momentumMinValidSignals = 3
)

// scoreMomentum rewards established trends: distance above the moving
// averages, proximity to the 52-week high, and continued buying
// pressure. Qualification requires the stock to be above its 50-day MA.
func scoreMomentum(in Input, t *tally) {
	snap := in.Snapshot

	if p := snap.PctFromSMA50; p != nil {
		switch {
		case *p >= 30:
			t.add("Powerful Uptrend", *p, 5)
		case *p >= 15:
			t.add("Strong Uptrend", *p, 3)
		case *p >= 5:
			t.add("Uptrend", *p, 1)
		}
	}

	if p := snap.PctFromSMA200; p != nil {
		switch {
		case *p >= 50:
			t.add("Monster Run", *p, 4)
		case *p >= 20:
			t.add("Long-term Strength", *p, 2)
		}
	}

	if p := snap.PctFrom52WHigh; p != nil && *p >= -5 {
		t.add("At Highs", *p, 4)
	}

	if in.macdBullish() {
		t.add("MACD Bullish", 1, 3)
	}

	if c := snap.ChangePercent; c != nil {
		switch {
		case *c >= 5:
			t.add("Big Mover", *c, 4)
		case *c >= 2:
			t.add("Mover", *c, 2)
		}
	}

	if rv := snap.RelativeVolume; rv != nil && *rv >= 1.5 {
		t.add("Active Volume", *rv, 2)
	}

	if r := snap.RSI; r != nil && *r >= 55 && *r <= 75 {
		t.add("Momentum RSI", *r, 2)
	}

	// Penalties.
	if c := snap.ChangePercent; c != nil && *c < 0 {
		t.add("Red Day", *c, -3)
	}
	if r := snap.RSI; r != nil && *r > 80 {
		t.add("Overheated RSI", *r, -2)
	}
	if p := snap.PctFromSMA50; p != nil && *p < 0 {
		t.add("Below 50MA", *p, -3)
	}

	above50 := snap.PctFromSMA50 != nil && *snap.PctFromSMA50 > 0
	t.qualifies = t.score >= momentumMinScore &&
		above50 &&
		t.validSignals() >= momentumMinValidSignals
}
