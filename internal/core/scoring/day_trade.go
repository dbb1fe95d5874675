package scoring

// Day-trade qualification gate.
const (
	dayTradeMinScore        = 8
	dayTradeMinValidSignals = 2
)

// scoreDayTrade rewards intraday momentum: today's move, volume
// intensity, proximity to the 52-week high, and short-term indicator
// confirmation. Larger positive moves never score fewer points than
// smaller ones. Qualification requires a strictly positive day.
func scoreDayTrade(in Input, t *tally) {
	snap := in.Snapshot

	if c := snap.ChangePercent; c != nil {
		switch {
		case *c >= 5:
			t.add("Big Mover", *c, 7)
		case *c >= 3:
			t.add("Strong Move", *c, 5)
		case *c >= 1.5:
			t.add("Solid Move", *c, 3)
		case *c > 0:
			t.add("Green Day", *c, 1)
		}
	}

	if rv := snap.RelativeVolume; rv != nil {
		switch {
		case *rv >= 2.5:
			t.add("Massive Volume", *rv, 6)
		case *rv >= 1.8:
			t.add("Heavy Volume", *rv, 4)
		case *rv >= 1.3:
			t.add("Elevated Volume", *rv, 2)
		}
	}

	if p := snap.PctFrom52WHigh; p != nil {
		if *p >= 0 {
			t.add("New 52W High", *p, 5)
		} else if *p >= -3 {
			t.add("Near 52W High", *p, 3)
		}
	}

	if in.macdBullish() {
		t.add("MACD Bullish", 1, 3)
	}

	if r := snap.RSI; r != nil && *r >= 60 && *r <= 75 {
		t.add("Strong RSI", *r, 3)
	}
	// Not part of the RSI band chain: an exhausted RSI is penalized even
	// though the band rule above could not have fired for it.
	if r := snap.RSI; r != nil && *r > 80 {
		t.add("Overheated RSI", *r, -2)
	}

	if p := snap.PctFromSMA50; p != nil && *p > 0 {
		t.add("Above 50MA", *p, 1)
	}
	if p := snap.PctFromSMA200; p != nil && *p > 0 {
		t.add("Above 200MA", *p, 1)
	}

	// Penalties.
	if c := snap.ChangePercent; c != nil && *c < 0 {
		t.add("Red Day", *c, -3)
	}
	if rv := snap.RelativeVolume; rv != nil && *rv < 0.7 {
		t.add("Thin Volume", *rv, -2)
	}
	if in.macdBearish() {
		t.add("MACD Bearish", 1, -2)
	}

	positiveDay := snap.ChangePercent != nil && *snap.ChangePercent > 0
	t.qualifies = t.score >= dayTradeMinScore &&
		positiveDay &&
		t.validSignals() >= dayTradeMinValidSignals
}
