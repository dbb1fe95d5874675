package indicator

// DefaultRSIPeriod is the standard Wilder lookback.
const DefaultRSIPeriod = 14

// RSI computes the Wilder-smoothed Relative Strength Index from the full
// close history and returns the latest value. It needs at least period+1
// closes; with fewer, ok is false.
//
// The seed averages are the simple means of the first period gains and
// losses; every later delta is folded in with Wilder smoothing:
//
//	avgGain = (avgGain*(period-1) + gain) / period
//
// When avgLoss ends at zero the RSI is exactly 100, unless avgGain is
// also zero (a completely flat window), in which case the RSI is
// undefined and ok is false.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			// Every delta in the window was zero; the ratio is 0/0 and
			// the indicator is undefined rather than 100 or 50.
			return 0, false
		}
		return 100, true
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}
