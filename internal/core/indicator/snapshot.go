package indicator

// Quote is the point-in-time market snapshot handed in by a market-data
// collaborator. Fields the provider could not supply are nil; absent
// never becomes zero anywhere downstream.
type Quote struct {
	Symbol               string   `json:"symbol"`
	Price                *float64 `json:"price,omitempty"`
	ChangePercent        *float64 `json:"change_percent,omitempty"`
	Volume               *int64   `json:"volume,omitempty"`
	AverageVolume        *int64   `json:"average_volume,omitempty"`
	FiftyDayAverage      *float64 `json:"fifty_day_average,omitempty"`
	TwoHundredDayAverage *float64 `json:"two_hundred_day_average,omitempty"`
	FiftyTwoWeekHigh     *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow      *float64 `json:"fifty_two_week_low,omitempty"`
}

// Snapshot is the fully-typed per-stock indicator bundle evaluated at a
// single instant. It is the sole input shape the breakout and scoring
// rules see.
type Snapshot struct {
	Symbol           string     `json:"symbol"`
	Price            *float64   `json:"price,omitempty"`
	ChangePercent    *float64   `json:"change_percent,omitempty"`
	Volume           *int64     `json:"volume,omitempty"`
	RSI              *float64   `json:"rsi,omitempty"`
	SMA50            *float64   `json:"sma50,omitempty"`
	SMA200           *float64   `json:"sma200,omitempty"`
	PctFromSMA50     *float64   `json:"percent_from_sma50,omitempty"`
	PctFromSMA200    *float64   `json:"percent_from_sma200,omitempty"`
	FiftyTwoWeekHigh *float64   `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64   `json:"fifty_two_week_low,omitempty"`
	PctFrom52WHigh   *float64   `json:"percent_from_52w_high,omitempty"`
	PctFrom52WLow    *float64   `json:"percent_from_52w_low,omitempty"`
	RelativeVolume   *float64   `json:"relative_volume,omitempty"`
	MACDSignal       SignalType `json:"macd_signal_type,omitempty"`
}

// BuildSnapshot assembles a Snapshot from a provider quote and the close
// history. RSI and the MACD signal classification come from the closes;
// every derived percentage is absent whenever its reference is absent or
// zero.
func BuildSnapshot(q Quote, closes []float64) Snapshot {
	snap := Snapshot{
		Symbol:           q.Symbol,
		Price:            q.Price,
		ChangePercent:    q.ChangePercent,
		Volume:           q.Volume,
		SMA50:            q.FiftyDayAverage,
		SMA200:           q.TwoHundredDayAverage,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
	}

	snap.PctFromSMA50 = pctFrom(q.Price, q.FiftyDayAverage)
	snap.PctFromSMA200 = pctFrom(q.Price, q.TwoHundredDayAverage)
	snap.PctFrom52WHigh = pctFrom(q.Price, q.FiftyTwoWeekHigh)
	snap.PctFrom52WLow = pctFrom(q.Price, q.FiftyTwoWeekLow)

	if q.Volume != nil && q.AverageVolume != nil && *q.AverageVolume > 0 {
		rv := float64(*q.Volume) / float64(*q.AverageVolume)
		snap.RelativeVolume = &rv
	}

	if rsi, ok := RSI(closes, DefaultRSIPeriod); ok {
		snap.RSI = &rsi
	}
	if macd, ok := MACD(closes); ok {
		snap.MACDSignal = macd.SignalType()
	}

	return snap
}

// pctFrom returns (value-ref)/ref*100, or nil when either side is absent
// or the reference is zero.
func pctFrom(value, ref *float64) *float64 {
	if value == nil || ref == nil || *ref == 0 {
		return nil
	}
	pct := (*value - *ref) / *ref * 100
	return &pct
}

// Float returns a pointer to v. Convenience for building quotes.
func Float(v float64) *float64 {
	return &v
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}
