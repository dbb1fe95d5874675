package scoring

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/internal/core/breakout"
	"github.com/tradescout/tradescout/internal/core/indicator"
)

func fp(v float64) *float64 { return &v }

func TestParse(t *testing.T) {
	for _, s := range Strategies() {
		got, err := Parse(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := Parse("swing_trade")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestEvaluate_UnknownStrategy(t *testing.T) {
	_, err := Evaluate(Strategy("yolo"), Input{})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestDayTrade_WorkedExample(t *testing.T) {
	// change +6%, relative volume 3.0x, 1% off the 52-week high, RSI 68:
	// 7 + 6 + 3 + 3 = 19, four valid signals, qualifies.
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:         "ACME",
		ChangePercent:  fp(6),
		RelativeVolume: fp(3.0),
		PctFrom52WHigh: fp(-1),
		RSI:            fp(68),
	}}

	res, err := Evaluate(DayTrade, in)
	require.NoError(t, err)

	assert.Equal(t, 19, res.Score)
	assert.Equal(t, 4, res.ValidSignals)
	assert.True(t, res.Qualifies)
	assert.Equal(t,
		[]string{"Big Mover", "Massive Volume", "Near 52W High", "Strong RSI"},
		res.Signals)
	assert.InDelta(t, 19.0/26.0*100, res.Normalized, 1e-9)
}

func TestDayTrade_RequiresPositiveDay(t *testing.T) {
	// Plenty of points from volume and highs, but a flat day never
	// qualifies for day trading.
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:         "ACME",
		RelativeVolume: fp(3.0),
		PctFrom52WHigh: fp(1),
		RSI:            fp(65),
	}}
	res, err := Evaluate(DayTrade, in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, dayTradeMinScore)
	assert.False(t, res.Qualifies)
}

func TestDayTrade_ChangeChainIsMonotone(t *testing.T) {
	// More change never scores less, all else equal.
	prev := -100
	for c := -5.0; c <= 10.0; c += 0.25 {
		in := Input{Snapshot: indicator.Snapshot{Symbol: "ACME", ChangePercent: fp(c)}}
		res, err := Evaluate(DayTrade, in)
		require.NoError(t, err)
		if res.Score < prev {
			t.Fatalf("score dropped from %d to %d at change %.2f", prev, res.Score, c)
		}
		prev = res.Score
	}
}

func TestDayTrade_OverheatedRSIPenaltyStacks(t *testing.T) {
	// RSI 85 is outside the 60-75 reward band but still draws the
	// exhaustion penalty.
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:        "ACME",
		ChangePercent: fp(6),
		RSI:           fp(85),
	}}
	res, err := Evaluate(DayTrade, in)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Score) // 7 - 2
	assert.Contains(t, res.Signals, "Overheated RSI")
}

func TestMediumTerm_FullBullishSetup(t *testing.T) {
	in := Input{
		Snapshot: indicator.Snapshot{
			Symbol:         "ACME",
			ChangePercent:  fp(2.5),
			PctFromSMA50:   fp(4),
			PctFromSMA200:  fp(12),
			PctFrom52WHigh: fp(-6),
			RSI:            fp(58),
			RelativeVolume: fp(1.6),
			MACDSignal:     indicator.SignalBullishCrossover,
		},
		Alerts: []breakout.Alert{
			{Symbol: "ACME", Type: breakout.TypeGoldenCross, Category: breakout.CategoryMACrossover},
			{Symbol: "ACME", Type: breakout.TypeHighVolume, Category: breakout.CategoryVolumeBreakout},
		},
	}

	res, err := Evaluate(MediumTerm, in)
	require.NoError(t, err)

	// 3 + 3 + 5 + 3 + 4 + 2 + 2 + 2 = 24, the full table.
	assert.Equal(t, 24, res.Score)
	assert.Equal(t, 100.0, res.Normalized)
	assert.True(t, res.Qualifies)
}

func TestMediumTerm_GateRequiresAbove200MA(t *testing.T) {
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:         "ACME",
		ChangePercent:  fp(3),
		PctFromSMA50:   fp(4),
		PctFromSMA200:  fp(-1),
		PctFrom52WHigh: fp(-6),
		RSI:            fp(58),
		RelativeVolume: fp(1.6),
		MACDSignal:     indicator.SignalBullishCrossover,
	}}
	res, err := Evaluate(MediumTerm, in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, mediumMinScore)
	assert.GreaterOrEqual(t, res.ValidSignals, mediumMinValidSignals)
	assert.False(t, res.Qualifies, "below the 200-day MA must not qualify")
}

func TestMediumTerm_NegativeLabelsDoNotCountAsValid(t *testing.T) {
	in := Input{
		Snapshot: indicator.Snapshot{
			Symbol:        "ACME",
			ChangePercent: fp(1),
			PctFromSMA200: fp(10),
			RSI:           fp(75),
			MACDSignal:    indicator.SignalBearishCrossover,
		},
		Alerts: []breakout.Alert{
			{Symbol: "ACME", Type: breakout.TypeDeathCross, Category: breakout.CategoryMACrossover},
		},
	}
	res, err := Evaluate(MediumTerm, in)
	require.NoError(t, err)

	assert.Contains(t, res.Signals, "Overbought")
	assert.Contains(t, res.Signals, "Death Cross")
	assert.Contains(t, res.Signals, "MACD Bearish")
	// Only "Above 200-day MA" and "Green Day" are valid.
	assert.Equal(t, 2, res.ValidSignals)
	assert.False(t, res.Qualifies)
}

func TestMomentum_EstablishedTrend(t *testing.T) {
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:         "ACME",
		ChangePercent:  fp(2.5),
		PctFromSMA50:   fp(18),
		PctFromSMA200:  fp(35),
		PctFrom52WHigh: fp(-2),
		RSI:            fp(66),
		RelativeVolume: fp(1.7),
	}}

	res, err := Evaluate(Momentum, in)
	require.NoError(t, err)

	// 3 + 2 + 4 + 2 + 2 + 2 = 15.
	assert.Equal(t, 15, res.Score)
	assert.True(t, res.Qualifies)
	assert.Equal(t,
		[]string{"Strong Uptrend", "Long-term Strength", "At Highs", "Mover", "Active Volume", "Momentum RSI"},
		res.Signals)
}

func TestMomentum_GateRequiresAbove50MA(t *testing.T) {
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:         "ACME",
		ChangePercent:  fp(6),
		PctFromSMA200:  fp(55),
		PctFrom52WHigh: fp(-1),
		RSI:            fp(60),
		RelativeVolume: fp(2),
	}}
	res, err := Evaluate(Momentum, in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, momentumMinScore)
	assert.False(t, res.Qualifies, "absent 50-day MA position must not qualify")
}

func TestEvaluate_AbsentFieldsFireNoRules(t *testing.T) {
	for _, s := range Strategies() {
		res, err := Evaluate(s, Input{Snapshot: indicator.Snapshot{Symbol: "ACME"}})
		require.NoError(t, err)
		assert.Zero(t, res.Score, "strategy %s", s)
		assert.Empty(t, res.Signals, "strategy %s", s)
		assert.False(t, res.Qualifies, "strategy %s", s)
		assert.Zero(t, res.Normalized, "strategy %s", s)
	}
}

func TestEvaluate_NegativeScoreNormalizesToZero(t *testing.T) {
	in := Input{Snapshot: indicator.Snapshot{
		Symbol:        "ACME",
		ChangePercent: fp(-4),
		PctFromSMA50:  fp(-10),
		RSI:           fp(85),
	}}
	res, err := Evaluate(Momentum, in)
	require.NoError(t, err)
	assert.Negative(t, res.Score)
	assert.Zero(t, res.Normalized)
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := Input{
		Snapshot: indicator.Snapshot{
			Symbol:         "ACME",
			ChangePercent:  fp(3.3),
			PctFromSMA50:   fp(6),
			PctFromSMA200:  fp(22),
			PctFrom52WHigh: fp(-4),
			RSI:            fp(61),
			RelativeVolume: fp(1.9),
			MACDSignal:     indicator.SignalStrongBullish,
		},
		Alerts: []breakout.Alert{
			{Symbol: "ACME", Type: breakout.TypeHighVolume, Category: breakout.CategoryVolumeBreakout},
		},
	}
	for _, s := range Strategies() {
		a, errA := Evaluate(s, in)
		b, errB := Evaluate(s, in)
		require.NoError(t, errA)
		require.NoError(t, errB)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("strategy %s not deterministic:\n%+v\n%+v", s, a, b)
		}
	}
}

func TestEvaluateAll(t *testing.T) {
	results := EvaluateAll(Input{Snapshot: indicator.Snapshot{Symbol: "ACME", ChangePercent: fp(2)}})
	require.Len(t, results, 3)
	for _, s := range Strategies() {
		res, ok := results[s]
		require.True(t, ok, "missing strategy %s", s)
		assert.Equal(t, "ACME", res.Symbol)
		assert.Equal(t, s, res.Strategy)
	}
}

func TestStrongMACDDoesNotScoreAsBullishCross(t *testing.T) {
	// Only a fresh crossover earns MACD points; a continued strong state
	// does not.
	fresh := Input{Snapshot: indicator.Snapshot{
		Symbol: "ACME", ChangePercent: fp(2), MACDSignal: indicator.SignalBullishCrossover,
	}}
	held := Input{Snapshot: indicator.Snapshot{
		Symbol: "ACME", ChangePercent: fp(2), MACDSignal: indicator.SignalStrongBullish,
	}}
	for _, s := range Strategies() {
		a, _ := Evaluate(s, fresh)
		b, _ := Evaluate(s, held)
		assert.Greater(t, a.Score, b.Score, "strategy %s", s)
	}
}
