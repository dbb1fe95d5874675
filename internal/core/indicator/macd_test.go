package indicator

import (
	"math"
	"reflect"
	"testing"
)

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func TestMACD_InsufficientData(t *testing.T) {
	if _, ok := MACD(risingCloses(MACDSlowPeriod + MACDSignalPeriod - 1)); ok {
		t.Error("MACD should be absent below slow+signal closes")
	}
}

func TestMACD_DefinedAtMinimumLength(t *testing.T) {
	res, ok := MACD(risingCloses(MACDSlowPeriod + MACDSignalPeriod))
	if !ok {
		t.Fatal("MACD should be defined at exactly slow+signal closes")
	}
	if res.Histogram != res.Value-res.Signal {
		t.Errorf("histogram %v != value-signal %v", res.Histogram, res.Value-res.Signal)
	}
}

func TestMACD_Deterministic(t *testing.T) {
	closes := risingCloses(80)
	a, okA := MACD(closes)
	b, okB := MACD(closes)
	if !okA || !okB {
		t.Fatal("MACD should be defined")
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("MACD not deterministic: %+v vs %+v", a, b)
	}
}

func TestMACD_SignalIsTrueRecursionValue(t *testing.T) {
	// The current signal value must follow from the retained previous
	// signal value via the EMA recursion, not a reconstruction.
	res, ok := MACD(risingCloses(80))
	if !ok {
		t.Fatal("MACD should be defined")
	}
	k := 2.0 / (float64(MACDSignalPeriod) + 1.0)
	want := (res.Value-res.PrevSignal)*k + res.PrevSignal
	if math.Abs(res.Signal-want) > 1e-12 {
		t.Errorf("Signal = %v, want %v from the recursion", res.Signal, want)
	}
}

func TestMACD_RisingSeriesIsStrongBullish(t *testing.T) {
	res, ok := MACD(risingCloses(80))
	if !ok {
		t.Fatal("MACD should be defined")
	}
	if res.Value <= 0 {
		t.Errorf("MACD of a steadily rising series should be positive, got %v", res.Value)
	}
	if got := res.SignalType(); got != SignalStrongBullish {
		t.Errorf("SignalType = %q, want %q", got, SignalStrongBullish)
	}
}

func TestMACDResult_SignalType(t *testing.T) {
	tests := []struct {
		name string
		res  MACDResult
		want SignalType
	}{
		{
			name: "fresh bullish cross",
			res:  MACDResult{PrevValue: -1, PrevSignal: 0, Value: 1, Signal: 0.5},
			want: SignalBullishCrossover,
		},
		{
			name: "fresh bearish cross",
			res:  MACDResult{PrevValue: 1, PrevSignal: 0.5, Value: -1, Signal: 0},
			want: SignalBearishCrossover,
		},
		{
			name: "positive and above signal",
			res:  MACDResult{PrevValue: 2, PrevSignal: 1, Value: 2.5, Signal: 1.5},
			want: SignalStrongBullish,
		},
		{
			name: "negative and below signal",
			res:  MACDResult{PrevValue: -2, PrevSignal: -1, Value: -2.5, Signal: -1.4},
			want: SignalStrongBearish,
		},
		{
			name: "negative but recovering above signal",
			res:  MACDResult{PrevValue: -1, PrevSignal: -2, Value: -0.5, Signal: -1},
			want: SignalNone,
		},
		{
			// A constant MACD line sitting on its signal line has not
			// crossed anything.
			name: "steady positive contact is continuation",
			res:  MACDResult{PrevValue: 7, PrevSignal: 7, Value: 7, Signal: 7},
			want: SignalStrongBullish,
		},
		{
			name: "steady contact at zero",
			res:  MACDResult{PrevValue: 0, PrevSignal: 0, Value: 0, Signal: 0},
			want: SignalNone,
		},
		{
			name: "drop onto the signal line",
			res:  MACDResult{PrevValue: 1, PrevSignal: 0.5, Value: 0.5, Signal: 0.5},
			want: SignalBearishCrossover,
		},
		{
			name: "drop below from contact",
			res:  MACDResult{PrevValue: 0.5, PrevSignal: 0.5, Value: -0.2, Signal: 0},
			want: SignalBearishCrossover,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.SignalType(); got != tt.want {
				t.Errorf("SignalType = %q, want %q", got, tt.want)
			}
		})
	}
}
