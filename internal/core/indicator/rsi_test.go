package indicator

import (
	"math"
	"testing"
)

func TestRSI_InsufficientData(t *testing.T) {
	closes := make([]float64, DefaultRSIPeriod) // one short of period+1
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if _, ok := RSI(closes, DefaultRSIPeriod); ok {
		t.Error("RSI should be absent with fewer than period+1 closes")
	}
}

func TestRSI_AllGainsIsExactly100(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, ok := RSI(closes, DefaultRSIPeriod)
	if !ok {
		t.Fatal("RSI should be defined")
	}
	if rsi != 100 {
		t.Errorf("RSI = %v, want exactly 100 when avgLoss is zero", rsi)
	}
}

func TestRSI_FlatSeriesIsUndefined(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 10
	}
	if _, ok := RSI(closes, DefaultRSIPeriod); ok {
		t.Error("RSI should be undefined when every delta is zero")
	}
}

func TestRSI_WilderRecursion(t *testing.T) {
	// Period 2, closes [1,2,3,1]: seed avgGain=1, avgLoss=0; the -2 delta
	// gives avgGain=0.5, avgLoss=1, RS=0.5, RSI=100-100/1.5.
	rsi, ok := RSI([]float64{1, 2, 3, 1}, 2)
	if !ok {
		t.Fatal("RSI should be defined")
	}
	want := 100 - 100/1.5
	if math.Abs(rsi-want) > 1e-9 {
		t.Errorf("RSI = %v, want %v", rsi, want)
	}
}

func TestRSI_Bounded(t *testing.T) {
	// A jagged walk must stay inside [0, 100].
	closes := make([]float64, 120)
	closes[0] = 50
	for i := 1; i < len(closes); i++ {
		if i%3 == 0 {
			closes[i] = closes[i-1] * 0.97
		} else {
			closes[i] = closes[i-1] * 1.02
		}
	}
	rsi, ok := RSI(closes, DefaultRSIPeriod)
	if !ok {
		t.Fatal("RSI should be defined")
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI = %v, outside [0, 100]", rsi)
	}
}
