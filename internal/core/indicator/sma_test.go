package indicator

import (
	"math"
	"testing"
)

func TestSMASeries(t *testing.T) {
	closes := []float64{10, 20, 30, 40, 50}
	out := SMASeries(closes, 3)

	if len(out) != len(closes) {
		t.Fatalf("length = %d, want %d", len(out), len(closes))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("out[%d] = %v, want NaN before the window fills", i, out[i])
		}
	}

	want := []float64{20, 30, 40}
	for i, w := range want {
		if out[i+2] != w {
			t.Errorf("out[%d] = %v, want %v", i+2, out[i+2], w)
		}
	}
}

func TestSMASeries_FirstValueIsExactMean(t *testing.T) {
	closes := []float64{3.17, 8.42, 1.99, 5.55}
	out := SMASeries(closes, 4)

	mean := (3.17 + 8.42 + 1.99 + 5.55) / 4
	if out[3] != math.Round(mean*100)/100 {
		t.Errorf("out[3] = %v, want mean %v rounded to 2dp", out[3], mean)
	}
}

func TestSMASeries_ShortInput(t *testing.T) {
	out := SMASeries([]float64{1, 2}, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("out[%d] = %v, want NaN for series shorter than period", i, v)
		}
	}
}

func TestSMA(t *testing.T) {
	if _, ok := SMA([]float64{1, 2, 3}, 5); ok {
		t.Error("SMA should be absent with fewer closes than the period")
	}

	v, ok := SMA([]float64{1, 2, 3, 4, 5, 6}, 3)
	if !ok {
		t.Fatal("SMA should be defined")
	}
	if v != 5 {
		t.Errorf("SMA = %v, want 5 (mean of trailing 3)", v)
	}
}

func TestSMA_RoundsToTwoDecimals(t *testing.T) {
	v, ok := SMA([]float64{1, 1, 1.01}, 3)
	if !ok {
		t.Fatal("SMA should be defined")
	}
	if v != 1.0 {
		t.Errorf("SMA = %v, want 1.00 after rounding", v)
	}
}
