package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradescout/tradescout/internal/core/scoring"
)

func TestResolveStrategy(t *testing.T) {
	tests := []struct {
		flag    string
		want    scoring.Strategy
		wantErr bool
	}{
		{flag: "", want: ""},
		{flag: "medium_term", want: scoring.MediumTerm},
		{flag: "day_trade", want: scoring.DayTrade},
		{flag: "momentum", want: scoring.Momentum},
		{flag: "swing", wantErr: true},
		{flag: "DAY_TRADE", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveStrategy(tt.flag)
		if tt.wantErr {
			assert.Error(t, err, "flag %q", tt.flag)
			continue
		}
		assert.NoError(t, err, "flag %q", tt.flag)
		assert.Equal(t, tt.want, got)
	}
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, splitSymbols("aapl, msft"))
	assert.Empty(t, splitSymbols(" , "))
}
