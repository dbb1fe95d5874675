// Package breakout turns a single indicator snapshot into discrete,
// categorized alert records. Rules are independent; one snapshot can
// fire several alerts at once.
package breakout

import (
	"fmt"
	"math"

	"github.com/tradescout/tradescout/internal/core/indicator"
)

// Severity tags an alert's directional bias.
type Severity string

const (
	Bullish Severity = "bullish"
	Bearish Severity = "bearish"
	Neutral Severity = "neutral"
)

// Category groups related alert types for display.
type Category string

const (
	CategoryMACrossover    Category = "ma_crossover"
	Category52WLevels      Category = "52w_levels"
	CategoryRSISignals     Category = "rsi_signals"
	CategoryMACDSignals    Category = "macd_signals"
	CategoryVolumeBreakout Category = "volume_breakout"
)

// Stable alert type identifiers.
const (
	TypeAbove50MA             = "above_50ma"
	TypeBelow50MA             = "below_50ma"
	TypeAbove200MA            = "above_200ma"
	TypeBelow200MA            = "below_200ma"
	TypeGoldenCross           = "golden_cross"
	TypeDeathCross            = "death_cross"
	TypeNew52WHigh            = "new_52w_high"
	TypeNear52WHigh           = "near_52w_high"
	TypeNew52WLow             = "new_52w_low"
	TypeNear52WLow            = "near_52w_low"
	TypeRSIOversold           = "rsi_oversold"
	TypeApproachingOversold   = "approaching_oversold"
	TypeRSIOverbought         = "rsi_overbought"
	TypeApproachingOverbought = "approaching_overbought"
	TypeHighVolume            = "high_volume"
	TypeMACDBullishCross      = "macd_bullish_cross"
	TypeMACDBearishCross      = "macd_bearish_cross"
	TypeMACDStrongBullish     = "macd_strong_bullish"
	TypeMACDStrongBearish     = "macd_strong_bearish"
)

// Alert is one fired rule for one symbol.
type Alert struct {
	Symbol      string   `json:"symbol"`
	Type        string   `json:"alert_type"`
	Category    Category `json:"alert_category"`
	Description string   `json:"alert_description"`
	Severity    Severity `json:"severity"`
}

// Rule thresholds, in percent unless noted.
const (
	sma50Proximity    = 5.0
	sma200Proximity   = 8.0
	maCrossProximity  = 3.0
	high52wProximity  = 5.0  // within 5% below the high
	low52wProximity   = 10.0 // within 10% above the low
	rsiLowZone        = 35.0
	rsiOversold       = 30.0
	rsiHighZone       = 65.0
	rsiOverbought     = 70.0
	volumeSurgeFactor = 1.5 // relative volume
)

// Classify evaluates every rule against the snapshot. Rules that depend
// on an absent field simply do not fire. The returned order is the fixed
// display order; the alert set itself does not depend on it.
func Classify(snap indicator.Snapshot) []Alert {
	alerts := make([]Alert, 0, 4)
	add := func(alertType string, category Category, severity Severity, format string, args ...interface{}) {
		alerts = append(alerts, Alert{
			Symbol:      snap.Symbol,
			Type:        alertType,
			Category:    category,
			Description: fmt.Sprintf(format, args...),
			Severity:    severity,
		})
	}

	// 50-day MA proximity.
	if p := snap.PctFromSMA50; p != nil && math.Abs(*p) <= sma50Proximity {
		if *p >= 0 {
			add(TypeAbove50MA, CategoryMACrossover, Bullish,
				"Trading %.1f%% above its 50-day moving average", *p)
		} else {
			add(TypeBelow50MA, CategoryMACrossover, Bearish,
				"Trading %.1f%% below its 50-day moving average", -*p)
		}
	}

	// 200-day MA proximity.
	if p := snap.PctFromSMA200; p != nil && math.Abs(*p) <= sma200Proximity {
		if *p >= 0 {
			add(TypeAbove200MA, CategoryMACrossover, Bullish,
				"Trading %.1f%% above its 200-day moving average", *p)
		} else {
			add(TypeBelow200MA, CategoryMACrossover, Bearish,
				"Trading %.1f%% below its 200-day moving average", -*p)
		}
	}

	// 50/200 cross proximity.
	if snap.SMA50 != nil && snap.SMA200 != nil && *snap.SMA200 != 0 {
		spread := (*snap.SMA50 - *snap.SMA200) / *snap.SMA200 * 100
		if math.Abs(spread) <= maCrossProximity {
			if spread >= 0 {
				add(TypeGoldenCross, CategoryMACrossover, Bullish,
					"50-day MA within %.1f%% above the 200-day MA (golden cross zone)", spread)
			} else {
				add(TypeDeathCross, CategoryMACrossover, Bearish,
					"50-day MA within %.1f%% below the 200-day MA (death cross zone)", -spread)
			}
		}
	}

	// 52-week high.
	if p := snap.PctFrom52WHigh; p != nil && *p >= -high52wProximity {
		if *p >= 0 {
			add(TypeNew52WHigh, Category52WLevels, Bullish,
				"Trading at a new 52-week high (%.1f%% above the previous high)", *p)
		} else {
			add(TypeNear52WHigh, Category52WLevels, Bullish,
				"Within %.1f%% of its 52-week high", -*p)
		}
	}

	// 52-week low.
	if p := snap.PctFrom52WLow; p != nil && *p <= low52wProximity {
		if *p <= 0 {
			add(TypeNew52WLow, Category52WLevels, Bearish,
				"Trading at a new 52-week low")
		} else {
			add(TypeNear52WLow, Category52WLevels, Neutral,
				"Only %.1f%% above its 52-week low", *p)
		}
	}

	// RSI zones.
	if r := snap.RSI; r != nil {
		switch {
		case *r <= rsiOversold:
			add(TypeRSIOversold, CategoryRSISignals, Bullish,
				"RSI at %.1f, oversold", *r)
		case *r <= rsiLowZone:
			add(TypeApproachingOversold, CategoryRSISignals, Bullish,
				"RSI at %.1f, approaching oversold", *r)
		case *r >= rsiOverbought:
			add(TypeRSIOverbought, CategoryRSISignals, Bearish,
				"RSI at %.1f, overbought", *r)
		case *r >= rsiHighZone:
			add(TypeApproachingOverbought, CategoryRSISignals, Bearish,
				"RSI at %.1f, approaching overbought", *r)
		}
	}

	// Volume surge. Severity follows the direction of the day's move.
	if rv := snap.RelativeVolume; rv != nil && *rv >= volumeSurgeFactor {
		severity := Neutral
		if c := snap.ChangePercent; c != nil {
			if *c > 0 {
				severity = Bullish
			} else if *c < 0 {
				severity = Bearish
			}
		}
		add(TypeHighVolume, CategoryVolumeBreakout, severity,
			"Volume running %.1fx its trailing average", *rv)
	}

	// MACD signal transitions.
	switch snap.MACDSignal {
	case indicator.SignalBullishCrossover:
		add(TypeMACDBullishCross, CategoryMACDSignals, Bullish,
			"MACD crossed above its signal line")
	case indicator.SignalBearishCrossover:
		add(TypeMACDBearishCross, CategoryMACDSignals, Bearish,
			"MACD crossed below its signal line")
	case indicator.SignalStrongBullish:
		add(TypeMACDStrongBullish, CategoryMACDSignals, Bullish,
			"MACD positive and holding above its signal line")
	case indicator.SignalStrongBearish:
		add(TypeMACDStrongBearish, CategoryMACDSignals, Bearish,
			"MACD negative and holding below its signal line")
	}

	return alerts
}

// GroupByCategory buckets alerts by category, preserving order within
// each bucket.
func GroupByCategory(alerts []Alert) map[Category][]Alert {
	grouped := make(map[Category][]Alert)
	for _, a := range alerts {
		grouped[a.Category] = append(grouped[a.Category], a)
	}
	return grouped
}
