// Package marketdata fetches quotes, close histories, and the active
// universe from the upstream market-data provider. It is the only
// package that talks to the provider; everything downstream consumes
// the typed shapes it returns.
package marketdata

import (
	"context"
	"errors"

	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/series"
)

// ErrSymbolNotFound is returned when the provider has no data for a
// symbol. Callers treat it as a per-symbol failure, never a run abort.
var ErrSymbolNotFound = errors.New("symbol not found")

// QuoteProvider supplies the point-in-time market snapshot for one
// symbol. Fields the provider cannot supply stay nil.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (indicator.Quote, error)
}

// HistoryProvider supplies the validated daily close history for one
// symbol, most recent bar last.
type HistoryProvider interface {
	History(ctx context.Context, symbol string, lookbackDays int) (series.Series, error)
}

// UniverseProvider discovers the symbols worth scanning today.
type UniverseProvider interface {
	MostActive(ctx context.Context, limit int) ([]string, error)
}

// Provider bundles the three surfaces a full scan needs.
type Provider interface {
	QuoteProvider
	HistoryProvider
	UniverseProvider
}
