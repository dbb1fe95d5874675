package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/series"
	"github.com/tradescout/tradescout/pkg/logger"
	"github.com/tradescout/tradescout/pkg/redis"
)

// CachedProvider wraps a Provider with a TTL-bounded quote cache. Only
// quotes are cached; histories change once a day and are cheap relative
// to the per-symbol quote fan-out, and the universe must stay fresh.
// Cache failures degrade to upstream fetches, never to request errors.
type CachedProvider struct {
	upstream Provider
	cache    *redis.Cache
	logger   *logger.Logger
	ttl      time.Duration
}

// NewCachedProvider decorates upstream with the quote cache.
func NewCachedProvider(upstream Provider, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		cache:    cache,
		logger:   log,
		ttl:      ttl,
	}
}

// Quote returns a cached quote when one is fresh, otherwise fetches and
// stores.
func (p *CachedProvider) Quote(ctx context.Context, symbol string) (indicator.Quote, error) {
	key := fmt.Sprintf("quote:%s", symbol)

	var cached indicator.Quote
	found, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Quote cache read failed")
	}
	if found {
		return cached, nil
	}

	quote, err := p.upstream.Quote(ctx, symbol)
	if err != nil {
		return indicator.Quote{}, err
	}

	if err := p.cache.Set(ctx, key, quote, p.ttl); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Quote cache write failed")
	}
	return quote, nil
}

// History delegates to upstream.
func (p *CachedProvider) History(ctx context.Context, symbol string, lookbackDays int) (series.Series, error) {
	return p.upstream.History(ctx, symbol, lookbackDays)
}

// MostActive delegates to upstream.
func (p *CachedProvider) MostActive(ctx context.Context, limit int) ([]string, error) {
	return p.upstream.MostActive(ctx, limit)
}
