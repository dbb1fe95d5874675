package commands

import (
	"fmt"

	"github.com/tradescout/tradescout/internal/marketdata"
	"github.com/tradescout/tradescout/internal/scan"
	"github.com/tradescout/tradescout/pkg/config"
	"github.com/tradescout/tradescout/pkg/httputil"
	"github.com/tradescout/tradescout/pkg/logger"
	"github.com/tradescout/tradescout/pkg/redis"
)

// deps is the wiring every command starts from: config, logger, the
// market-data provider (quote-cached when Redis is enabled), and the
// scanner.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	redis    *redis.Client
	provider marketdata.Provider
	scanner  *scan.Scanner
}

// initDeps loads config and builds the provider stack.
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	httpClient := httputil.New(cfg.MarketData.Timeout, log)
	client := marketdata.NewClient(cfg.MarketData, httpClient, log)
	screener := marketdata.NewScreener(cfg.MarketData, httpClient, log)

	var provider marketdata.Provider = marketdata.NewService(client, screener)

	redisClient, err := redis.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if redisClient.Enabled() {
		cache := redis.NewCache(redisClient, "tradescout")
		provider = marketdata.NewCachedProvider(provider, cache, cfg.Scan.QuoteCacheTTL, log)
		log.Info("Quote cache enabled")
	}

	return &deps{
		cfg:      cfg,
		log:      log,
		redis:    redisClient,
		provider: provider,
		scanner:  scan.New(provider, cfg.Scan.Workers, cfg.Scan.TopN, log),
	}, nil
}

// close releases shared resources.
func (d *deps) close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
}
