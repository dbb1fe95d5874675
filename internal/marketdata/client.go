package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/tradescout/tradescout/internal/core/indicator"
	"github.com/tradescout/tradescout/internal/core/series"
	"github.com/tradescout/tradescout/pkg/config"
	"github.com/tradescout/tradescout/pkg/httputil"
	"github.com/tradescout/tradescout/pkg/logger"
)

// Client talks to the quote and chart endpoints of the provider.
// All provider API calls go through this client, behind one shared
// politeness rate limit.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a provider client from the market-data config.
func NewClient(cfg config.MarketDataConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// quoteResponse mirrors the provider's v7 quote envelope. Every numeric
// field is a pointer so absent upstream values stay absent.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
	AverageDailyVolume3Month   *int64   `json:"averageDailyVolume3Month"`
	AverageDailyVolume10Day    *int64   `json:"averageDailyVolume10Day"`
	FiftyDayAverage            *float64 `json:"fiftyDayAverage"`
	TwoHundredDayAverage       *float64 `json:"twoHundredDayAverage"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Quote fetches the current market snapshot for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (indicator.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return indicator.Quote{}, err
	}

	fullURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))

	var resp quoteResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return indicator.Quote{}, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if e := resp.QuoteResponse.Error; e != nil {
		return indicator.Quote{}, fmt.Errorf("quote for %s: provider error %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return indicator.Quote{}, fmt.Errorf("quote for %s: %w", symbol, ErrSymbolNotFound)
	}

	r := resp.QuoteResponse.Result[0]
	avgVolume := r.AverageDailyVolume3Month
	if avgVolume == nil {
		// Thinly covered listings often only carry the 10-day figure.
		avgVolume = r.AverageDailyVolume10Day
	}

	quote := indicator.Quote{
		Symbol:               symbol,
		Price:                r.RegularMarketPrice,
		ChangePercent:        r.RegularMarketChangePercent,
		Volume:               r.RegularMarketVolume,
		AverageVolume:        avgVolume,
		FiftyDayAverage:      r.FiftyDayAverage,
		TwoHundredDayAverage: r.TwoHundredDayAverage,
		FiftyTwoWeekHigh:     r.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:      r.FiftyTwoWeekLow,
	}

	c.logger.WithField("symbol", symbol).Debug("Fetched quote")
	return quote, nil
}

// chartResponse mirrors the provider's v8 chart envelope.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// History fetches the daily close history for a symbol. Null closes
// (halts, data gaps) are dropped before the series is built, so the
// indicator chain only ever sees real prices.
func (c *Client) History(ctx context.Context, symbol string, lookbackDays int) (series.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return series.Series{}, err
	}

	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(symbol), rangeParam(lookbackDays))

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return series.Series{}, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if e := resp.Chart.Error; e != nil {
		return series.Series{}, fmt.Errorf("history for %s: provider error %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return series.Series{}, fmt.Errorf("history for %s: %w", symbol, ErrSymbolNotFound)
	}

	r := resp.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return series.Series{}, fmt.Errorf("history for %s: empty indicator block", symbol)
	}
	closes := r.Indicators.Quote[0].Close

	bars := make([]series.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		bars = append(bars, series.Bar{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *closes[i],
		})
	}

	s, err := series.New(bars)
	if err != nil {
		return series.Series{}, fmt.Errorf("history for %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   s.Len(),
	}).Debug("Fetched history")
	return s, nil
}

// rangeParam maps a lookback in days onto the provider's coarse range
// buckets, always rounding up so the caller gets at least what it asked
// for.
func rangeParam(lookbackDays int) string {
	switch {
	case lookbackDays <= 0:
		return "1y"
	case lookbackDays <= 30:
		return "1mo"
	case lookbackDays <= 90:
		return "3mo"
	case lookbackDays <= 180:
		return "6mo"
	case lookbackDays <= 365:
		return "1y"
	case lookbackDays <= 730:
		return "2y"
	case lookbackDays <= 1825:
		return "5y"
	default:
		return "10y"
	}
}
