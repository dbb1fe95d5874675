package marketdata

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradescout/tradescout/pkg/config"
	"github.com/tradescout/tradescout/pkg/httputil"
	"github.com/tradescout/tradescout/pkg/logger"
)

// Screener discovers the day's most actively traded symbols by scraping
// the provider's screener page. The page carries its rows in a plain
// table, one symbol per row.
type Screener struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	pageURL    string
}

// NewScreener creates a screener scraper.
func NewScreener(cfg config.MarketDataConfig, httpClient *httputil.Client, log *logger.Logger) *Screener {
	return &Screener{
		httpClient: httpClient,
		logger:     log,
		pageURL:    cfg.ScreenerURL,
	}
}

// MostActive returns up to limit symbols in page order. Duplicate rows
// collapse to the first occurrence.
func (s *Screener) MostActive(ctx context.Context, limit int) ([]string, error) {
	pageURL := s.pageURL
	if limit > 0 {
		pageURL = fmt.Sprintf("%s?count=%d", s.pageURL, limit)
	}

	body, err := s.httpClient.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch screener page: %w", err)
	}

	symbols, err := parseScreenerHTML(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(symbols) > limit {
		symbols = symbols[:limit]
	}

	s.logger.WithField("count", len(symbols)).Debug("Fetched most-active universe")
	return symbols, nil
}

// parseScreenerHTML pulls symbols out of the screener table. The symbol
// cell is marked with aria-label="Symbol"; older page versions fall
// back to the first cell of each body row.
func parseScreenerHTML(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse screener page: %w", err)
	}

	seen := make(map[string]bool)
	var symbols []string
	record := func(text string) {
		symbol := strings.ToUpper(strings.TrimSpace(text))
		if symbol == "" || symbol == "SYMBOL" || seen[symbol] {
			return
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}

	doc.Find(`td[aria-label="Symbol"]`).Each(func(i int, cell *goquery.Selection) {
		record(cell.Text())
	})
	if len(symbols) == 0 {
		doc.Find("table tbody tr").Each(func(i int, row *goquery.Selection) {
			record(row.Find("td").First().Text())
		})
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("screener page contained no symbols")
	}
	return symbols, nil
}
