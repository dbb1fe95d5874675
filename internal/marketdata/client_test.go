package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/pkg/config"
	"github.com/tradescout/tradescout/pkg/httputil"
	"github.com/tradescout/tradescout/pkg/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	cfg := config.MarketDataConfig{
		BaseURL:           srv.URL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
	}
	return NewClient(cfg, httputil.New(cfg.Timeout, log).DisableRetry(), log)
}

func TestClient_Quote(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "ACME", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, `{"quoteResponse":{"result":[{
			"symbol":"ACME",
			"regularMarketPrice":110.5,
			"regularMarketChangePercent":2.4,
			"regularMarketVolume":3000000,
			"averageDailyVolume3Month":1500000,
			"fiftyDayAverage":100.0,
			"twoHundredDayAverage":88.0,
			"fiftyTwoWeekHigh":120.0,
			"fiftyTwoWeekLow":60.0
		}],"error":null}}`)
	}))

	quote, err := client.Quote(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Equal(t, "ACME", quote.Symbol)
	require.NotNil(t, quote.Price)
	assert.Equal(t, 110.5, *quote.Price)
	require.NotNil(t, quote.AverageVolume)
	assert.Equal(t, int64(1_500_000), *quote.AverageVolume)
	require.NotNil(t, quote.TwoHundredDayAverage)
	assert.Equal(t, 88.0, *quote.TwoHundredDayAverage)
}

func TestClient_QuoteMissingFieldsStayAbsent(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{
			"symbol":"ACME",
			"regularMarketPrice":42.0
		}],"error":null}}`)
	}))

	quote, err := client.Quote(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Nil(t, quote.ChangePercent)
	assert.Nil(t, quote.Volume)
	assert.Nil(t, quote.AverageVolume)
	assert.Nil(t, quote.FiftyDayAverage)
	assert.Nil(t, quote.FiftyTwoWeekHigh)
}

func TestClient_QuoteVolumeFallback(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{
			"symbol":"ACME",
			"averageDailyVolume10Day":700000
		}],"error":null}}`)
	}))

	quote, err := client.Quote(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, quote.AverageVolume)
	assert.Equal(t, int64(700_000), *quote.AverageVolume)
}

func TestClient_QuoteUnknownSymbol(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
	}))

	_, err := client.Quote(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, ErrSymbolNotFound))
}

func TestClient_HistoryFiltersNullCloses(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]int64, 5)
	for i := range ts {
		ts[i] = base.AddDate(0, 0, i).Unix()
	}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/ACME", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprintf(w, `{"chart":{"result":[{
			"timestamp":[%d,%d,%d,%d,%d],
			"indicators":{"quote":[{"close":[100.0,null,102.0,null,104.0]}]}
		}],"error":null}}`, ts[0], ts[1], ts[2], ts[3], ts[4])
	}))

	s, err := client.History(context.Background(), "ACME", 365)
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{100, 102, 104}, s.Closes())
}

func TestClient_HistoryProviderError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))

	_, err := client.History(context.Background(), "NOPE", 365)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestRangeParam(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "1y"},
		{20, "1mo"},
		{365, "1y"},
		{366, "2y"},
		{1095, "5y"},
		{4000, "10y"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rangeParam(tt.days), "days=%d", tt.days)
	}
}
