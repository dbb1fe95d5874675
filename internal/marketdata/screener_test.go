package marketdata

import (
	"context"
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

const screenerPage = `<html><body><table>
<thead><tr><th>Symbol</th><th>Name</th></tr></thead>
<tbody>
<tr><td aria-label="Symbol"><a href="/quote/AAA">AAA</a></td><td>Alpha Corp</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/BBB">BBB</a></td><td>Beta Inc</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/AAA">AAA</a></td><td>Alpha Corp dup</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/ccc">ccc</a></td><td>Gamma Ltd</td></tr>
</tbody>
</table></body></html>`

const legacyPage = `<html><body><table>
<tbody>
<tr><td>DDD</td><td>Delta</td></tr>
<tr><td>EEE</td><td>Epsilon</td></tr>
</tbody>
</table></body></html>`

func testScreener(t *testing.T, page string) *Screener {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	cfg := config.MarketDataConfig{ScreenerURL: srv.URL, Timeout: 5 * time.Second}
	return NewScreener(cfg, httputil.New(cfg.Timeout, log).DisableRetry(), log)
}

func TestScreener_MostActive(t *testing.T) {
	s := testScreener(t, screenerPage)

	symbols, err := s.MostActive(context.Background(), 25)
	require.NoError(t, err)

	// Duplicates collapse, case is normalized, page order is kept.
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, symbols)
}

func TestScreener_LimitTruncates(t *testing.T) {
	s := testScreener(t, screenerPage)

	symbols, err := s.MostActive(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, symbols)
}

func TestScreener_LegacyTableFallback(t *testing.T) {
	s := testScreener(t, legacyPage)

	symbols, err := s.MostActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"DDD", "EEE"}, symbols)
}

func TestScreener_EmptyPageIsAnError(t *testing.T) {
	s := testScreener(t, "<html><body><p>maintenance</p></body></html>")

	_, err := s.MostActive(context.Background(), 10)
	assert.Error(t, err)
}
