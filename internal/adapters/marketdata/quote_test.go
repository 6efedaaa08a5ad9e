package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alejandrodnm/greekbot/internal/adapters/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../../testdata/fixtures/" + name)
	require.NoError(t, err)
	return data
}

func newQuoteServer(t *testing.T) *httptest.Server {
	chartAAPL := readFixture(t, "chart_aapl.json")
	chartTNX := readFixture(t, "chart_tnx.json")
	summaryAAPL := readFixture(t, "summary_aapl.json")

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v8/finance/chart/AAPL":
			w.Write(chartAAPL)
		case "/v8/finance/chart/^TNX":
			w.Write(chartTNX)
		case "/v10/finance/quoteSummary/AAPL":
			assert.Equal(t, "summaryDetail", r.URL.Query().Get("modules"))
			w.Write(summaryAAPL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchQuote_Success(t *testing.T) {
	srv := newQuoteServer(t)
	defer srv.Close()

	client := marketdata.NewClient(srv.URL)
	quote, err := client.FetchQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.InDelta(t, 187.44, quote.Spot, 0.001)
	assert.InDelta(t, 0.0051, quote.DividendYield, 1e-6)
	// El ^TNX cotiza en puntos porcentuales: 4.25 → 0.0425.
	assert.InDelta(t, 0.0425, quote.RiskFree, 1e-6)
	assert.Equal(t, time.Unix(1756584000, 0).UTC(), quote.AsOf)
}

func TestFetchQuote_MissingDividendYieldDefaultsToZero(t *testing.T) {
	chartAAPL := readFixture(t, "chart_aapl.json")
	chartTNX := readFixture(t, "chart_tnx.json")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v8/finance/chart/AAPL":
			w.Write(chartAAPL)
		case "/v8/finance/chart/^TNX":
			w.Write(chartTNX)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := marketdata.NewClient(srv.URL)
	quote, err := client.FetchQuote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.DividendYield)
	assert.InDelta(t, 187.44, quote.Spot, 0.001)
}

func TestFetchQuote_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := marketdata.NewClient(srv.URL)
	_, err := client.FetchQuote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestStatic_FetchQuote(t *testing.T) {
	static := marketdata.Static{Spot: 100, DividendYield: 0.01, RiskFree: 0.05}

	quote, err := static.FetchQuote(context.Background(), "SYNTH")
	require.NoError(t, err)
	assert.Equal(t, "SYNTH", quote.Symbol)
	assert.Equal(t, 100.0, quote.Spot)

	_, err = marketdata.Static{}.FetchQuote(context.Background(), "SYNTH")
	assert.Error(t, err)
}
