package marketdata

// quote.go — composición del Quote: spot + dividend yield del instrumento y
// tipo libre de riesgo del índice de la nota del Tesoro a 10 años.
//
// Toda la normalización porcentaje→decimal ocurre aquí, nunca en el engine:
// el dividend yield llega ya en decimal (campo raw) y el ^TNX cotiza en
// puntos porcentuales, así que se divide entre 100.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

const (
	chartPath   = "/v8/finance/chart"
	summaryPath = "/v10/finance/quoteSummary"

	// riskFreeSymbol es el índice CBOE del yield de la T-note a 10 años.
	riskFreeSymbol = "%5ETNX"
)

// FetchQuote implementa ports.MarketProvider: obtiene spot, dividend yield
// y tipo libre de riesgo para el símbolo dado, normalizados a decimales.
//
// Si el endpoint de summary no devuelve dividend yield (instrumento sin
// dividendo), el Quote lleva q=0 — permitido por la política de sweep.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	spot, asOf, err := c.fetchSpot(ctx, symbol)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("marketdata.FetchQuote: spot: %w", err)
	}

	divYield, err := c.fetchDividendYield(ctx, symbol)
	if err != nil {
		// Sin dividendo no es fatal: muchos subyacentes no reparten.
		slog.Debug("dividend yield unavailable, assuming zero", "symbol", symbol, "err", err)
		divYield = 0
	}

	riskFree, err := c.fetchRiskFree(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("marketdata.FetchQuote: risk-free: %w", err)
	}

	return domain.Quote{
		Symbol:        symbol,
		Spot:          spot,
		DividendYield: divYield,
		RiskFree:      riskFree,
		AsOf:          asOf,
	}, nil
}

// fetchSpot devuelve el último precio regular de mercado del símbolo.
func (c *Client) fetchSpot(ctx context.Context, symbol string) (float64, time.Time, error) {
	var resp chartResponse
	url := fmt.Sprintf("%s%s/%s?range=1d&interval=1d", c.base, chartPath, symbol)
	if err := c.get(ctx, url, &resp); err != nil {
		return 0, time.Time{}, err
	}
	if len(resp.Chart.Result) == 0 {
		return 0, time.Time{}, fmt.Errorf("no chart result for %q", symbol)
	}

	meta := resp.Chart.Result[0].Meta
	return meta.RegularMarketPrice, time.Unix(meta.RegularMarketTime, 0).UTC(), nil
}

// fetchDividendYield devuelve el dividend yield del símbolo en decimal.
func (c *Client) fetchDividendYield(ctx context.Context, symbol string) (float64, error) {
	var resp summaryResponse
	url := fmt.Sprintf("%s%s/%s?modules=summaryDetail", c.base, summaryPath, symbol)
	if err := c.get(ctx, url, &resp); err != nil {
		return 0, err
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return 0, fmt.Errorf("no summary result for %q", symbol)
	}
	return resp.QuoteSummary.Result[0].SummaryDetail.DividendYield.Raw, nil
}

// fetchRiskFree devuelve el yield del ^TNX convertido de puntos
// porcentuales a decimal.
func (c *Client) fetchRiskFree(ctx context.Context) (float64, error) {
	var resp chartResponse
	url := fmt.Sprintf("%s%s/%s?range=1d&interval=1d", c.base, chartPath, riskFreeSymbol)
	if err := c.get(ctx, url, &resp); err != nil {
		return 0, err
	}
	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no chart result for risk-free index")
	}
	return resp.Chart.Result[0].Meta.RegularMarketPrice / 100, nil
}
