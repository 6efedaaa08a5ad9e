package pricer_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/greekbot/internal/adapters/marketdata"
	"github.com/alejandrodnm/greekbot/internal/application/pricer"
	"github.com/alejandrodnm/greekbot/internal/application/surface"
	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopNotifier descarta todo: los tests verifican resultados, no rendering.
type nopNotifier struct{}

func (nopNotifier) NotifyEvaluation(context.Context, string, domain.OptionContract, domain.EvaluationResult) error {
	return nil
}
func (nopNotifier) NotifySurface(context.Context, domain.RiskGrid) error { return nil }

// spyStorage registra las llamadas sin persistir nada.
type spyStorage struct {
	saved   []domain.OptionContract
	runs    []domain.RunSummary
	lookups int
	cached  *domain.EvaluationResult
}

func (s *spyStorage) SaveEvaluation(_ context.Context, _ string, c domain.OptionContract, _ domain.EvaluationResult) error {
	s.saved = append(s.saved, c)
	return nil
}

func (s *spyStorage) Lookup(context.Context, domain.OptionContract) (domain.EvaluationResult, bool, error) {
	s.lookups++
	if s.cached != nil {
		return *s.cached, true, nil
	}
	return domain.EvaluationResult{}, false, nil
}

func (s *spyStorage) SaveRun(_ context.Context, run domain.RunSummary) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *spyStorage) RecentRuns(context.Context, int) ([]domain.RunSummary, error) { return nil, nil }
func (s *spyStorage) Close() error                                                { return nil }

func newTestPricer(storage *spyStorage) *pricer.Pricer {
	market := marketdata.Static{Spot: 100, DividendYield: 0, RiskFree: 0.05}
	builder := surface.New(surface.Config{Workers: 2})
	cfg := pricer.Config{
		WatchInterval:   time.Minute,
		SolverTolerance: domain.DefaultIVTolerance,
	}
	if storage == nil {
		return pricer.New(cfg, market, nil, nopNotifier{}, builder)
	}
	return pricer.New(cfg, market, storage, nopNotifier{}, builder)
}

func baseRequest() pricer.Request {
	return pricer.Request{
		Symbol: "SYNTH",
		Strike: 100,
		Expiry: time.Now().Add(365 * 24 * time.Hour),
		Type:   domain.Call,
		VolPct: 20,
	}
}

func TestPriceOnce_NormalizesInput(t *testing.T) {
	p := newTestPricer(nil)

	contract, res, err := p.PriceOnce(context.Background(), baseRequest())
	require.NoError(t, err)

	// Spot/rate del quote, vol del request en % → decimal.
	assert.Equal(t, 100.0, contract.Spot)
	assert.Equal(t, 0.05, contract.Rate)
	assert.Equal(t, 0.2, contract.Volatility)
	assert.Equal(t, domain.Call, contract.Type)
	assert.Equal(t, domain.European, contract.Style)
	assert.InDelta(t, 1.0, contract.Maturity, 0.01)

	assert.InDelta(t, 10.45, res.Price, 0.1)
}

func TestPriceOnce_Overrides(t *testing.T) {
	p := newTestPricer(nil)

	req := baseRequest()
	req.Spot = 110
	req.RatePct = 3
	req.DivPct = 1.5

	contract, _, err := p.PriceOnce(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 110.0, contract.Spot)
	assert.Equal(t, 0.03, contract.Rate)
	assert.Equal(t, 0.015, contract.DividendYield)
}

func TestPriceOnce_ImpliedVolatilityFromMarketPrice(t *testing.T) {
	p := newTestPricer(nil)

	// Precio de mercado generado con σ=20%: el solver debe recuperarla.
	target, err := domain.Evaluate(domain.OptionContract{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05,
		Volatility: 0.2, Type: domain.Call, Style: domain.European,
	})
	require.NoError(t, err)

	req := pricer.Request{
		Symbol:      "SYNTH",
		Strike:      100,
		Expiry:      time.Now().Add(365 * 24 * time.Hour),
		Type:        domain.Call,
		VolPct:      20,
		MarketPrice: target.Price,
	}

	contract, _, err := p.PriceOnce(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, contract.Volatility, 1e-3)
}

func TestPriceOnce_UsesCachedEvaluation(t *testing.T) {
	cached := domain.EvaluationResult{Price: 42, Delta: 0.5}
	store := &spyStorage{cached: &cached}
	p := newTestPricer(store)

	_, res, err := p.PriceOnce(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, cached, res)
	assert.Equal(t, 1, store.lookups)
	assert.Empty(t, store.saved)
	require.Len(t, store.runs, 1)
	assert.Equal(t, "price", store.runs[0].Kind)
}

func TestPriceOnce_SavesOnCacheMiss(t *testing.T) {
	store := &spyStorage{}
	p := newTestPricer(store)

	contract, _, err := p.PriceOnce(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, contract, store.saved[0])
}

func TestSurface_BuildsAndRecordsRun(t *testing.T) {
	store := &spyStorage{}
	p := newTestPricer(store)

	grid, err := p.Surface(context.Background(), baseRequest(), surface.Request{
		Metric:    domain.MetricVega,
		Primary:   domain.FactorSpot,
		Secondary: domain.FactorVol,
	})
	require.NoError(t, err)

	assert.True(t, grid.IsSurface())
	assert.Len(t, grid.PrimaryAxis, 30)
	assert.Len(t, grid.Values, 30)

	require.Len(t, store.runs, 1)
	assert.Equal(t, "surface", store.runs[0].Kind)
	assert.Equal(t, domain.MetricVega, store.runs[0].Metric)
	assert.Equal(t, 900, store.runs[0].Points)
}

func TestSurface_MissingMaturityBlocksSweep(t *testing.T) {
	p := newTestPricer(nil)

	req := baseRequest()
	req.Expiry = time.Time{} // sin fecha → T=0

	_, err := p.Surface(context.Background(), req, surface.Request{
		Metric:  domain.MetricPrice,
		Primary: domain.FactorSpot,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maturity")
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	p := newTestPricer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, baseRequest()) }()

	// El primer ciclo corre inmediatamente; después cancelamos.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on context cancel")
	}
}
