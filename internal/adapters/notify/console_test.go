package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/greekbot/internal/adapters/notify"
	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContract() domain.OptionContract {
	return domain.OptionContract{
		Spot:       100,
		Strike:     100,
		Maturity:   1,
		Rate:       0.05,
		Volatility: 0.2,
		Type:       domain.Call,
		Style:      domain.European,
	}
}

func TestNotifyEvaluation_Compact(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	res, err := domain.Evaluate(sampleContract())
	require.NoError(t, err)

	err = console.NotifyEvaluation(context.Background(), "AAPL", sampleContract(), res)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "Call")
	assert.Contains(t, out, "$10.4506")
	// El modo compacto no saca el panel de griegas de segundo orden.
	assert.NotContains(t, out, "Vanna")
}

func TestNotifyEvaluation_FullPanel(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, true)

	res, err := domain.Evaluate(sampleContract())
	require.NoError(t, err)

	err = console.NotifyEvaluation(context.Background(), "AAPL", sampleContract(), res)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Option Price")
	assert.Contains(t, out, "Vanna")
	assert.Contains(t, out, "Gearing")
	assert.Contains(t, out, "d1=0.350000")
	assert.Contains(t, out, "d2=0.150000")
}

func TestNotifySurface_Series(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	grid := domain.RiskGrid{
		Metric:        domain.MetricDelta,
		PrimaryFactor: domain.FactorSpot,
		PrimaryAxis:   []float64{80, 100, 120},
		Values:        [][]float64{{0.3, 0.6, 0.8}},
	}

	err := console.NotifySurface(context.Background(), grid)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Delta as function of Spot (3 points)")
	assert.Contains(t, out, "80.0000")
	assert.Contains(t, out, "0.600000")
}

func TestNotifySurface_SurfaceShowsMaturityInDays(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	grid := domain.RiskGrid{
		Metric:          domain.MetricPrice,
		PrimaryFactor:   domain.FactorSpot,
		SecondaryFactor: domain.FactorMaturity,
		PrimaryAxis:     []float64{90, 110},
		SecondaryAxis:   []float64{0.5, 1.0},
		Values:          [][]float64{{1.1, 2.2}, {3.3, 4.4}},
	}

	err := console.NotifySurface(context.Background(), grid)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Option Price as function of Spot and Maturity (2×2)")
	// Maturity interna en años, display en días.
	assert.Contains(t, out, "182.5d")
	assert.Contains(t, out, "365.0d")
	assert.Contains(t, out, "4.4000")
}

func TestNotifySurface_EmptyGrid(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	err := console.NotifySurface(context.Background(), domain.RiskGrid{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "empty grid")
}

func TestPrintInstruments(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	console.PrintInstruments([]domain.Instrument{
		{Name: "Apple Inc.", Symbol: "AAPL"},
		{Name: "Microsoft Corporation", Symbol: "MSFT"},
	})

	out := buf.String()
	assert.Contains(t, out, "2 instruments available")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "Microsoft Corporation")
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	console.PrintRuns(nil)
	assert.Contains(t, buf.String(), "no runs recorded")

	buf.Reset()
	console.PrintRuns([]domain.RunSummary{
		{
			ID:       "run-1",
			Kind:     "surface",
			Symbol:   "AAPL",
			Metric:   domain.MetricVega,
			Points:   900,
			Duration: 42 * time.Millisecond,
			At:       time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "surface")
	assert.Contains(t, out, "900")
	assert.Contains(t, out, "vega")
}
