package domain_test

import (
	"testing"

	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFactor(t *testing.T) {
	for _, f := range domain.Factors() {
		got, err := domain.ParseFactor(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := domain.ParseFactor("moneyness")
	assert.Error(t, err)
}

func TestFactorValueAndApply(t *testing.T) {
	base := validContract(domain.Call)

	cases := []struct {
		factor domain.Factor
		value  float64
	}{
		{domain.FactorSpot, 100},
		{domain.FactorStrike, 100},
		{domain.FactorVol, 0.2},
		{domain.FactorMaturity, 1},
		{domain.FactorRate, 0.05},
		{domain.FactorDiv, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.value, tc.factor.Value(base), "factor %s", tc.factor)

		modified := tc.factor.Apply(base, 42)
		assert.Equal(t, 42.0, tc.factor.Value(modified), "factor %s", tc.factor)
	}

	// Apply devuelve una copia: el base nunca se muta.
	_ = domain.FactorSpot.Apply(base, 999)
	assert.Equal(t, 100.0, base.Spot)
}

func TestRiskGridShape(t *testing.T) {
	series := domain.RiskGrid{
		Metric:        domain.MetricDelta,
		PrimaryFactor: domain.FactorSpot,
		PrimaryAxis:   []float64{80, 90, 100},
		Values:        [][]float64{{0.2, 0.4, 0.6}},
	}
	assert.False(t, series.IsSurface())
	assert.False(t, series.Empty())
	assert.Equal(t, []float64{0.2, 0.4, 0.6}, series.Series())

	surface := domain.RiskGrid{
		Metric:          domain.MetricPrice,
		PrimaryFactor:   domain.FactorSpot,
		SecondaryFactor: domain.FactorVol,
		PrimaryAxis:     []float64{80, 120},
		SecondaryAxis:   []float64{0.1, 0.3},
		Values:          [][]float64{{1, 2}, {3, 4}},
	}
	assert.True(t, surface.IsSurface())
	assert.False(t, surface.Empty())

	assert.True(t, domain.RiskGrid{}.Empty())
}
