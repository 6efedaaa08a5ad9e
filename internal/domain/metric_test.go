package domain_test

import (
	"testing"

	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	for _, m := range domain.Metrics() {
		got, err := domain.ParseMetric(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := domain.ParseMetric("moneyness")
	assert.Error(t, err)
}

func TestMetricDispatch(t *testing.T) {
	res, err := domain.Evaluate(validContract(domain.Call))
	require.NoError(t, err)

	want := map[domain.Metric]float64{
		domain.MetricPrice:   res.Price,
		domain.MetricDelta:   res.Delta,
		domain.MetricGamma:   res.Gamma,
		domain.MetricVega:    res.Vega,
		domain.MetricTheta:   res.Theta,
		domain.MetricRho:     res.Rho,
		domain.MetricVanna:   res.Vanna,
		domain.MetricVolga:   res.Volga,
		domain.MetricCharm:   res.Charm,
		domain.MetricColor:   res.Color,
		domain.MetricSpeed:   res.Speed,
		domain.MetricGearing: res.Gearing,
		domain.MetricEpsilon: res.Epsilon,
	}
	require.Len(t, want, len(domain.Metrics()))

	for m, v := range want {
		got, err := res.Metric(m)
		require.NoError(t, err)
		assert.Equal(t, v, got, "metric %s", m)
	}

	_, err = res.Metric("unknown")
	assert.Error(t, err)
}

func TestMetricLabel(t *testing.T) {
	assert.Equal(t, "Option Price", domain.MetricPrice.Label())
	assert.Equal(t, "Gearing", domain.MetricGearing.Label())
}
