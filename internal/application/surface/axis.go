package surface

// axis.go — construcción de ejes para risk grids.

import (
	"github.com/alejandrodnm/greekbot/internal/domain"
)

const (
	// DefaultGranularity es el número de subdivisiones por defecto.
	DefaultGranularity = 30

	minGranularity = 1
	maxGranularity = 100

	// DefaultRange es la banda porcentual simétrica por defecto.
	DefaultRange = 0.20

	minRange = 0.10
	maxRange = 0.99

	// maturityEpsilon sustituye al primer punto de un eje de Maturity para
	// no alimentar T=0 al engine (división por cero en d1/d2).
	maturityEpsilon = 1e-5
)

// BuildAxis genera la secuencia ordenada de valores del factor alrededor del
// caso base.
//
// Para Maturity el eje va de 0 al valor base, paso = base/granularity (de
// "ahora" al vencimiento, nunca más allá), y el primer elemento se
// sobreescribe con maturityEpsilon. Para el resto de factores es una banda
// simétrica base·(1±rng) con paso (ub−lb)/granularity. En ambos casos el
// intervalo es semiabierto [lb, ub): exactamente granularity puntos.
func BuildAxis(f domain.Factor, base domain.OptionContract, rng float64, granularity int) []float64 {
	granularity = clampGranularity(granularity)
	rng = clampRange(rng)

	var lb, step float64
	if f == domain.FactorMaturity {
		lb = 0
		step = f.Value(base) / float64(granularity)
	} else {
		lb = f.Value(base) * (1 - rng)
		ub := f.Value(base) * (1 + rng)
		step = (ub - lb) / float64(granularity)
	}

	axis := make([]float64, granularity)
	for i := range axis {
		axis[i] = lb + step*float64(i)
	}

	if f == domain.FactorMaturity {
		axis[0] = maturityEpsilon
	}
	return axis
}

// clampGranularity acota la granularidad a [1, 100]; 0 usa el default.
func clampGranularity(g int) int {
	if g == 0 {
		g = DefaultGranularity
	}
	if g < minGranularity {
		return minGranularity
	}
	if g > maxGranularity {
		return maxGranularity
	}
	return g
}

// clampRange acota el range a [0.1, 0.99]; 0 usa el default.
func clampRange(r float64) float64 {
	if r == 0 {
		r = DefaultRange
	}
	if r < minRange {
		return minRange
	}
	if r > maxRange {
		return maxRange
	}
	return r
}
