package domain

// evaluate.go — engine de pricing Black-Scholes-Merton.
//
// Calcula el fair value y todas las sensibilidades de primer y segundo orden
// en una sola pasada: d1/d2 se computan una vez y cada fórmula los reutiliza.
// Función pura, sin estado compartido: cada evaluación es independiente y
// trivialmente paralelizable.

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal es la normal estándar N(0,1) compartida por N(x) y n(x).
var stdNormal = distuv.UnitNormal

// EvaluationResult es el resultado inmutable de evaluar un OptionContract:
// el precio teórico más todas las griegas, derivadas deterministas de los
// parámetros del contrato y de los intermedios d1/d2.
//
// Convenciones de escala (magnitudes de trading desk):
//   - Vega, Rho, Vanna: ×0.01 (por punto de movimiento)
//   - Volga: ×0.0001
//   - Theta, Charm, Color: ÷365 (por día de calendario)
type EvaluationResult struct {
	D1 float64
	D2 float64

	Price float64
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64

	Vanna float64
	Volga float64
	Charm float64
	Color float64
	Speed float64

	Gearing float64 // lambda/elasticidad: delta·(S/price)
	Epsilon float64 // elasticidad al dividendo (ver nota abajo)
}

// Evaluate valida el contrato y computa todos los campos del resultado.
//
// Epsilon multiplica por r en lugar de q — dimensionalmente atípico frente a
// la definición estándar de psi, pero se conserva tal cual por fidelidad.
// Gearing divide por price: con price=0 produce Inf/NaN; comportamiento
// aceptado, no se protege.
func Evaluate(c OptionContract) (EvaluationResult, error) {
	if err := c.Validate(); err != nil {
		return EvaluationResult{}, err
	}

	var (
		S     = c.Spot
		K     = c.Strike
		T     = c.Maturity
		r     = c.Rate
		q     = c.DividendYield
		sigma = c.Volatility
	)

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+sigma*sigma/2)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	// Factores de descuento reutilizados por casi todas las fórmulas.
	eqT := math.Exp(-q * T)
	erT := math.Exp(-r * T)

	res := EvaluationResult{D1: d1, D2: d2}

	if c.Type == Call {
		res.Price = S*eqT*cdf(d1) - K*erT*cdf(d2)
		res.Delta = eqT * cdf(d1)
		res.Theta = (-eqT*(S*pdf(d1)*sigma)/(2*sqrtT) - r*K*erT*cdf(d2) + q*S*eqT*cdf(d1)) / 365
		res.Rho = K * T * erT * cdf(d2) * 0.01
		res.Epsilon = -S * r * eqT * cdf(d1)
		res.Charm = (q*eqT*cdf(d1) - eqT*pdf(d1)*(2*(r-q)*T-d2*sigma*sqrtT)/(2*T*sigma*sqrtT)) / 365
	} else {
		res.Price = K*erT*cdf(-d2) - S*eqT*cdf(-d1)
		res.Delta = -eqT * cdf(-d1)
		res.Theta = (-eqT*(S*pdf(d1)*sigma)/(2*sqrtT) + r*K*erT*cdf(-d2) - q*S*eqT*cdf(-d1)) / 365
		res.Rho = -K * T * erT * cdf(-d2) * 0.01
		res.Epsilon = S * r * eqT * cdf(-d1)
		res.Charm = (-q*eqT*cdf(-d1) - eqT*pdf(d1)*(2*(r-q)*T-d2*sigma*sqrtT)/(2*T*sigma*sqrtT)) / 365
	}

	res.Gamma = pdf(d1) * eqT / (S * sigma * sqrtT)
	res.Vega = S * eqT * pdf(d1) * sqrtT * 0.01
	res.Vanna = -eqT * pdf(d1) * (d2 / sigma) * 0.01
	res.Volga = S * eqT * pdf(d1) * sqrtT * (d1 * d2 / sigma) * 0.0001
	res.Color = -eqT * (pdf(d1) / (2 * S * T * sigma * sqrtT)) *
		(2*q*T + 1 + ((2*(r-q)*T-d2*sigma*sqrtT)/(sigma*sqrtT))*d1) / 365
	res.Speed = -eqT * (pdf(d1) / (S * S * sigma * sqrtT)) * (d1/(sigma*sqrtT) + 1)

	res.Gearing = res.Delta * (S / res.Price)

	return res, nil
}

// cdf es N(x), la CDF de la normal estándar.
func cdf(x float64) float64 {
	return stdNormal.CDF(x)
}

// pdf es n(x), la densidad de la normal estándar.
func pdf(x float64) float64 {
	return stdNormal.Prob(x)
}
