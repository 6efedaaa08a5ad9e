package domain

// impliedvol.go — solver Newton-Raphson de volatilidad implícita.
//
// El iterado σ_k vive en puntos porcentuales (20 = 20%) como pura convención
// de unidades; el modelo se evalúa en cada iteración reconstruyendo un
// contrato completo en unidades naturales (σ_k/100) para obtener price y
// vega. El resultado se devuelve de vuelta en decimal.

import "math"

const (
	// DefaultIVTolerance es la tolerancia por defecto del solver.
	DefaultIVTolerance = 1e-5

	// ivMaxIterations acota el loop. Si se agota, el solver devuelve su
	// mejor estimación sin error (política best-effort, sin fallo duro).
	ivMaxIterations = 500
)

// ImpliedVolatility deriva la volatilidad que iguala el precio del modelo al
// precio de mercado observado, partiendo de la volatilidad del contrato.
//
// σ_{k+1} = σ_k − (price(σ_k) − marketPrice) / (vega(σ_k)·100)
//
// Un candidato negativo se descarta en silencio y el loop reintenta sin
// actualizar σ_k (sin bisección ni clamping). Converge cuando
// |σ_k − σ_{k+1}| < tolerance o |price(σ_{k+1}) − marketPrice| < tolerance.
// Si se agotan las iteraciones sin converger no hay error: quien necesite
// garantía de convergencia debe comprobar el residual por su cuenta.
// Si tolerance <= 0 se usa DefaultIVTolerance.
func ImpliedVolatility(c OptionContract, marketPrice, tolerance float64) (float64, error) {
	if tolerance <= 0 {
		tolerance = DefaultIVTolerance
	}

	trial := c
	oldVol := c.Volatility * 100

	for k := 0; k < ivMaxIterations; k++ {
		trial.Volatility = oldVol / 100
		cur, err := Evaluate(trial)
		if err != nil {
			return 0, err
		}

		newVol := oldVol - (cur.Price-marketPrice)/(cur.Vega*100)
		if newVol < 0 {
			continue
		}

		trial.Volatility = newVol / 100
		next, err := Evaluate(trial)
		if err != nil {
			return 0, err
		}

		if math.Abs(oldVol-newVol) < tolerance || math.Abs(next.Price-marketPrice) < tolerance {
			break
		}
		oldVol = newVol
	}

	return oldVol / 100, nil
}
