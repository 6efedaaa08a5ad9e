package domain

import "fmt"

// Factor es un input del modelo que puede variarse en un risk grid.
type Factor string

const (
	FactorSpot     Factor = "spot"
	FactorStrike   Factor = "strike"
	FactorVol      Factor = "vol"
	FactorMaturity Factor = "maturity"
	FactorRate     Factor = "rate"
	FactorDiv      Factor = "div"
)

// Factors devuelve los factores disponibles para sweeps.
func Factors() []Factor {
	return []Factor{FactorSpot, FactorStrike, FactorVol, FactorMaturity, FactorRate, FactorDiv}
}

// ParseFactor convierte el nombre de un factor (input de CLI/config).
func ParseFactor(s string) (Factor, error) {
	f := Factor(s)
	for _, known := range Factors() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown factor %q", s)
}

// Value devuelve el valor base del factor en el contrato dado.
func (f Factor) Value(c OptionContract) float64 {
	switch f {
	case FactorSpot:
		return c.Spot
	case FactorStrike:
		return c.Strike
	case FactorVol:
		return c.Volatility
	case FactorMaturity:
		return c.Maturity
	case FactorRate:
		return c.Rate
	case FactorDiv:
		return c.DividendYield
	}
	return 0
}

// Apply devuelve una copia del contrato con el campo del factor puesto a v.
// El contrato base no se muta: cada punto del grid construye su propia
// instancia de corta vida.
func (f Factor) Apply(c OptionContract, v float64) OptionContract {
	switch f {
	case FactorSpot:
		c.Spot = v
	case FactorStrike:
		c.Strike = v
	case FactorVol:
		c.Volatility = v
	case FactorMaturity:
		c.Maturity = v
	case FactorRate:
		c.Rate = v
	case FactorDiv:
		c.DividendYield = v
	}
	return c
}

// Label devuelve el nombre legible del factor para display.
func (f Factor) Label() string {
	switch f {
	case FactorSpot:
		return "Spot"
	case FactorStrike:
		return "Strike"
	case FactorVol:
		return "Vol"
	case FactorMaturity:
		return "Maturity"
	case FactorRate:
		return "Rate"
	case FactorDiv:
		return "Div"
	default:
		return string(f)
	}
}
