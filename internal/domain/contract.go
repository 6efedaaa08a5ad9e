package domain

import "fmt"

// OptionType es el sentido del contrato.
type OptionType string

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

// ExerciseStyle es el estilo de ejercicio. Solo se soporta European;
// cualquier otro valor es inválido.
type ExerciseStyle string

const European ExerciseStyle = "European"

// OptionContract es el conjunto de parámetros del modelo Black-Scholes-Merton
// para una opción europea. Es un value object inmutable: se construye una vez
// por evaluación y no se muta después.
//
// Todos los campos numéricos son decimales planos, nunca porcentajes.
// La conversión desde input de usuario en % ocurre antes de construir el
// contrato (ver application/pricer), jamás dentro del engine.
type OptionContract struct {
	Spot          float64       // S: precio actual del subyacente
	Strike        float64       // K: precio de ejercicio
	Maturity      float64       // T: tiempo a vencimiento en años
	Rate          float64       // r: tipo libre de riesgo continuo
	DividendYield float64       // q: dividend yield continuo
	Volatility    float64       // σ: volatilidad anualizada
	Type          OptionType    // Call | Put
	Style         ExerciseStyle // European
}

// InvalidParameterError indica que un parámetro del contrato viola un
// invariante declarado. Es fatal para esa evaluación concreta, pero no
// afecta a otras evaluaciones de un sweep.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Validate comprueba los invariantes de construcción del contrato.
//
// No protege contra inputs degenerados (T=0 o σ=0 producen división por cero
// en d1/d2): eso es responsabilidad del caller. El grid generator sustituye
// T=0 por un epsilon pequeño; σ=0 se propaga como Inf/NaN.
func (c OptionContract) Validate() error {
	switch {
	case c.Volatility < 0:
		return &InvalidParameterError{Field: "volatility", Reason: "can't be less than zero"}
	case c.Spot < 0:
		return &InvalidParameterError{Field: "spot", Reason: "can't be less than zero"}
	case c.Strike < 0:
		return &InvalidParameterError{Field: "strike", Reason: "can't be less than zero"}
	case c.Maturity < 0:
		return &InvalidParameterError{Field: "maturity", Reason: "can't be less than zero"}
	case c.DividendYield < 0:
		return &InvalidParameterError{Field: "dividend_yield", Reason: "can't be less than zero"}
	}

	if c.Type != Call && c.Type != Put {
		return &InvalidParameterError{Field: "option_type", Reason: "must be either Call or Put"}
	}
	if c.Style != European {
		return &InvalidParameterError{Field: "exercise_style", Reason: "must be European"}
	}
	return nil
}

// Payoff devuelve el payoff intrínseco del contrato a un spot terminal dado.
func (c OptionContract) Payoff(terminalSpot float64) float64 {
	if c.Type == Call {
		return max(terminalSpot-c.Strike, 0)
	}
	return max(c.Strike-terminalSpot, 0)
}
