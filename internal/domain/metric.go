package domain

import "fmt"

// Metric identifica qué campo del EvaluationResult se quiere extraer,
// normalmente como target de un risk grid. Sustituye el lookup dinámico por
// nombre con una tabla de dispatch explícita y exhaustiva.
type Metric string

const (
	MetricPrice   Metric = "price"
	MetricDelta   Metric = "delta"
	MetricGamma   Metric = "gamma"
	MetricVega    Metric = "vega"
	MetricTheta   Metric = "theta"
	MetricRho     Metric = "rho"
	MetricVanna   Metric = "vanna"
	MetricVolga   Metric = "volga"
	MetricCharm   Metric = "charm"
	MetricColor   Metric = "color"
	MetricSpeed   Metric = "speed"
	MetricGearing Metric = "gearing"
	MetricEpsilon Metric = "epsilon"
)

// Metrics devuelve todas las métricas disponibles, en orden de display.
func Metrics() []Metric {
	return []Metric{
		MetricPrice, MetricDelta, MetricGamma, MetricVega, MetricTheta,
		MetricRho, MetricVanna, MetricVolga, MetricCharm, MetricColor,
		MetricSpeed, MetricGearing, MetricEpsilon,
	}
}

// ParseMetric convierte el nombre de una métrica (input de CLI/config).
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if _, err := (EvaluationResult{}).Metric(m); err != nil {
		return "", err
	}
	return m, nil
}

// Metric extrae el campo correspondiente del resultado.
func (r EvaluationResult) Metric(m Metric) (float64, error) {
	switch m {
	case MetricPrice:
		return r.Price, nil
	case MetricDelta:
		return r.Delta, nil
	case MetricGamma:
		return r.Gamma, nil
	case MetricVega:
		return r.Vega, nil
	case MetricTheta:
		return r.Theta, nil
	case MetricRho:
		return r.Rho, nil
	case MetricVanna:
		return r.Vanna, nil
	case MetricVolga:
		return r.Volga, nil
	case MetricCharm:
		return r.Charm, nil
	case MetricColor:
		return r.Color, nil
	case MetricSpeed:
		return r.Speed, nil
	case MetricGearing:
		return r.Gearing, nil
	case MetricEpsilon:
		return r.Epsilon, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", string(m))
	}
}

// Label devuelve el nombre legible de la métrica para display.
func (m Metric) Label() string {
	switch m {
	case MetricPrice:
		return "Option Price"
	case MetricDelta:
		return "Delta"
	case MetricGamma:
		return "Gamma"
	case MetricVega:
		return "Vega"
	case MetricTheta:
		return "Theta"
	case MetricRho:
		return "Rho"
	case MetricVanna:
		return "Vanna"
	case MetricVolga:
		return "Volga"
	case MetricCharm:
		return "Charm"
	case MetricColor:
		return "Color"
	case MetricSpeed:
		return "Speed"
	case MetricGearing:
		return "Gearing"
	case MetricEpsilon:
		return "Epsilon"
	default:
		return string(m)
	}
}
