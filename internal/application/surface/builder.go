package surface

// builder.go — generación de risk grids re-evaluando el engine por punto.
//
// El builder deriva un contrato perturbado por punto del grid (el base nunca
// se muta), lo evalúa y extrae la métrica target. Política de validación
// "all or nothing": cualquier parámetro base a cero bloquea el sweep entero,
// excepto el dividend yield, que puede ser cero. Un error de construcción en
// cualquier punto aborta el sweep completo.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// Config controla los defaults del builder.
type Config struct {
	Granularity int     // subdivisiones por eje (0 = 30, acotado a [1, 100])
	Range       float64 // banda por defecto (0 = 0.20, acotado a [0.1, 0.99])
	Workers     int     // goroutines para sweeps 2D (0 = NumCPU×2)
}

// Request describe el sweep a ejecutar. Secondary vacío produce una serie
// 1D; con Secondary presente se evalúa el producto cartesiano de ambos ejes.
type Request struct {
	Metric         domain.Metric
	Primary        domain.Factor
	Secondary      domain.Factor // opcional
	PrimaryRange   float64
	SecondaryRange float64
	Granularity    int
}

// Builder genera RiskGrids contra el pricing engine.
type Builder struct {
	cfg Config
}

// New crea un Builder con la configuración dada.
func New(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build ejecuta el sweep y devuelve el grid resultante.
func (b *Builder) Build(ctx context.Context, base domain.OptionContract, req Request) (domain.RiskGrid, error) {
	if err := checkBaseParameters(base); err != nil {
		return domain.RiskGrid{}, err
	}
	if _, err := (domain.EvaluationResult{}).Metric(req.Metric); err != nil {
		return domain.RiskGrid{}, fmt.Errorf("surface.Build: %w", err)
	}

	granularity := req.Granularity
	if granularity == 0 {
		granularity = b.cfg.Granularity
	}
	primaryRange := req.PrimaryRange
	if primaryRange == 0 {
		primaryRange = b.cfg.Range
	}

	start := time.Now()

	grid := domain.RiskGrid{
		Metric:        req.Metric,
		PrimaryFactor: req.Primary,
		PrimaryAxis:   BuildAxis(req.Primary, base, primaryRange, granularity),
	}

	if req.Secondary == "" {
		series, err := b.sweep1D(base, req.Primary, req.Metric, grid.PrimaryAxis)
		if err != nil {
			return domain.RiskGrid{}, err
		}
		grid.Values = [][]float64{series}
	} else {
		secondaryRange := req.SecondaryRange
		if secondaryRange == 0 {
			secondaryRange = b.cfg.Range
		}
		grid.SecondaryFactor = req.Secondary
		grid.SecondaryAxis = BuildAxis(req.Secondary, base, secondaryRange, granularity)

		values, err := b.sweep2D(ctx, base, req, grid.PrimaryAxis, grid.SecondaryAxis)
		if err != nil {
			return domain.RiskGrid{}, err
		}
		grid.Values = values
	}

	slog.Debug("surface build complete",
		"metric", string(req.Metric),
		"primary", string(req.Primary),
		"secondary", string(req.Secondary),
		"points", len(grid.PrimaryAxis)*max(len(grid.SecondaryAxis), 1),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return grid, nil
}

// sweep1D evalúa la métrica a lo largo del eje primario, en orden.
func (b *Builder) sweep1D(base domain.OptionContract, f domain.Factor, m domain.Metric, axis []float64) ([]float64, error) {
	series := make([]float64, len(axis))
	for i, v := range axis {
		res, err := domain.Evaluate(f.Apply(base, v))
		if err != nil {
			return nil, fmt.Errorf("surface.sweep1D: point %s=%g: %w", f, v, err)
		}
		value, err := res.Metric(m)
		if err != nil {
			return nil, fmt.Errorf("surface.sweep1D: %w", err)
		}
		series[i] = value
	}
	return series, nil
}

// checkBaseParameters aplica la política "all or nothing": todos los
// parámetros base presentes y distintos de cero antes de barrer, con la
// única excepción del dividend yield.
func checkBaseParameters(c domain.OptionContract) error {
	missing := ""
	switch {
	case c.Spot == 0:
		missing = "spot"
	case c.Strike == 0:
		missing = "strike"
	case c.Maturity == 0:
		missing = "maturity"
	case c.Rate == 0:
		missing = "rate"
	case c.Volatility == 0:
		missing = "volatility"
	case c.Type == "":
		missing = "option_type"
	case c.Style == "":
		missing = "exercise_style"
	}
	if missing != "" {
		return fmt.Errorf("surface: base parameter %s is missing or zero", missing)
	}
	return c.Validate()
}
