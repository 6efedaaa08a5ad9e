package ports

import (
	"context"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// Notifier es el colaborador de presentación: recibe resultados ya
// calculados y es responsable de todo el rendering. El core nunca formatea
// output para display.
type Notifier interface {
	// NotifyEvaluation presenta una evaluación puntual con todas sus griegas.
	NotifyEvaluation(ctx context.Context, symbol string, c domain.OptionContract, r domain.EvaluationResult) error

	// NotifySurface presenta una serie 1D o superficie 2D. Un grid vacío no
	// debe renderizarse.
	NotifySurface(ctx context.Context, g domain.RiskGrid) error
}
