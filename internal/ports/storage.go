package ports

import (
	"context"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// Storage es la capa de caché del lado del caller: el core no guarda estado
// entre invocaciones, pero las evaluaciones son deterministas y se pueden
// cachear keyed por la tupla completa de parámetros de entrada.
type Storage interface {
	// SaveEvaluation hace upsert de una evaluación keyed por la tupla de
	// parámetros del contrato.
	SaveEvaluation(ctx context.Context, symbol string, c domain.OptionContract, r domain.EvaluationResult) error

	// Lookup devuelve la evaluación cacheada para un contrato idéntico, si
	// existe.
	Lookup(ctx context.Context, c domain.OptionContract) (domain.EvaluationResult, bool, error)

	// SaveRun persiste el resumen de una ejecución.
	SaveRun(ctx context.Context, run domain.RunSummary) error

	// RecentRuns devuelve las últimas ejecuciones, más reciente primero.
	RecentRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Close cierra la conexión subyacente.
	Close() error
}
