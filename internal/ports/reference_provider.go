package ports

import (
	"context"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// ReferenceProvider obtiene el directorio de instrumentos (nombre legible →
// ticker) desde la fuente de referencia externa.
type ReferenceProvider interface {
	// FetchConstituents devuelve el directorio completo de instrumentos
	// seleccionables.
	FetchConstituents(ctx context.Context) ([]domain.Instrument, error)
}
