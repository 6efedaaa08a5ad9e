package ports

import (
	"context"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// MarketProvider obtiene el estado de mercado actual de un instrumento:
// spot, dividend yield y tipo libre de riesgo. El core trata estos valores
// como inputs opacos; retries y caching viven en el adapter.
type MarketProvider interface {
	// FetchQuote devuelve el quote del símbolo dado, ya normalizado a
	// decimales.
	FetchQuote(ctx context.Context, symbol string) (domain.Quote, error)
}
