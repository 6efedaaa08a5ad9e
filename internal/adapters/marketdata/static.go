package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// Static implementa ports.MarketProvider con valores fijos, para dry-run y
// tests: sin red, sin rate limiting.
type Static struct {
	Spot          float64
	DividendYield float64
	RiskFree      float64
}

// FetchQuote devuelve el quote estático para cualquier símbolo.
func (s Static) FetchQuote(_ context.Context, symbol string) (domain.Quote, error) {
	if s.Spot <= 0 {
		return domain.Quote{}, fmt.Errorf("marketdata.Static: spot not set")
	}
	return domain.Quote{
		Symbol:        symbol,
		Spot:          s.Spot,
		DividendYield: s.DividendYield,
		RiskFree:      s.RiskFree,
		AsOf:          time.Now().UTC(),
	}, nil
}
