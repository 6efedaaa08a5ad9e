package pricer

// request.go — normalización del input de usuario a un OptionContract.
//
// El invariante del engine es que todos los campos son decimales planos: la
// conversión desde % y desde fecha de vencimiento ocurre aquí, antes de
// construir el contrato.

import (
	"time"

	"github.com/alejandrodnm/greekbot/internal/domain"
)

// daysYear es la convención de calendario del modelo.
const daysYear = 365

// Request es una petición de pricing con el input tal como lo escribe el
// usuario: strike en precio, vencimiento como fecha, rate/div/vol en
// porcentaje. Los overrides a cero significan "usar el valor del quote".
type Request struct {
	Symbol string
	Strike float64
	Expiry time.Time
	Type   domain.OptionType

	VolPct  float64 // volatilidad en % (20 = 20%)
	RatePct float64 // override del tipo libre de riesgo, en %
	DivPct  float64 // override del dividend yield, en %
	Spot    float64 // override del spot

	// MarketPrice > 0 deriva la volatilidad implícita del precio de mercado
	// observado antes de evaluar, en lugar de usar VolPct directamente.
	MarketPrice float64
}

// buildContract combina request y quote en un contrato del engine.
func buildContract(req Request, quote domain.Quote, now time.Time) domain.OptionContract {
	c := domain.OptionContract{
		Spot:          quote.Spot,
		Strike:        req.Strike,
		Rate:          quote.RiskFree,
		DividendYield: quote.DividendYield,
		Volatility:    req.VolPct / 100,
		Type:          req.Type,
		Style:         domain.European,
	}

	if req.Spot > 0 {
		c.Spot = req.Spot
	}
	if req.RatePct != 0 {
		c.Rate = req.RatePct / 100
	}
	if req.DivPct != 0 {
		c.DividendYield = req.DivPct / 100
	}
	if c.Type == "" {
		c.Type = domain.Call
	}

	// Vencimiento como fracción de año en días naturales; sin fecha → T=0
	// (bloqueado después por la validación de sweep).
	if !req.Expiry.IsZero() {
		days := req.Expiry.Sub(now).Hours() / 24
		if days > 0 {
			c.Maturity = days / daysYear
		}
	}

	return c
}
