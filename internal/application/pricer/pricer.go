package pricer

// pricer.go — orquestador: quote → normalización → engine → storage →
// presentación. El core no guarda estado entre invocaciones; cada ciclo
// reconstruye y re-evalúa desde cero.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/greekbot/internal/application/surface"
	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/alejandrodnm/greekbot/internal/ports"
)

// Config contiene la configuración del pricer.
type Config struct {
	WatchInterval   time.Duration
	SolverTolerance float64
}

// Pricer es el orquestador principal.
type Pricer struct {
	cfg      Config
	market   ports.MarketProvider
	storage  ports.Storage // nil en dry-run: sin caché ni histórico
	notifier ports.Notifier
	surfaces *surface.Builder
}

// New crea un Pricer con todas las dependencias inyectadas.
func New(cfg Config, market ports.MarketProvider, storage ports.Storage, notifier ports.Notifier, surfaces *surface.Builder) *Pricer {
	return &Pricer{
		cfg:      cfg,
		market:   market,
		storage:  storage,
		notifier: notifier,
		surfaces: surfaces,
	}
}

// PriceOnce ejecuta un ciclo de pricing puntual: evalúa el contrato y
// presenta todas las griegas.
func (p *Pricer) PriceOnce(ctx context.Context, req Request) (domain.OptionContract, domain.EvaluationResult, error) {
	start := time.Now()

	contract, err := p.resolveContract(ctx, req)
	if err != nil {
		return domain.OptionContract{}, domain.EvaluationResult{}, err
	}

	res, cached, err := p.evaluate(ctx, req.Symbol, contract)
	if err != nil {
		return domain.OptionContract{}, domain.EvaluationResult{}, err
	}

	p.saveRun(ctx, domain.RunSummary{
		ID:       uuid.New().String(),
		Kind:     "price",
		Symbol:   req.Symbol,
		Metric:   domain.MetricPrice,
		Points:   1,
		Duration: time.Since(start),
		At:       start.UTC(),
	})

	if err := p.notifier.NotifyEvaluation(ctx, req.Symbol, contract, res); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Info("pricing complete",
		"symbol", req.Symbol,
		"type", string(contract.Type),
		"price", res.Price,
		"cached", cached,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return contract, res, nil
}

// Surface ejecuta un sweep 1D/2D y presenta el grid resultante.
func (p *Pricer) Surface(ctx context.Context, req Request, sreq surface.Request) (domain.RiskGrid, error) {
	start := time.Now()

	contract, err := p.resolveContract(ctx, req)
	if err != nil {
		return domain.RiskGrid{}, err
	}

	grid, err := p.surfaces.Build(ctx, contract, sreq)
	if err != nil {
		return domain.RiskGrid{}, fmt.Errorf("pricer.Surface: %w", err)
	}

	points := len(grid.PrimaryAxis)
	if grid.IsSurface() {
		points *= len(grid.SecondaryAxis)
	}
	p.saveRun(ctx, domain.RunSummary{
		ID:       uuid.New().String(),
		Kind:     "surface",
		Symbol:   req.Symbol,
		Metric:   sreq.Metric,
		Points:   points,
		Duration: time.Since(start),
		At:       start.UTC(),
	})

	if err := p.notifier.NotifySurface(ctx, grid); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Info("surface complete",
		"symbol", req.Symbol,
		"metric", string(sreq.Metric),
		"points", points,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return grid, nil
}

// Watch re-evalúa el contrato en cada tick hasta que el contexto se cancele.
func (p *Pricer) Watch(ctx context.Context, req Request) error {
	slog.Info("watch starting", "symbol", req.Symbol, "interval", p.cfg.WatchInterval)

	if _, _, err := p.PriceOnce(ctx, req); err != nil {
		slog.Error("pricing cycle failed", "err", err)
	}

	ticker := time.NewTicker(p.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped")
			return nil
		case <-ticker.C:
			if _, _, err := p.PriceOnce(ctx, req); err != nil {
				slog.Error("pricing cycle failed", "err", err)
			}
		}
	}
}

// resolveContract obtiene el quote, normaliza el request y, si hay precio de
// mercado observado, deriva la volatilidad implícita.
func (p *Pricer) resolveContract(ctx context.Context, req Request) (domain.OptionContract, error) {
	quote, err := p.market.FetchQuote(ctx, req.Symbol)
	if err != nil {
		return domain.OptionContract{}, fmt.Errorf("pricer: fetch quote: %w", err)
	}
	slog.Debug("quote fetched",
		"symbol", quote.Symbol,
		"spot", quote.Spot,
		"div_yield", quote.DividendYield,
		"risk_free", quote.RiskFree,
	)

	contract := buildContract(req, quote, time.Now())

	if req.MarketPrice > 0 {
		iv, err := domain.ImpliedVolatility(contract, req.MarketPrice, p.cfg.SolverTolerance)
		if err != nil {
			return domain.OptionContract{}, fmt.Errorf("pricer: implied volatility: %w", err)
		}
		slog.Info("implied volatility solved",
			"market_price", req.MarketPrice,
			"iv", iv,
			"seed", contract.Volatility,
		)
		contract.Volatility = iv
	}

	return contract, nil
}

// evaluate consulta la caché antes de recomputar; las evaluaciones son
// deterministas, así que un hit es siempre válido.
func (p *Pricer) evaluate(ctx context.Context, symbol string, c domain.OptionContract) (domain.EvaluationResult, bool, error) {
	if p.storage != nil {
		if res, ok, err := p.storage.Lookup(ctx, c); err != nil {
			slog.Warn("storage error", "err", err)
		} else if ok {
			return res, true, nil
		}
	}

	res, err := domain.Evaluate(c)
	if err != nil {
		return domain.EvaluationResult{}, false, fmt.Errorf("pricer: evaluate: %w", err)
	}

	if p.storage != nil {
		if err := p.storage.SaveEvaluation(ctx, symbol, c, res); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}
	return res, false, nil
}

// saveRun persiste el resumen si hay storage configurado.
func (p *Pricer) saveRun(ctx context.Context, run domain.RunSummary) {
	if p.storage == nil {
		return
	}
	if err := p.storage.SaveRun(ctx, run); err != nil {
		slog.Warn("storage error", "err", err)
	}
}
