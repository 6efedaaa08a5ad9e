package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/greekbot/config"
	"github.com/alejandrodnm/greekbot/internal/adapters/marketdata"
	"github.com/alejandrodnm/greekbot/internal/adapters/notify"
	"github.com/alejandrodnm/greekbot/internal/adapters/refdata"
	"github.com/alejandrodnm/greekbot/internal/adapters/storage"
	"github.com/alejandrodnm/greekbot/internal/application/pricer"
	"github.com/alejandrodnm/greekbot/internal/application/surface"
	"github.com/alejandrodnm/greekbot/internal/domain"
	"github.com/alejandrodnm/greekbot/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")

	symbol := flag.String("symbol", "", "underlying ticker (e.g. AAPL)")
	strike := flag.Float64("strike", 0, "strike price")
	expiry := flag.String("expiry", "", "maturity date YYYY-MM-DD")
	optType := flag.String("type", "call", "option type: call|put")
	vol := flag.Float64("vol", 0, "volatility in percent (20 = 20%)")
	ratePct := flag.Float64("rate", 0, "risk-free rate override in percent")
	divPct := flag.Float64("div", 0, "dividend yield override in percent")
	spot := flag.Float64("spot", 0, "spot override (required with -dry-run)")
	marketPrice := flag.Float64("market-price", 0, "observed option price; solves implied volatility first")

	factor := flag.String("factor", "", "primary sweep factor (spot|strike|vol|maturity|rate|div); enables surface mode")
	factor2 := flag.String("factor2", "", "secondary sweep factor for a 2D surface")
	metric := flag.String("metric", "price", "surface target metric (price|delta|gamma|vega|theta|rho|vanna|volga|charm|color|speed|gearing|epsilon)")
	rng := flag.Float64("range", 0, "primary factor range as fraction [0.1, 0.99] (0 = config default)")
	rng2 := flag.Float64("range2", 0, "secondary factor range as fraction (0 = config default)")
	granularity := flag.Int("granularity", 0, "axis subdivisions [1, 100] (0 = config default)")

	watch := flag.Bool("watch", false, "re-price on an interval until interrupted")
	dryRun := flag.Bool("dry-run", false, "use static quote from flags instead of real API")
	list := flag.Bool("list", false, "print the instrument directory and exit")
	history := flag.Int("history", 0, "print the last N recorded runs and exit")
	table := flag.Bool("table", false, "print full Greeks table (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console := notify.NewConsole(*table)

	if *list {
		runList(ctx, cfg, console, *dryRun)
		return
	}
	if *history > 0 {
		runHistory(ctx, cfg, console, *history)
		return
	}

	if *symbol == "" {
		slog.Error("missing -symbol")
		os.Exit(1)
	}

	req := pricer.Request{
		Symbol:      *symbol,
		Strike:      *strike,
		VolPct:      *vol,
		RatePct:     *ratePct,
		DivPct:      *divPct,
		Spot:        *spot,
		MarketPrice: *marketPrice,
	}

	switch *optType {
	case "call":
		req.Type = domain.Call
	case "put":
		req.Type = domain.Put
	default:
		slog.Error("invalid -type, must be call or put", "type", *optType)
		os.Exit(1)
	}

	if *expiry != "" {
		d, err := time.Parse("2006-01-02", *expiry)
		if err != nil {
			slog.Error("invalid -expiry, expected YYYY-MM-DD", "err", err)
			os.Exit(1)
		}
		req.Expiry = d
	}

	slog.Info("greekbot starting",
		"config", *configPath,
		"symbol", *symbol,
		"dry_run", *dryRun,
		"watch", *watch,
	)

	var market ports.MarketProvider
	if *dryRun {
		market = marketdata.Static{
			Spot:          *spot,
			DividendYield: *divPct / 100,
			RiskFree:      *ratePct / 100,
		}
	} else {
		market = marketdata.NewClient(cfg.API.MarketBase)
	}

	var store *storage.SQLiteStorage
	if !*dryRun {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	surfaces := surface.New(surface.Config{
		Granularity: cfg.Pricer.Granularity,
		Range:       cfg.Pricer.Range,
		Workers:     cfg.Pricer.Workers,
	})

	pricerCfg := pricer.Config{
		WatchInterval:   cfg.WatchInterval(),
		SolverTolerance: cfg.Pricer.SolverTolerance,
	}

	// ports.Storage es una interfaz: un *SQLiteStorage nil no debe colarse
	// como interfaz no-nil.
	var storagePort ports.Storage
	if store != nil {
		storagePort = store
	}
	p := pricer.New(pricerCfg, market, storagePort, console, surfaces)

	switch {
	case *factor != "":
		runSurface(ctx, p, req, surface.Request{
			PrimaryRange:   *rng,
			SecondaryRange: *rng2,
			Granularity:    *granularity,
		}, *metric, *factor, *factor2)
	case *watch:
		if err := p.Watch(ctx, req); err != nil {
			slog.Error("watch exited with error", "err", err)
			os.Exit(1)
		}
	default:
		if _, _, err := p.PriceOnce(ctx, req); err != nil {
			slog.Error("pricing failed", "err", err)
			os.Exit(1)
		}
	}

	slog.Info("greekbot stopped cleanly")
}

// runSurface parsea métrica y factores y ejecuta el sweep.
func runSurface(ctx context.Context, p *pricer.Pricer, req pricer.Request, sreq surface.Request, metric, factor, factor2 string) {
	var err error
	sreq.Metric, err = domain.ParseMetric(metric)
	if err != nil {
		slog.Error("invalid -metric", "err", err)
		os.Exit(1)
	}
	sreq.Primary, err = domain.ParseFactor(factor)
	if err != nil {
		slog.Error("invalid -factor", "err", err)
		os.Exit(1)
	}
	if factor2 != "" {
		sreq.Secondary, err = domain.ParseFactor(factor2)
		if err != nil {
			slog.Error("invalid -factor2", "err", err)
			os.Exit(1)
		}
	}

	if _, err := p.Surface(ctx, req, sreq); err != nil {
		slog.Error("surface failed", "err", err)
		os.Exit(1)
	}
}

// runList imprime el directorio de instrumentos.
func runList(ctx context.Context, cfg *config.Config, console *notify.Console, dryRun bool) {
	var provider ports.ReferenceProvider
	if dryRun {
		provider = refdata.Static{
			{Name: "Apple Inc.", Symbol: "AAPL"},
			{Name: "Microsoft Corporation", Symbol: "MSFT"},
		}
	} else {
		provider = refdata.NewClient(cfg.API.ReferenceBase)
	}

	instruments, err := provider.FetchConstituents(ctx)
	if err != nil {
		slog.Error("failed to fetch instrument directory", "err", err)
		os.Exit(1)
	}
	console.PrintInstruments(instruments)
}

// runHistory imprime las últimas ejecuciones persistidas.
func runHistory(ctx context.Context, cfg *config.Config, console *notify.Console, limit int) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		slog.Error("failed to read run history", "err", err)
		os.Exit(1)
	}
	console.PrintRuns(runs)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
