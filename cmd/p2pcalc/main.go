// Package main is the entry point for the P2P arbitrage calculator.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/p2ppro/p2p-calc/business/calc"
	calcDI "github.com/p2ppro/p2p-calc/business/calc/di"
	"github.com/p2ppro/p2p-calc/business/history"
	historyDI "github.com/p2ppro/p2p-calc/business/history/di"
	"github.com/p2ppro/p2p-calc/business/market"
	marketApp "github.com/p2ppro/p2p-calc/business/market/app"
	marketDI "github.com/p2ppro/p2p-calc/business/market/di"
	marketDomain "github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/apm"
	"github.com/p2ppro/p2p-calc/internal/config"
	"github.com/p2ppro/p2p-calc/internal/health"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/metrics"
	"github.com/p2ppro/p2p-calc/internal/monolith"
	"github.com/p2ppro/p2p-calc/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("p2pcalc %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	// In TUI mode logs would corrupt the screen, so discard them.
	var log *logger.Logger
	if tuiMode {
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting P2P arbitrage calculator",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	}
	defer healthServer.Stop(ctx)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create application container: %w", err)
	}
	defer mono.Close()

	modules := []monolith.Module{
		&calc.Module{},    // Calculator seeded from config
		&history.Module{}, // Depends on the state store
		&market.Module{},  // Gemini provider, service, poller
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	poller := marketDI.GetPoller(mono.Services())

	if tuiMode {
		model := ui.New(ui.Deps{
			Calculator: calcDI.GetCalculator(mono.Services()),
			History:    historyDI.GetHistoryStore(mono.Services()),
			Market:     marketDI.GetMarketService(mono.Services()),
			Poller:     poller,
			State:      mono.StateStore(),
			Currencies: mono.CurrencyRegistry(),
			Log:        log,
		})

		go poller.Run(ctx)
		return ui.Run(model)
	}

	return runCLI(ctx, mono, poller, log)
}

// runCLI drives the poller with a logging listener until shutdown.
func runCLI(ctx context.Context, mono monolith.Monolith, poller *marketApp.Poller, log *logger.Logger) error {
	calculator := calcDI.GetCalculator(mono.Services())
	result := calculator.Result()
	log.Info(ctx, "calculation",
		"investment", result.Inputs.Investment.StringFixed(2),
		"net_profit", result.NetProfit.StringFixed(2),
		"roi_percent", result.ROIPercent.StringFixed(2),
		"spread_percent", result.SpreadPercent.StringFixed(2),
		"tier", result.Tier.String(),
	)

	sel := result.Inputs
	poller.SetSelectionFn(func() marketDomain.Selection {
		return marketDomain.Selection{Exchange: sel.Exchange, Coin: sel.Coin, Fiat: sel.Fiat}
	})
	poller.SetListener(&logListener{ctx: ctx, log: log})

	poller.Run(ctx)

	log.Info(ctx, "shutting down")
	return nil
}

// logListener logs refresh lifecycle events in CLI mode.
type logListener struct {
	ctx context.Context
	log *logger.Logger
}

func (l *logListener) OnRefreshStarted(manual bool) {
	l.log.Debug(l.ctx, "refresh started", "manual", manual)
}

func (l *logListener) OnSnapshot(snap marketApp.Snapshot, manual bool) {
	l.log.Info(l.ctx, "market snapshot",
		"fiat", snap.Selection.Fiat,
		"buy", snap.Rates.BuyRate.StringFixed(2),
		"sell", snap.Rates.SellRate.StringFixed(2),
		"source", string(snap.Rates.Source),
		"offers", len(snap.Offers),
	)
}

func (l *logListener) OnRefreshFailed(err error, manual bool) {
	l.log.Warn(l.ctx, "refresh failed", "manual", manual, "error", err)
}
