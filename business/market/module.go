// Package market implements the market bounded context: live rates, offers,
// and insights with deterministic fallbacks.
package market

import (
	"context"

	"github.com/p2ppro/p2p-calc/business/market/app"
	marketDI "github.com/p2ppro/p2p-calc/business/market/di"
	"github.com/p2ppro/p2p-calc/business/market/infra/gemini"
	"github.com/p2ppro/p2p-calc/internal/config"
	"github.com/p2ppro/p2p-calc/internal/di"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/monolith"
	"github.com/p2ppro/p2p-calc/internal/state"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register DataProvider (Gemini-backed) - private dependency
	di.RegisterToken(c, marketDI.DataProvider, func(sr di.ServiceRegistry) app.DataProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := gemini.NewProvider(gemini.ClientConfig{
			BaseURL:       cfg.Gemini.BaseURL,
			APIKey:        cfg.Gemini.APIKey,
			Model:         cfg.Gemini.Model,
			Timeout:       cfg.Gemini.RequestTimeout,
			MaxRetries:    cfg.Gemini.MaxRetries,
			RetryDelay:    cfg.Gemini.RetryDelay,
			RatePerSecond: cfg.Gemini.RatePerSecond,
			RateBurst:     cfg.Gemini.RateBurst,
		}, log)
		if err != nil {
			panic("failed to create market data provider: " + err.Error())
		}
		return provider
	})

	// Register Service (public - exposed to other modules)
	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get("logger").(logger.LoggerInterface)
		provider := marketDI.GetDataProvider(sr)

		svc, err := app.NewService(provider, log)
		if err != nil {
			panic("failed to create market service: " + err.Error())
		}
		return svc
	})

	// Register Poller (public - its Run loop is owned by the entrypoint)
	di.RegisterToken(c, marketDI.Poller, func(sr di.ServiceRegistry) *app.Poller {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		st := sr.Get("stateStore").(*state.Store)
		svc := marketDI.GetMarketService(sr)

		return app.NewPoller(log, svc, st, cfg.Market.RefreshInterval)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	cfg := mono.Config()

	if cfg.Gemini.APIKey == "" {
		log.Warn(ctx, "no Gemini API key configured, market data will use fallbacks")
	}

	poller := marketDI.GetPoller(mono.Services())
	log.Info(ctx, "market module started", "refresh_interval", poller.Interval().String())
	return nil
}
