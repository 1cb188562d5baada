// Package calc implements the calc bounded context for buy-sell cycle evaluation.
package calc

import (
	"context"

	"github.com/p2ppro/p2p-calc/business/calc/app"
	"github.com/p2ppro/p2p-calc/business/calc/domain"
	calcDI "github.com/p2ppro/p2p-calc/business/calc/di"
	"github.com/p2ppro/p2p-calc/business/calc/infra"
	"github.com/p2ppro/p2p-calc/internal/config"
	"github.com/p2ppro/p2p-calc/internal/di"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/monolith"
)

// Module implements the calc bounded context.
type Module struct{}

// RegisterServices registers all calc services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ShareSurface (clipboard) - private dependency
	di.RegisterToken(c, calcDI.ShareSurface, func(sr di.ServiceRegistry) app.ShareSurface {
		return infra.NewClipboardSurface()
	})

	// Register Calculator (public - exposed to other modules)
	di.RegisterToken(c, calcDI.Calculator, func(sr di.ServiceRegistry) *app.Calculator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		share := calcDI.GetShareSurface(sr)

		seed := domain.Inputs{
			Investment: cfg.Calculator.InvestmentDecimal(),
			BuyRate:    cfg.Calculator.BuyRateDecimal(),
			SellRate:   cfg.Calculator.SellRateDecimal(),
			FeePercent: cfg.Calculator.FeePercentDecimal(),
			Exchange:   cfg.Calculator.Exchange,
			Coin:       cfg.Calculator.Coin,
			Fiat:       cfg.Calculator.Fiat,
		}

		calculator, err := app.NewCalculator(log, share, seed)
		if err != nil {
			panic("failed to create calculator: " + err.Error())
		}
		return calculator
	})

	return nil
}

// Startup initializes the calc module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	// Force construction so a bad seed config fails at startup, not on first use.
	calculator := calcDI.GetCalculator(mono.Services())
	result := calculator.Result()

	log.Info(ctx, "calc module started",
		"net_profit", result.NetProfit.StringFixed(2),
		"roi_percent", result.ROIPercent.StringFixed(2))
	return nil
}
