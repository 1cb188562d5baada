// Package history implements the history bounded context for saved calculations.
package history

import (
	"context"

	"github.com/p2ppro/p2p-calc/business/history/app"
	historyDI "github.com/p2ppro/p2p-calc/business/history/di"
	"github.com/p2ppro/p2p-calc/internal/config"
	"github.com/p2ppro/p2p-calc/internal/di"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/monolith"
	"github.com/p2ppro/p2p-calc/internal/state"
)

// Module implements the history bounded context.
type Module struct{}

// RegisterServices registers all history services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, historyDI.HistoryStore, func(sr di.ServiceRegistry) *app.Store {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		st := sr.Get("stateStore").(*state.Store)

		return app.NewStore(log, st, cfg.Market.MaxHistory)
	})

	return nil
}

// Startup initializes the history module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	store := historyDI.GetHistoryStore(mono.Services())
	mono.Logger().Info(ctx, "history module started", "entries", store.Len())
	return nil
}
