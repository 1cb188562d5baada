// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/p2ppro/p2p-calc/business/market/app"
	"github.com/p2ppro/p2p-calc/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.Service]("market.Service")
	Poller        = di.NewToken[*app.Poller]("market.Poller")
)

// Private dependency tokens - internal to market module
var (
	DataProvider = di.NewToken[app.DataProvider]("market:dataProvider")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, MarketService)
}

func GetPoller(c di.ServiceRegistry) *app.Poller {
	return di.GetToken(c, Poller)
}

func GetDataProvider(c di.ServiceRegistry) app.DataProvider {
	return di.GetToken(c, DataProvider)
}
