// Package di contains dependency injection tokens for the history context.
package di

import (
	"github.com/p2ppro/p2p-calc/business/history/app"
	"github.com/p2ppro/p2p-calc/internal/di"
)

// Public service tokens - exposed to other modules
var (
	HistoryStore = di.NewToken[*app.Store]("history.Store")
)

// Helper functions for type-safe access
func GetHistoryStore(c di.ServiceRegistry) *app.Store {
	return di.GetToken(c, HistoryStore)
}
