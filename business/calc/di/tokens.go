// Package di contains dependency injection tokens for the calc context.
package di

import (
	"github.com/p2ppro/p2p-calc/business/calc/app"
	"github.com/p2ppro/p2p-calc/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Calculator = di.NewToken[*app.Calculator]("calc.Calculator")
)

// Private dependency tokens - internal to calc module
var (
	ShareSurface = di.NewToken[app.ShareSurface]("calc:shareSurface")
)

// Helper functions for type-safe access
func GetCalculator(c di.ServiceRegistry) *app.Calculator {
	return di.GetToken(c, Calculator)
}

func GetShareSurface(c di.ServiceRegistry) app.ShareSurface {
	return di.GetToken(c, ShareSurface)
}
