// Package domain contains the core domain types for the market context.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source tells where a piece of market data came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Rates is the current buy/sell rate pair for one coin/fiat market.
type Rates struct {
	Fiat      string
	Coin      string
	BuyRate   decimal.Decimal
	SellRate  decimal.Decimal
	Source    Source
	FetchedAt time.Time
}

// Valid reports whether the rates are usable: both must be positive.
func (r Rates) Valid() bool {
	return r.BuyRate.IsPositive() && r.SellRate.IsPositive()
}

// fallbackRates holds reference rates per fiat, used when live data is
// unavailable.
var fallbackRates = map[string][2]string{
	"KGS": {"86.60", "87.15"},
	"RUB": {"92.10", "93.45"},
	"USD": {"0.99", "1.02"},
	"KZT": {"445.0", "452.0"},
}

// FallbackRates returns reference rates for the given market.
func FallbackRates(coin, fiat string, at time.Time) Rates {
	pair, ok := fallbackRates[fiat]
	if !ok {
		pair = [2]string{"1.0", "1.1"}
	}

	return Rates{
		Fiat:      fiat,
		Coin:      coin,
		BuyRate:   decimal.RequireFromString(pair[0]),
		SellRate:  decimal.RequireFromString(pair[1]),
		Source:    SourceFallback,
		FetchedAt: at,
	}
}
