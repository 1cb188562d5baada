package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Efficiency grades how attractive a payment channel currently is.
type Efficiency int

const (
	EfficiencyGood Efficiency = iota
	EfficiencyFair
	EfficiencyExcellent
)

// String returns a human-readable efficiency name.
func (e Efficiency) String() string {
	switch e {
	case EfficiencyExcellent:
		return "Excellent"
	case EfficiencyFair:
		return "Fair"
	default:
		return "Good"
	}
}

// Offer is one payment channel's buy/sell quote on a P2P market.
type Offer struct {
	Channel       string // payment channel, e.g. "MBank (Binance)"
	BuyRate       decimal.Decimal
	SellRate      decimal.Decimal
	SpreadPercent decimal.Decimal
	Efficiency    Efficiency
}

// fallbackChannels lists the common payment channels per fiat.
var fallbackChannels = map[string][]string{
	"KGS": {"MBank", "Optima Bank", "Demir Bank", "Bakai Bank", "RSK Bank"},
	"RUB": {"Sberbank", "T-Bank (Tinkoff)", "Raiffeisen", "SBP", "Gasprombank"},
	"USD": {"Zelle", "Wise", "Revolut", "Skrill", "Neteller"},
	"KZT": {"Kaspi Bank", "Halyk Bank", "ForteBank", "Jusan Bank", "BCC"},
}

var (
	fallbackBuyBase    = decimal.RequireFromString("86.5")
	fallbackSellBase   = decimal.RequireFromString("87.2")
	fallbackSpreadBase = decimal.RequireFromString("0.8")
	fallbackBuyStep    = decimal.RequireFromString("0.1")
	fallbackSpreadStep = decimal.RequireFromString("0.05")
)

// FallbackOffers returns reference offers for the given fiat on the given
// exchange, used when live data is unavailable.
func FallbackOffers(exchange, fiat string) []Offer {
	channels, ok := fallbackChannels[fiat]
	if !ok {
		channels = []string{"Bank Transfer", "E-Wallet", "Other"}
	}

	offers := make([]Offer, 0, len(channels))
	for i, channel := range channels {
		step := fallbackBuyStep.Mul(decimal.NewFromInt(int64(i)))
		efficiency := EfficiencyGood
		switch i % 3 {
		case 0:
			efficiency = EfficiencyExcellent
		case 2:
			efficiency = EfficiencyFair
		}

		offers = append(offers, Offer{
			Channel:       fmt.Sprintf("%s (%s)", channel, exchange),
			BuyRate:       fallbackBuyBase.Add(step),
			SellRate:      fallbackSellBase.Add(step),
			SpreadPercent: fallbackSpreadBase.Add(fallbackSpreadStep.Mul(decimal.NewFromInt(int64(i)))),
			Efficiency:    efficiency,
		})
	}
	return offers
}
