// Package domain contains the core domain types for the calc context.
package domain

import (
	"github.com/shopspring/decimal"

	"github.com/p2ppro/p2p-calc/internal/apperror"
)

// Inputs holds everything needed to evaluate a buy-sell cycle.
type Inputs struct {
	Investment decimal.Decimal // in fiat
	BuyRate    decimal.Decimal // fiat per coin when buying
	SellRate   decimal.Decimal // fiat per coin when selling
	FeePercent decimal.Decimal // platform fee on the sell side
	Exchange   string
	Coin       string
	Fiat       string
}

var oneHundred = decimal.NewFromInt(100)

// Validate checks inputs for computability. Rates and amounts must be
// positive; the fee must be in [0, 100).
func (in Inputs) Validate() error {
	if in.Investment.LessThanOrEqual(decimal.Zero) {
		return apperror.Validation(apperror.CodeInvalidInvestment, in.Investment.String())
	}
	if in.BuyRate.LessThanOrEqual(decimal.Zero) {
		return apperror.Validation(apperror.CodeInvalidRate, "buy rate "+in.BuyRate.String())
	}
	if in.SellRate.IsNegative() {
		return apperror.Validation(apperror.CodeInvalidRate, "sell rate "+in.SellRate.String())
	}
	if in.FeePercent.IsNegative() || in.FeePercent.GreaterThanOrEqual(oneHundred) {
		return apperror.Validation(apperror.CodeInvalidFee, in.FeePercent.String())
	}
	return nil
}
