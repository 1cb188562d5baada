package domain

import (
	"github.com/shopspring/decimal"
)

// Result holds the outcome of evaluating a buy-sell cycle.
type Result struct {
	Inputs        Inputs
	Acquired      decimal.Decimal // coins bought with the investment
	FinalAmount   decimal.Decimal // fiat received after selling, net of fees
	NetProfit     decimal.Decimal
	ROIPercent    decimal.Decimal
	SpreadPercent decimal.Decimal
	Tier          Tier // graded from the spread, not the ROI
}

// Compute evaluates a full buy-sell cycle:
// buy coins with the investment at BuyRate, sell them at SellRate,
// and deduct the platform fee from the sell side.
func Compute(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	acquired := in.Investment.Div(in.BuyRate)
	feeFactor := decimal.NewFromInt(1).Sub(in.FeePercent.Div(oneHundred))
	finalAmount := acquired.Mul(in.SellRate).Mul(feeFactor)
	netProfit := finalAmount.Sub(in.Investment)
	roi := netProfit.Div(in.Investment).Mul(oneHundred)
	spread := CalculateSpread(in.BuyRate, in.SellRate)

	return Result{
		Inputs:        in,
		Acquired:      acquired,
		FinalAmount:   finalAmount,
		NetProfit:     netProfit,
		ROIPercent:    roi,
		SpreadPercent: spread,
		Tier:          Classify(spread),
	}, nil
}

// IsProfitable returns true if the cycle yields positive net profit.
func (r Result) IsProfitable() bool {
	return r.NetProfit.IsPositive()
}
