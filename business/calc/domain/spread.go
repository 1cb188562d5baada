package domain

import "github.com/shopspring/decimal"

// Tier grades a percentage figure such as the spread or a return.
type Tier int

const (
	TierLoss Tier = iota
	TierWeak
	TierGood
	TierExcellent
)

var (
	weakCeiling = decimal.RequireFromString("0.4")
	goodCeiling = decimal.RequireFromString("1.0")

	barFloor = decimal.NewFromInt(5)
	barCap   = decimal.NewFromInt(100)
	two      = decimal.NewFromInt(2)
)

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierLoss:
		return "Loss"
	case TierWeak:
		return "Weak"
	case TierGood:
		return "Good"
	case TierExcellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// CalculateSpread computes the relative gap between buy and sell rates
// as a percentage of the buy rate. Returns zero for a non-positive buy rate.
func CalculateSpread(buyRate, sellRate decimal.Decimal) decimal.Decimal {
	if buyRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return sellRate.Sub(buyRate).Div(buyRate).Mul(oneHundred)
}

// Classify maps a percentage return to a tier:
// non-positive is a loss, under 0.4% is weak, under 1% is good,
// 1% and above is excellent.
func Classify(percent decimal.Decimal) Tier {
	switch {
	case percent.LessThanOrEqual(decimal.Zero):
		return TierLoss
	case percent.LessThan(weakCeiling):
		return TierWeak
	case percent.LessThan(goodCeiling):
		return TierGood
	default:
		return TierExcellent
	}
}

// BarPercent maps a percentage return to a progress bar fill in [5, 100],
// saturating at a 2% return.
func BarPercent(percent decimal.Decimal) decimal.Decimal {
	fill := percent.Div(two).Mul(oneHundred)
	if fill.LessThan(barFloor) {
		return barFloor
	}
	if fill.GreaterThan(barCap) {
		return barCap
	}
	return fill
}
