package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/p2ppro/p2p-calc/internal/apperror"
)

func approxEqual(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	tolerance := decimal.RequireFromString("0.0001")
	if got.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestCompute(t *testing.T) {
	in := Inputs{
		Investment: decimal.RequireFromString("100000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.RequireFromString("87.20"),
		FeePercent: decimal.RequireFromString("0.1"),
		Exchange:   "Binance",
		Coin:       "USDT",
		Fiat:       "KGS",
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	approxEqual(t, "Acquired", res.Acquired, decimal.RequireFromString("1156.0694"))
	approxEqual(t, "FinalAmount", res.FinalAmount, decimal.RequireFromString("100708.4393"))
	approxEqual(t, "NetProfit", res.NetProfit, decimal.RequireFromString("708.4393"))
	approxEqual(t, "ROIPercent", res.ROIPercent, decimal.RequireFromString("0.7084"))
	approxEqual(t, "SpreadPercent", res.SpreadPercent, decimal.RequireFromString("0.8092"))

	if res.Tier != TierGood {
		t.Errorf("Tier = %s, want Good", res.Tier)
	}
	if !res.IsProfitable() {
		t.Error("IsProfitable() = false, want true")
	}
}

func TestComputeLoss(t *testing.T) {
	in := Inputs{
		Investment: decimal.RequireFromString("1000"),
		BuyRate:    decimal.RequireFromString("90"),
		SellRate:   decimal.RequireFromString("89"),
		FeePercent: decimal.Zero,
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !res.NetProfit.IsNegative() {
		t.Errorf("NetProfit = %s, want negative", res.NetProfit)
	}
	if res.Tier != TierLoss {
		t.Errorf("Tier = %s, want Loss", res.Tier)
	}
	if res.IsProfitable() {
		t.Error("IsProfitable() = true, want false")
	}
}

func TestComputeFeeEatsProfit(t *testing.T) {
	// The spread alone is profitable but the fee flips it to a loss.
	// The tier grades the spread, so it stays Weak while the bottom line
	// is negative.
	in := Inputs{
		Investment: decimal.RequireFromString("100000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.RequireFromString("86.60"),
		FeePercent: decimal.RequireFromString("1"),
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !res.NetProfit.IsNegative() {
		t.Errorf("NetProfit = %s, want negative", res.NetProfit)
	}
	approxEqual(t, "SpreadPercent", res.SpreadPercent, decimal.RequireFromString("0.1156"))
	if res.Tier != TierWeak {
		t.Errorf("Tier = %s, want Weak (graded from the spread)", res.Tier)
	}
	if res.Tier != Classify(res.SpreadPercent) {
		t.Errorf("Tier = %s, want Classify(spread) = %s", res.Tier, Classify(res.SpreadPercent))
	}
	if res.IsProfitable() {
		t.Error("IsProfitable() = true, want false")
	}
}

func TestComputeValidation(t *testing.T) {
	valid := Inputs{
		Investment: decimal.RequireFromString("100000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.RequireFromString("87.20"),
		FeePercent: decimal.RequireFromString("0.1"),
	}

	tests := []struct {
		name     string
		mutate   func(*Inputs)
		wantCode apperror.Code
	}{
		{
			name:     "zero investment",
			mutate:   func(in *Inputs) { in.Investment = decimal.Zero },
			wantCode: apperror.CodeInvalidInvestment,
		},
		{
			name:     "negative investment",
			mutate:   func(in *Inputs) { in.Investment = decimal.NewFromInt(-5) },
			wantCode: apperror.CodeInvalidInvestment,
		},
		{
			name:     "zero buy rate",
			mutate:   func(in *Inputs) { in.BuyRate = decimal.Zero },
			wantCode: apperror.CodeInvalidRate,
		},
		{
			name:     "negative sell rate",
			mutate:   func(in *Inputs) { in.SellRate = decimal.NewFromInt(-1) },
			wantCode: apperror.CodeInvalidRate,
		},
		{
			name:     "negative fee",
			mutate:   func(in *Inputs) { in.FeePercent = decimal.NewFromInt(-1) },
			wantCode: apperror.CodeInvalidFee,
		},
		{
			name:     "fee at 100 percent",
			mutate:   func(in *Inputs) { in.FeePercent = decimal.NewFromInt(100) },
			wantCode: apperror.CodeInvalidFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := Compute(in)
			if err == nil {
				t.Fatal("Compute() error = nil, want validation error")
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("error type = %T, want *apperror.AppError", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestComputeZeroSellRate(t *testing.T) {
	// A zero sell rate is valid input: everything is lost.
	in := Inputs{
		Investment: decimal.RequireFromString("1000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.Zero,
		FeePercent: decimal.Zero,
	}

	res, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	approxEqual(t, "NetProfit", res.NetProfit, decimal.RequireFromString("-1000"))
}
