package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFallbackRates(t *testing.T) {
	now := time.Now()

	tests := []struct {
		fiat     string
		wantBuy  string
		wantSell string
	}{
		{"KGS", "86.60", "87.15"},
		{"RUB", "92.10", "93.45"},
		{"USD", "0.99", "1.02"},
		{"KZT", "445.0", "452.0"},
		{"EUR", "1.0", "1.1"}, // no table entry, generic defaults
	}

	for _, tt := range tests {
		t.Run(tt.fiat, func(t *testing.T) {
			r := FallbackRates("USDT", tt.fiat, now)

			if !r.BuyRate.Equal(decimal.RequireFromString(tt.wantBuy)) {
				t.Errorf("BuyRate = %s, want %s", r.BuyRate, tt.wantBuy)
			}
			if !r.SellRate.Equal(decimal.RequireFromString(tt.wantSell)) {
				t.Errorf("SellRate = %s, want %s", r.SellRate, tt.wantSell)
			}
			if r.Source != SourceFallback {
				t.Errorf("Source = %s, want %s", r.Source, SourceFallback)
			}
			if !r.Valid() {
				t.Error("fallback rates should be valid")
			}
		})
	}
}

func TestFallbackOffers(t *testing.T) {
	offers := FallbackOffers("Binance", "KGS")

	if len(offers) != 5 {
		t.Fatalf("len = %d, want 5", len(offers))
	}
	if offers[0].Channel != "MBank (Binance)" {
		t.Errorf("Channel = %q, want %q", offers[0].Channel, "MBank (Binance)")
	}
	if !offers[0].BuyRate.Equal(decimal.RequireFromString("86.5")) {
		t.Errorf("first BuyRate = %s, want 86.5", offers[0].BuyRate)
	}
	if !offers[1].BuyRate.Equal(decimal.RequireFromString("86.6")) {
		t.Errorf("second BuyRate = %s, want 86.6", offers[1].BuyRate)
	}
	if !offers[4].SpreadPercent.Equal(decimal.RequireFromString("1.0")) {
		t.Errorf("fifth SpreadPercent = %s, want 1.0", offers[4].SpreadPercent)
	}

	// Grades cycle Excellent, Good, Fair through the list.
	for i, o := range offers {
		want := EfficiencyGood
		switch i % 3 {
		case 0:
			want = EfficiencyExcellent
		case 2:
			want = EfficiencyFair
		}
		if o.Efficiency != want {
			t.Errorf("offer %d Efficiency = %s, want %s", i, o.Efficiency, want)
		}
	}
}

func TestFallbackOffersUnknownFiat(t *testing.T) {
	offers := FallbackOffers("OKX", "EUR")

	if len(offers) != 3 {
		t.Fatalf("len = %d, want 3", len(offers))
	}
	for _, o := range offers {
		if !strings.HasSuffix(o.Channel, "(OKX)") {
			t.Errorf("Channel = %q, want exchange suffix", o.Channel)
		}
	}
}

func TestFallbackInsight(t *testing.T) {
	insight := FallbackInsight()

	if insight.Risk != RiskMedium {
		t.Errorf("Risk = %s, want Medium", insight.Risk)
	}
	if len(insight.Tips) != 3 {
		t.Errorf("len(Tips) = %d, want 3", len(insight.Tips))
	}
	if insight.Source != SourceFallback {
		t.Errorf("Source = %s, want %s", insight.Source, SourceFallback)
	}
}

func TestSelectionRings(t *testing.T) {
	sel := Selection{Exchange: "Binance", Coin: "USDT", Fiat: "KGS"}

	sel = sel.NextExchange()
	if sel.Exchange != "Bybit" {
		t.Errorf("NextExchange = %s, want Bybit", sel.Exchange)
	}

	// Wraps around at the end.
	sel.Exchange = "Huobi"
	sel = sel.NextExchange()
	if sel.Exchange != "Binance" {
		t.Errorf("NextExchange wrap = %s, want Binance", sel.Exchange)
	}

	coins := []string{"USDT", "USDC", "FDUSD", "DAI"}
	sel = sel.NextCoin(coins)
	if sel.Coin != "USDC" {
		t.Errorf("NextCoin = %s, want USDC", sel.Coin)
	}

	// Unknown current value resets to the first element.
	sel.Coin = "BTC"
	sel = sel.NextCoin(coins)
	if sel.Coin != "USDT" {
		t.Errorf("NextCoin from unknown = %s, want USDT", sel.Coin)
	}
}
