package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/market/domain"
)

// mockLogger implements logger.LoggerInterface for tests.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

// stubProvider returns canned data or errors per data kind.
type stubProvider struct {
	rates      domain.Rates
	ratesErr   error
	offers     []domain.Offer
	offersErr  error
	insight    domain.Insight
	insightErr error

	block chan struct{} // when set, FetchRates blocks until closed
}

func (s *stubProvider) FetchRates(ctx context.Context, sel domain.Selection) (domain.Rates, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return domain.Rates{}, ctx.Err()
		}
	}
	return s.rates, s.ratesErr
}

func (s *stubProvider) FetchOffers(ctx context.Context, sel domain.Selection) ([]domain.Offer, error) {
	return s.offers, s.offersErr
}

func (s *stubProvider) FetchInsight(ctx context.Context, sel domain.Selection, r calcDomain.Result) (domain.Insight, error) {
	return s.insight, s.insightErr
}

func kgsSelection() domain.Selection {
	return domain.Selection{Exchange: "Binance", Coin: "USDT", Fiat: "KGS"}
}

func liveRates() domain.Rates {
	return domain.Rates{
		Fiat:      "KGS",
		Coin:      "USDT",
		BuyRate:   decimal.RequireFromString("86.70"),
		SellRate:  decimal.RequireFromString("87.30"),
		FetchedAt: time.Now(),
	}
}

func TestRatesLive(t *testing.T) {
	svc, err := NewService(&stubProvider{rates: liveRates()}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	rates, err := svc.Rates(context.Background(), kgsSelection())
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if rates.Source != domain.SourceLive {
		t.Errorf("Source = %s, want live", rates.Source)
	}
	if !rates.BuyRate.Equal(decimal.RequireFromString("86.70")) {
		t.Errorf("BuyRate = %s, want 86.70", rates.BuyRate)
	}
}

func TestRatesFallbackOnError(t *testing.T) {
	svc, err := NewService(&stubProvider{ratesErr: errors.New("upstream 500")}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	rates, err := svc.Rates(context.Background(), kgsSelection())
	if err != nil {
		t.Fatalf("Rates() error = %v, want fallback", err)
	}
	if rates.Source != domain.SourceFallback {
		t.Errorf("Source = %s, want fallback", rates.Source)
	}
	if !rates.BuyRate.Equal(decimal.RequireFromString("86.60")) {
		t.Errorf("fallback BuyRate = %s, want 86.60", rates.BuyRate)
	}
}

func TestRatesFallbackOnInvalidData(t *testing.T) {
	bad := liveRates()
	bad.BuyRate = decimal.Zero

	svc, err := NewService(&stubProvider{rates: bad}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	rates, err := svc.Rates(context.Background(), kgsSelection())
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if rates.Source != domain.SourceFallback {
		t.Errorf("Source = %s, want fallback for non-positive rates", rates.Source)
	}
}

func TestRatesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, err := NewService(&stubProvider{ratesErr: context.Canceled}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Rates(ctx, kgsSelection()); !errors.Is(err, context.Canceled) {
		t.Errorf("Rates() error = %v, want context.Canceled", err)
	}
}

func TestOffersFallbackOnEmpty(t *testing.T) {
	svc, err := NewService(&stubProvider{offers: nil}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	offers, err := svc.Offers(context.Background(), kgsSelection())
	if err != nil {
		t.Fatalf("Offers() error = %v", err)
	}
	if len(offers) != 5 {
		t.Fatalf("len = %d, want 5 fallback offers", len(offers))
	}
	if offers[0].Channel != "MBank (Binance)" {
		t.Errorf("Channel = %q, want MBank (Binance)", offers[0].Channel)
	}
}

func TestInsightFallback(t *testing.T) {
	svc, err := NewService(&stubProvider{insightErr: errors.New("model unavailable")}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	result, err := calcDomain.Compute(calcDomain.Inputs{
		Investment: decimal.RequireFromString("100000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.RequireFromString("87.20"),
		FeePercent: decimal.RequireFromString("0.1"),
	})
	if err != nil {
		t.Fatal(err)
	}

	insight, err := svc.Insight(context.Background(), kgsSelection(), result)
	if err != nil {
		t.Fatalf("Insight() error = %v", err)
	}
	if insight.Risk != domain.RiskMedium || len(insight.Tips) != 3 {
		t.Error("expected the generic fallback insight")
	}
}

func TestRefreshCombinesKinds(t *testing.T) {
	// Rates fail, offers succeed: the snapshot carries fallback rates and
	// live offers.
	provider := &stubProvider{
		ratesErr: errors.New("upstream 500"),
		offers: []domain.Offer{{
			Channel:       "MBank (Binance)",
			BuyRate:       decimal.RequireFromString("86.55"),
			SellRate:      decimal.RequireFromString("87.25"),
			SpreadPercent: decimal.RequireFromString("0.81"),
			Efficiency:    domain.EfficiencyExcellent,
		}},
	}
	svc, err := NewService(provider, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	snap, err := svc.Refresh(context.Background(), kgsSelection())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if snap.Rates.Source != domain.SourceFallback {
		t.Errorf("Rates.Source = %s, want fallback", snap.Rates.Source)
	}
	if len(snap.Offers) != 1 {
		t.Errorf("len(Offers) = %d, want the live offer", len(snap.Offers))
	}
}
