package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSelection() domain.Selection {
	return domain.Selection{Exchange: "Binance", Coin: "USDT", Fiat: "KGS"}
}

// structuredReply wraps text into a generateContent response body.
func structuredReply(t *testing.T, payload any) []byte {
	t.Helper()

	text, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	body, err := json.Marshal(generateResponse{
		Candidates: []candidate{{
			Content: content{
				Role:  "model",
				Parts: []part{{Text: string(text)}},
			},
			FinishReason: "STOP",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewProvider(ClientConfig{
		BaseURL:       server.URL,
		APIKey:        "test-key",
		RetryDelay:    time.Millisecond,
		RatePerSecond: 1000,
		RateBurst:     10,
	}, logger.New(io.Discard, logger.LevelError, "test", nil))
	if err != nil {
		t.Fatal(err)
	}
	return provider
}

func TestFetchRates(t *testing.T) {
	var gotPath, gotKey string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Write(structuredReply(t, map[string]float64{
			"buyRate":  86.55,
			"sellRate": 87.30,
		}))
	})

	rates, err := provider.FetchRates(context.Background(), testSelection())
	if err != nil {
		t.Fatalf("FetchRates() error = %v", err)
	}

	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("request path = %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}

	if rates.Fiat != "KGS" || rates.Coin != "USDT" {
		t.Errorf("rates selection = %s/%s", rates.Coin, rates.Fiat)
	}
	if rates.BuyRate.String() != "86.55" {
		t.Errorf("BuyRate = %s, want 86.55", rates.BuyRate)
	}
	if rates.SellRate.String() != "87.3" {
		t.Errorf("SellRate = %s, want 87.3", rates.SellRate)
	}
	if rates.FetchedAt.IsZero() {
		t.Error("FetchedAt is zero")
	}
}

func TestFetchRatesBadPayload(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(generateResponse{
			Candidates: []candidate{{
				Content: content{Parts: []part{{Text: "not json"}}},
			}},
		})
		w.Write(body)
	})

	_, err := provider.FetchRates(context.Background(), testSelection())
	if err == nil {
		t.Fatal("expected error for non-JSON candidate text")
	}
	if code := apperror.GetCode(err); code != apperror.CodeProviderBadResponse {
		t.Errorf("code = %s, want %s", code, apperror.CodeProviderBadResponse)
	}
}

func TestFetchRatesServerErrorExhaustsRetries(t *testing.T) {
	var requests int
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"status":"INTERNAL","message":"boom"}}`))
	})

	_, err := provider.FetchRates(context.Background(), testSelection())
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if code := apperror.GetCode(err); code != apperror.CodeProviderRequestFailed {
		t.Errorf("code = %s, want %s", code, apperror.CodeProviderRequestFailed)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3 (initial + 2 retries)", requests)
	}
}

func TestFetchOffers(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(structuredReply(t, []map[string]any{
			{"bank": "MBank", "buyRate": 86.5, "sellRate": 87.2, "spreadPercent": 0.81, "efficiency": "Excellent"},
			{"bank": "Optima Bank", "buyRate": 86.6, "sellRate": 87.1, "spreadPercent": 0.58, "efficiency": "Good"},
			{"bank": "Bakai Bank", "buyRate": 86.8, "sellRate": 87.0, "spreadPercent": 0.23, "efficiency": "Fair"},
			{"bank": "", "buyRate": 86.7, "sellRate": 87.0, "spreadPercent": 0.35, "efficiency": "Good"},
			{"bank": "Demir Bank", "buyRate": -1, "sellRate": 87.0, "spreadPercent": 0.35, "efficiency": "Good"},
		}))
	})

	offers, err := provider.FetchOffers(context.Background(), testSelection())
	if err != nil {
		t.Fatalf("FetchOffers() error = %v", err)
	}

	// The nameless and negative-rate entries are dropped.
	if len(offers) != 3 {
		t.Fatalf("len(offers) = %d, want 3", len(offers))
	}
	if offers[0].Channel != "MBank (Binance)" {
		t.Errorf("Channel = %q, want %q", offers[0].Channel, "MBank (Binance)")
	}
	if offers[0].Efficiency != domain.EfficiencyExcellent {
		t.Errorf("Efficiency = %v, want Excellent", offers[0].Efficiency)
	}
	if offers[1].Efficiency != domain.EfficiencyGood {
		t.Errorf("Efficiency = %v, want Good", offers[1].Efficiency)
	}
	if offers[2].Efficiency != domain.EfficiencyFair {
		t.Errorf("Efficiency = %v, want Fair", offers[2].Efficiency)
	}
}

func TestFetchOffersNoneUsable(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(structuredReply(t, []map[string]any{}))
	})

	_, err := provider.FetchOffers(context.Background(), testSelection())
	if err == nil {
		t.Fatal("expected error for empty offer list")
	}
	if code := apperror.GetCode(err); code != apperror.CodeInvalidOffers {
		t.Errorf("code = %s, want %s", code, apperror.CodeInvalidOffers)
	}
}

func TestFetchInsight(t *testing.T) {
	var gotPrompt string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Write(structuredReply(t, map[string]any{
			"riskLevel": "High",
			"summary":   "Spread is thin for the fee level.",
			"tips":      []string{"Lower the fee tier", "Split the order", "Watch the spread"},
		}))
	})

	result, err := calcDomain.Compute(calcDomain.Inputs{
		Investment: dec("100000"),
		BuyRate:    dec("86.50"),
		SellRate:   dec("87.20"),
		FeePercent: dec("0.1"),
		Exchange:   "Binance",
		Coin:       "USDT",
		Fiat:       "KGS",
	})
	if err != nil {
		t.Fatal(err)
	}

	insight, err := provider.FetchInsight(context.Background(), testSelection(), result)
	if err != nil {
		t.Fatalf("FetchInsight() error = %v", err)
	}

	if insight.Risk != domain.RiskHigh {
		t.Errorf("Risk = %v, want High", insight.Risk)
	}
	if len(insight.Tips) != 3 {
		t.Errorf("len(Tips) = %d, want 3", len(insight.Tips))
	}

	// The prompt carries the computed figures so the advisor sees them.
	for _, want := range []string{"100000.00", "86.5", "87.2", "Binance"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, gotPrompt)
		}
	}
}

func TestFetchInsightUnknownRiskDefaultsToMedium(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(structuredReply(t, map[string]any{
			"riskLevel": "Catastrophic",
			"summary":   "s",
			"tips":      []string{},
		}))
	})

	insight, err := provider.FetchInsight(context.Background(), testSelection(), calcDomain.Result{})
	if err != nil {
		t.Fatalf("FetchInsight() error = %v", err)
	}
	if insight.Risk != domain.RiskMedium {
		t.Errorf("Risk = %v, want Medium", insight.Risk)
	}
}
