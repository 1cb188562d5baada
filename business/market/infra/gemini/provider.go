package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/logger"
)

// Provider implements app.DataProvider on top of the Gemini API with
// structured JSON output.
type Provider struct {
	client *Client
	logger logger.LoggerInterface
}

// NewProvider creates a Gemini-backed market data provider.
func NewProvider(cfg ClientConfig, log logger.LoggerInterface) (*Provider, error) {
	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client: client,
		logger: log,
	}, nil
}

// Wire payloads for structured output.

type ratesPayload struct {
	BuyRate  decimal.Decimal `json:"buyRate"`
	SellRate decimal.Decimal `json:"sellRate"`
}

type offerPayload struct {
	Bank          string          `json:"bank"`
	BuyRate       decimal.Decimal `json:"buyRate"`
	SellRate      decimal.Decimal `json:"sellRate"`
	SpreadPercent decimal.Decimal `json:"spreadPercent"`
	Efficiency    string          `json:"efficiency"`
}

type insightPayload struct {
	RiskLevel string   `json:"riskLevel"`
	Summary   string   `json:"summary"`
	Tips      []string `json:"tips"`
}

var numberSchema = &schema{Type: "number"}

var ratesSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"buyRate":  numberSchema,
		"sellRate": numberSchema,
	},
	Required: []string{"buyRate", "sellRate"},
}

var offersSchema = &schema{
	Type: "array",
	Items: &schema{
		Type: "object",
		Properties: map[string]*schema{
			"bank":          {Type: "string"},
			"buyRate":       numberSchema,
			"sellRate":      numberSchema,
			"spreadPercent": numberSchema,
			"efficiency":    {Type: "string", Enum: []string{"Excellent", "Good", "Fair"}},
		},
		Required: []string{"bank", "buyRate", "sellRate", "spreadPercent", "efficiency"},
	},
}

var insightSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"riskLevel": {Type: "string", Enum: []string{"Low", "Medium", "High"}},
		"summary":   {Type: "string"},
		"tips":      {Type: "array", Items: &schema{Type: "string"}},
	},
	Required: []string{"riskLevel", "summary", "tips"},
}

// FetchRates asks for the current mid-market buy/sell rates.
func (p *Provider) FetchRates(ctx context.Context, sel domain.Selection) (domain.Rates, error) {
	prompt := ratesPrompt(sel)

	text, err := p.client.generate(ctx, "rates", prompt, ratesSchema)
	if err != nil {
		return domain.Rates{}, err
	}

	var payload ratesPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.Rates{}, apperror.New(apperror.CodeProviderBadResponse,
			apperror.WithCause(err),
			apperror.WithContext("rates"))
	}

	p.logger.Debug(ctx, "fetched rates",
		"fiat", sel.Fiat,
		"buy", payload.BuyRate.String(),
		"sell", payload.SellRate.String())

	return domain.Rates{
		Fiat:      sel.Fiat,
		Coin:      sel.Coin,
		BuyRate:   payload.BuyRate,
		SellRate:  payload.SellRate,
		FetchedAt: time.Now(),
	}, nil
}

// FetchOffers asks for current per-channel offers.
func (p *Provider) FetchOffers(ctx context.Context, sel domain.Selection) ([]domain.Offer, error) {
	prompt := offersPrompt(sel)

	text, err := p.client.generate(ctx, "offers", prompt, offersSchema)
	if err != nil {
		return nil, err
	}

	var payload []offerPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, apperror.New(apperror.CodeProviderBadResponse,
			apperror.WithCause(err),
			apperror.WithContext("offers"))
	}

	offers := make([]domain.Offer, 0, len(payload))
	for _, o := range payload {
		if o.Bank == "" || !o.BuyRate.IsPositive() || !o.SellRate.IsPositive() {
			continue
		}

		efficiency := domain.EfficiencyGood
		switch o.Efficiency {
		case "Excellent":
			efficiency = domain.EfficiencyExcellent
		case "Fair":
			efficiency = domain.EfficiencyFair
		}

		offers = append(offers, domain.Offer{
			Channel:       fmt.Sprintf("%s (%s)", o.Bank, sel.Exchange),
			BuyRate:       o.BuyRate,
			SellRate:      o.SellRate,
			SpreadPercent: o.SpreadPercent,
			Efficiency:    efficiency,
		})
	}

	if len(offers) == 0 {
		return nil, apperror.New(apperror.CodeInvalidOffers,
			apperror.WithContext("no usable offers in response"))
	}

	p.logger.Debug(ctx, "fetched offers", "fiat", sel.Fiat, "count", len(offers))
	return offers, nil
}

// FetchInsight asks for an analysis of the given calculation.
func (p *Provider) FetchInsight(ctx context.Context, sel domain.Selection, r calcDomain.Result) (domain.Insight, error) {
	prompt := insightPrompt(sel, r)

	text, err := p.client.generate(ctx, "insight", prompt, insightSchema)
	if err != nil {
		return domain.Insight{}, err
	}

	var payload insightPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.Insight{}, apperror.New(apperror.CodeProviderBadResponse,
			apperror.WithCause(err),
			apperror.WithContext("insight"))
	}

	risk := domain.RiskMedium
	switch payload.RiskLevel {
	case "Low":
		risk = domain.RiskLow
	case "High":
		risk = domain.RiskHigh
	}

	return domain.Insight{
		Risk:    risk,
		Summary: payload.Summary,
		Tips:    payload.Tips,
	}, nil
}

func ratesPrompt(sel domain.Selection) string {
	return fmt.Sprintf(
		"You are a P2P market data service. Report the current typical %s/%s "+
			"rates on the %s P2P market as JSON. buyRate is the %s price to buy "+
			"1 %s, sellRate is the price to sell 1 %s. Respond with realistic "+
			"current market values only.",
		sel.Coin, sel.Fiat, sel.Exchange, sel.Fiat, sel.Coin, sel.Coin)
}

func offersPrompt(sel domain.Selection) string {
	return fmt.Sprintf(
		"You are a P2P market data service. List the 5 most liquid payment "+
			"channels for trading %s against %s on %s P2P as JSON. For each, "+
			"give the bank or payment system name, realistic buyRate and "+
			"sellRate in %s per 1 %s, spreadPercent between them, and an "+
			"efficiency grade (Excellent for the tightest spreads, Good "+
			"for typical ones, Fair for wide or illiquid ones).",
		sel.Coin, sel.Fiat, sel.Exchange, sel.Fiat, sel.Coin)
}

func insightPrompt(sel domain.Selection, r calcDomain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"You are a P2P arbitrage advisor. A trader on %s plans a %s/%s cycle: "+
			"invest %s %s, buy at %s, sell at %s with a %s%% fee. "+
			"Computed outcome: net profit %s %s, ROI %s%%, spread %s%%. ",
		sel.Exchange, sel.Coin, sel.Fiat,
		r.Inputs.Investment.StringFixed(2), sel.Fiat,
		r.Inputs.BuyRate.String(), r.Inputs.SellRate.String(), r.Inputs.FeePercent.String(),
		r.NetProfit.StringFixed(2), sel.Fiat,
		r.ROIPercent.StringFixed(2), r.SpreadPercent.StringFixed(2))
	sb.WriteString(
		"Assess the risk level of executing this trade now and give exactly " +
			"3 short, practical tips. Respond as JSON.")
	return sb.String()
}
