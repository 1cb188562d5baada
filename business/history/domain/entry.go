// Package domain contains the core domain types for the history context.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
)

// Entry is a saved calculation. It snapshots both the inputs (so the
// calculation can be restored) and the headline results (so the list can be
// rendered without recomputing).
type Entry struct {
	ID            int64           `json:"id"`
	CreatedAt     int64           `json:"createdAt"` // unix milliseconds
	Investment    decimal.Decimal `json:"investment"`
	BuyRate       decimal.Decimal `json:"buyRate"`
	SellRate      decimal.Decimal `json:"sellRate"`
	FeePercent    decimal.Decimal `json:"feePercent"`
	Exchange      string          `json:"exchange"`
	Coin          string          `json:"coin"`
	Fiat          string          `json:"fiat"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	ROIPercent    decimal.Decimal `json:"roiPercent"`
	SpreadPercent decimal.Decimal `json:"spreadPercent"`
}

// NewEntry snapshots a calculation result at the given time. The caller
// assigns the ID.
func NewEntry(id int64, at time.Time, r calcDomain.Result) Entry {
	return Entry{
		ID:            id,
		CreatedAt:     at.UnixMilli(),
		Investment:    r.Inputs.Investment,
		BuyRate:       r.Inputs.BuyRate,
		SellRate:      r.Inputs.SellRate,
		FeePercent:    r.Inputs.FeePercent,
		Exchange:      r.Inputs.Exchange,
		Coin:          r.Inputs.Coin,
		Fiat:          r.Inputs.Fiat,
		NetProfit:     r.NetProfit,
		ROIPercent:    r.ROIPercent,
		SpreadPercent: r.SpreadPercent,
	}
}

// Inputs reconstructs the calculator inputs this entry was computed from.
func (e Entry) Inputs() calcDomain.Inputs {
	return calcDomain.Inputs{
		Investment: e.Investment,
		BuyRate:    e.BuyRate,
		SellRate:   e.SellRate,
		FeePercent: e.FeePercent,
		Exchange:   e.Exchange,
		Coin:       e.Coin,
		Fiat:       e.Fiat,
	}
}
