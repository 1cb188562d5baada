// Package app contains application services and port definitions for the market context.
package app

import (
	"context"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/market/domain"
)

// DataProvider fetches live market data for a selected P2P market.
type DataProvider interface {
	// FetchRates returns the current buy/sell rates.
	FetchRates(ctx context.Context, sel domain.Selection) (domain.Rates, error)

	// FetchOffers returns current per-channel offers.
	FetchOffers(ctx context.Context, sel domain.Selection) ([]domain.Offer, error)

	// FetchInsight returns an analysis of the given calculation in the
	// selected market.
	FetchInsight(ctx context.Context, sel domain.Selection, r calcDomain.Result) (domain.Insight, error)
}

// Listener observes refresh lifecycle events. Callbacks run on the
// refreshing goroutine.
type Listener interface {
	// OnRefreshStarted fires when a refresh cycle begins.
	OnRefreshStarted(manual bool)

	// OnSnapshot fires when a refresh cycle completes with data.
	OnSnapshot(snap Snapshot, manual bool)

	// OnRefreshFailed fires when a refresh cycle is discarded entirely.
	OnRefreshFailed(err error, manual bool)
}
