package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/logger"
)

// Calculator owns the current inputs and the last valid result.
// Invalid input never clobbers the previous result: callers get the
// validation error and the display keeps showing the last good numbers.
type Calculator struct {
	log   logger.LoggerInterface
	share ShareSurface

	mu        sync.RWMutex
	inputs    domain.Inputs
	result    domain.Result
	listeners []ResultListener
}

// NewCalculator creates a Calculator seeded with the given inputs.
// The seed inputs must be valid.
func NewCalculator(log logger.LoggerInterface, share ShareSurface, seed domain.Inputs) (*Calculator, error) {
	result, err := domain.Compute(seed)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		log:    log,
		share:  share,
		inputs: seed,
		result: result,
	}, nil
}

// Subscribe registers a listener for new results. Listeners are invoked
// synchronously on the goroutine that triggered the recalculation.
func (c *Calculator) Subscribe(l ResultListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SetInputs validates and applies new inputs, returning the fresh result.
// On validation failure the previous inputs and result are kept.
func (c *Calculator) SetInputs(ctx context.Context, in domain.Inputs) (domain.Result, error) {
	result, err := domain.Compute(in)
	if err != nil {
		c.log.Debug(ctx, "rejected calculator inputs", "error", err)
		return c.Result(), err
	}

	c.mu.Lock()
	c.inputs = in
	c.result = result
	listeners := make([]ResultListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(result)
	}

	return result, nil
}

// Inputs returns the current inputs.
func (c *Calculator) Inputs() domain.Inputs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputs
}

// Result returns the last valid result.
func (c *Calculator) Result() domain.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// ShareText renders the current result as a plain-text summary suitable for
// pasting into a chat.
func (c *Calculator) ShareText() string {
	r := c.Result()
	in := r.Inputs

	var sb strings.Builder
	fmt.Fprintf(&sb, "P2P Arbitrage (%s, %s/%s)\n", in.Exchange, in.Coin, in.Fiat)
	fmt.Fprintf(&sb, "Investment: %s %s\n", in.Investment.StringFixed(2), in.Fiat)
	fmt.Fprintf(&sb, "Buy @ %s / Sell @ %s (fee %s%%)\n",
		in.BuyRate.StringFixed(2), in.SellRate.StringFixed(2), in.FeePercent.String())
	fmt.Fprintf(&sb, "Net profit: %s %s (ROI %s%%, spread %s%%) [%s]",
		r.NetProfit.StringFixed(2), in.Fiat,
		r.ROIPercent.StringFixed(2), r.SpreadPercent.StringFixed(2), r.Tier)
	return sb.String()
}

// Share copies the current result summary to the share surface.
func (c *Calculator) Share(ctx context.Context) error {
	text := c.ShareText()
	if err := c.share.Copy(text); err != nil {
		c.log.Warn(ctx, "share failed", "error", err)
		return apperror.Wrap(err, apperror.CodeClipboardFailed, "share")
	}

	c.log.Debug(ctx, "shared calculation summary", "bytes", len(text))
	return nil
}
