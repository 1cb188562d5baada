package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/state"
)

// Refresh states. Only one refresh runs at a time; a manual request while
// any refresh is in flight is dropped.
const (
	stateIdle int32 = iota
	stateRefreshingManual
	stateRefreshingSilent
)

// Intervals are the supported auto-refresh periods. Zero disables the timer.
var Intervals = []time.Duration{
	0,
	30 * time.Second,
	time.Minute,
	3 * time.Minute,
	5 * time.Minute,
}

// DefaultInterval is the auto-refresh period used when nothing is persisted.
const DefaultInterval = 3 * time.Minute

// NextInterval returns the interval after current in ring order.
func NextInterval(current time.Duration) time.Duration {
	for i, d := range Intervals {
		if d == current {
			return Intervals[(i+1)%len(Intervals)]
		}
	}
	return DefaultInterval
}

// Poller drives periodic and manual market refreshes. The current selection
// is supplied by the owner (the UI) through a selection function.
type Poller struct {
	svc   *Service
	log   logger.LoggerInterface
	state *state.Store

	phase      atomic.Int32
	intervalCh chan time.Duration
	manualCh   chan struct{}
	silentCh   chan struct{}

	mu       sync.RWMutex
	interval time.Duration
	selFn    func() domain.Selection
	listener Listener
}

// NewPoller creates a Poller. The interval persisted in the state store wins
// over the configured default.
func NewPoller(log logger.LoggerInterface, svc *Service, st *state.Store, configured time.Duration) *Poller {
	interval := configured
	var persistedMs int64
	if st.Get(state.KeyRefreshInterval, &persistedMs) {
		restored := time.Duration(persistedMs) * time.Millisecond
		if validInterval(restored) {
			interval = restored
		}
	}
	if !validInterval(interval) {
		interval = DefaultInterval
	}

	return &Poller{
		svc:        svc,
		log:        log,
		state:      st,
		interval:   interval,
		intervalCh: make(chan time.Duration, 1),
		manualCh:   make(chan struct{}, 1),
		silentCh:   make(chan struct{}, 1),
	}
}

func validInterval(d time.Duration) bool {
	for _, v := range Intervals {
		if v == d {
			return true
		}
	}
	return false
}

// SetSelectionFn installs the supplier of the current market selection.
// Must be called before Run.
func (p *Poller) SetSelectionFn(fn func() domain.Selection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selFn = fn
}

// SetListener installs the refresh lifecycle listener.
func (p *Poller) SetListener(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = l
}

// Interval returns the current auto-refresh period.
func (p *Poller) Interval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.interval
}

// SetInterval switches the auto-refresh period, persists it, and reschedules
// the next tick. Unsupported values are ignored.
func (p *Poller) SetInterval(ctx context.Context, d time.Duration) {
	if !validInterval(d) {
		p.log.Warn(ctx, "ignoring unsupported refresh interval", "interval", d)
		return
	}

	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()

	if err := p.state.Set(state.KeyRefreshInterval, d.Milliseconds()); err != nil {
		p.log.Warn(ctx, "failed to persist refresh interval", "error", err)
	}

	// Wake the run loop; drop the signal if one is already pending.
	select {
	case p.intervalCh <- d:
	default:
	}

	p.log.Info(ctx, "refresh interval changed", "interval", d.String())
}

// RequestRefresh asks for a manual refresh. Returns false when a refresh is
// already in flight and the request was dropped.
func (p *Poller) RequestRefresh() bool {
	if p.phase.Load() != stateIdle {
		return false
	}
	select {
	case p.manualCh <- struct{}{}:
		return true
	default:
		return false
	}
}

// RequestSilentRefresh asks for a refresh with background semantics: the
// listener sees it as automatic, so no completion notice is surfaced. Used
// when the selection changes. Returns false when a refresh is already in
// flight and the request was dropped.
func (p *Poller) RequestSilentRefresh() bool {
	if p.phase.Load() != stateIdle {
		return false
	}
	select {
	case p.silentCh <- struct{}{}:
		return true
	default:
		return false
	}
}

// Refreshing reports whether a refresh cycle is currently in flight.
func (p *Poller) Refreshing() bool {
	return p.phase.Load() != stateIdle
}

// Run drives the refresh loop until the context ends. It performs one
// initial silent refresh so the UI has data immediately.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx, false)

	timer := time.NewTimer(p.tickAfter())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			p.refresh(ctx, false)
			timer.Reset(p.tickAfter())

		case <-p.manualCh:
			p.refresh(ctx, true)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.tickAfter())

		case <-p.silentCh:
			p.refresh(ctx, false)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.tickAfter())

		case <-p.intervalCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(p.tickAfter())
		}
	}
}

// tickAfter returns the wait before the next automatic refresh. A disabled
// interval parks the timer far in the future.
func (p *Poller) tickAfter() time.Duration {
	interval := p.Interval()
	if interval == 0 {
		return 365 * 24 * time.Hour
	}
	return interval
}

func (p *Poller) refresh(ctx context.Context, manual bool) {
	target := stateRefreshingSilent
	if manual {
		target = stateRefreshingManual
	}
	if !p.phase.CompareAndSwap(stateIdle, target) {
		return
	}
	defer p.phase.Store(stateIdle)

	p.mu.RLock()
	selFn := p.selFn
	listener := p.listener
	p.mu.RUnlock()

	if selFn == nil {
		p.log.Warn(ctx, "poller has no selection source, skipping refresh")
		return
	}
	sel := selFn()

	if listener != nil {
		listener.OnRefreshStarted(manual)
	}

	snap, err := p.svc.Refresh(ctx, sel)
	if err != nil {
		p.log.Warn(ctx, "refresh discarded", "manual", manual, "error", err)
		if listener != nil {
			listener.OnRefreshFailed(err, manual)
		}
		return
	}

	p.log.Debug(ctx, "refresh completed",
		"manual", manual,
		"source", string(snap.Rates.Source),
		"offers", len(snap.Offers))

	if listener != nil {
		listener.OnSnapshot(snap, manual)
	}
}
