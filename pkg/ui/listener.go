package ui

import (
	marketApp "github.com/p2ppro/p2p-calc/business/market/app"
)

// PollerListener forwards refresh lifecycle events from the poller goroutine
// into the Bubble Tea event loop.
type PollerListener struct{}

var _ marketApp.Listener = PollerListener{}

// OnRefreshStarted implements app.Listener.
func (PollerListener) OnRefreshStarted(manual bool) {
	Send(RefreshStartedMsg{Manual: manual})
}

// OnSnapshot implements app.Listener.
func (PollerListener) OnSnapshot(snap marketApp.Snapshot, manual bool) {
	Send(SnapshotMsg{Snapshot: snap, Manual: manual})
}

// OnRefreshFailed implements app.Listener.
func (PollerListener) OnRefreshFailed(err error, manual bool) {
	Send(RefreshFailedMsg{Err: err, Manual: manual})
}
