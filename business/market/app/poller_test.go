package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/p2ppro/p2p-calc/internal/state"
)

// countingListener tallies refresh lifecycle events and records the manual
// flag of each snapshot.
type countingListener struct {
	mu        sync.Mutex
	started   int
	snapshots int
	failed    int
	manuals   []bool
}

func (l *countingListener) OnRefreshStarted(manual bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started++
}

func (l *countingListener) OnSnapshot(snap Snapshot, manual bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots++
	l.manuals = append(l.manuals, manual)
}

func (l *countingListener) OnRefreshFailed(err error, manual bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed++
}

func (l *countingListener) counts() (int, int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started, l.snapshots, l.failed
}

func (l *countingListener) snapshotManuals() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.manuals...)
}

func newTestPoller(t *testing.T, provider DataProvider, interval time.Duration) (*Poller, *state.Store, *countingListener) {
	t.Helper()

	svc, err := NewService(provider, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	st := state.NewStore(afero.NewMemMapFs(), "data", "state.json")
	poller := NewPoller(mockLogger{}, svc, st, interval)
	poller.SetSelectionFn(kgsSelection)

	listener := &countingListener{}
	poller.SetListener(listener)

	return poller, st, listener
}

func TestNextInterval(t *testing.T) {
	tests := []struct {
		current time.Duration
		want    time.Duration
	}{
		{0, 30 * time.Second},
		{30 * time.Second, time.Minute},
		{time.Minute, 3 * time.Minute},
		{3 * time.Minute, 5 * time.Minute},
		{5 * time.Minute, 0},
		{42 * time.Second, DefaultInterval}, // unknown resets to default
	}

	for _, tt := range tests {
		if got := NextInterval(tt.current); got != tt.want {
			t.Errorf("NextInterval(%s) = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestPollerRestoresPersistedInterval(t *testing.T) {
	st := state.NewStore(afero.NewMemMapFs(), "data", "state.json")
	if err := st.Set(state.KeyRefreshInterval, (30 * time.Second).Milliseconds()); err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(&stubProvider{rates: liveRates()}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	poller := NewPoller(mockLogger{}, svc, st, DefaultInterval)
	if poller.Interval() != 30*time.Second {
		t.Errorf("Interval = %s, want persisted 30s", poller.Interval())
	}
}

func TestPollerIgnoresCorruptPersistedInterval(t *testing.T) {
	st := state.NewStore(afero.NewMemMapFs(), "data", "state.json")
	if err := st.Set(state.KeyRefreshInterval, int64(12345)); err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(&stubProvider{rates: liveRates()}, mockLogger{})
	if err != nil {
		t.Fatal(err)
	}

	poller := NewPoller(mockLogger{}, svc, st, DefaultInterval)
	if poller.Interval() != DefaultInterval {
		t.Errorf("Interval = %s, want default", poller.Interval())
	}
}

func TestSetIntervalPersists(t *testing.T) {
	poller, st, _ := newTestPoller(t, &stubProvider{rates: liveRates()}, DefaultInterval)

	poller.SetInterval(context.Background(), time.Minute)

	var ms int64
	if !st.Get(state.KeyRefreshInterval, &ms) {
		t.Fatal("interval not persisted")
	}
	if ms != time.Minute.Milliseconds() {
		t.Errorf("persisted %d ms, want %d", ms, time.Minute.Milliseconds())
	}

	// Unsupported values are ignored.
	poller.SetInterval(context.Background(), 42*time.Second)
	if poller.Interval() != time.Minute {
		t.Errorf("Interval = %s after unsupported value, want 1m", poller.Interval())
	}
}

func TestDisabledIntervalOnlyRefreshesOnce(t *testing.T) {
	poller, _, listener := newTestPoller(t, &stubProvider{rates: liveRates()}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	// Give the loop time to do the initial refresh and, if the disabled
	// interval were broken, several more.
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	started, snapshots, failed := listener.counts()
	if started != 1 || snapshots != 1 {
		t.Errorf("started=%d snapshots=%d, want exactly the initial refresh", started, snapshots)
	}
	if failed != 0 {
		t.Errorf("failed=%d, want 0", failed)
	}
}

func TestSilentRefreshStaysSilent(t *testing.T) {
	poller, _, listener := newTestPoller(t, &stubProvider{rates: liveRates()}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	waitForSnapshots := func(n int) {
		t.Helper()
		deadline := time.After(time.Second)
		for {
			_, snapshots, _ := listener.counts()
			if snapshots >= n {
				return
			}
			select {
			case <-deadline:
				t.Fatalf("never reached %d snapshots", n)
			case <-time.After(5 * time.Millisecond):
			}
		}
	}

	// Initial refresh, then a silent request (a selection change), then a
	// manual one.
	waitForSnapshots(1)
	if !poller.RequestSilentRefresh() {
		t.Fatal("RequestSilentRefresh() = false while idle, want true")
	}
	waitForSnapshots(2)
	if !poller.RequestRefresh() {
		t.Fatal("RequestRefresh() = false while idle, want true")
	}
	waitForSnapshots(3)

	cancel()
	<-done

	manuals := listener.snapshotManuals()
	want := []bool{false, false, true}
	if len(manuals) != len(want) {
		t.Fatalf("snapshot manual flags = %v, want %v", manuals, want)
	}
	for i := range want {
		if manuals[i] != want[i] {
			t.Errorf("snapshot %d manual = %t, want %t", i, manuals[i], want[i])
		}
	}
}

func TestManualRefreshDroppedWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	provider := &stubProvider{rates: liveRates(), block: block}
	poller, _, listener := newTestPoller(t, provider, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	// Wait for the initial refresh to be in flight.
	deadline := time.After(time.Second)
	for !poller.Refreshing() {
		select {
		case <-deadline:
			t.Fatal("refresh never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if poller.RequestRefresh() {
		t.Error("RequestRefresh() = true while in flight, want false")
	}

	close(block)

	// After the cycle finishes a manual request is accepted.
	deadline = time.After(time.Second)
	for poller.Refreshing() {
		select {
		case <-deadline:
			t.Fatal("refresh never finished")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if !poller.RequestRefresh() {
		t.Error("RequestRefresh() = false while idle, want true")
	}

	// Let the manual refresh complete.
	deadline = time.After(time.Second)
	for {
		_, snapshots, _ := listener.counts()
		if snapshots >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("manual refresh never completed")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
