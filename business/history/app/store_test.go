package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/state"
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

func testResult(t *testing.T, sellRate string) calcDomain.Result {
	t.Helper()
	r, err := calcDomain.Compute(calcDomain.Inputs{
		Investment: decimal.RequireFromString("100000"),
		BuyRate:    decimal.RequireFromString("86.50"),
		SellRate:   decimal.RequireFromString(sellRate),
		FeePercent: decimal.RequireFromString("0.1"),
		Exchange:   "Binance",
		Coin:       "USDT",
		Fiat:       "KGS",
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func newTestStore(max int) (*Store, *state.Store) {
	st := state.NewStore(afero.NewMemMapFs(), "data", "state.json")
	return NewStore(mockLogger{}, st, max), st
}

func TestAppendNewestFirst(t *testing.T) {
	store, _ := newTestStore(15)
	ctx := context.Background()

	first := store.Append(ctx, testResult(t, "87.00"))
	second := store.Append(ctx, testResult(t, "87.20"))

	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len = %d, want 2", len(entries))
	}
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Error("entries not in newest-first order")
	}
	if second.ID <= first.ID {
		t.Errorf("IDs not strictly increasing: %d then %d", first.ID, second.ID)
	}
}

func TestAppendIDsMonotonicWithFrozenClock(t *testing.T) {
	store, _ := newTestStore(15)
	frozen := time.UnixMilli(1700000000000)
	store.nowFn = func() time.Time { return frozen }

	ctx := context.Background()
	a := store.Append(ctx, testResult(t, "87.20"))
	b := store.Append(ctx, testResult(t, "87.20"))

	if b.ID != a.ID+1 {
		t.Errorf("second ID = %d, want %d", b.ID, a.ID+1)
	}
}

func TestAppendEvictsOldest(t *testing.T) {
	const max = 15
	store, _ := newTestStore(max)
	ctx := context.Background()

	var oldest int64
	for i := 0; i < max+3; i++ {
		e := store.Append(ctx, testResult(t, "87.20"))
		if i == 0 {
			oldest = e.ID
		}
	}

	if store.Len() != max {
		t.Fatalf("Len = %d, want %d", store.Len(), max)
	}
	if _, err := store.Restore(oldest); err == nil {
		t.Error("oldest entry still present after eviction")
	}
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(15)
	ctx := context.Background()

	e := store.Append(ctx, testResult(t, "87.20"))

	if !store.Remove(ctx, e.ID) {
		t.Error("Remove() = false, want true")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after remove, want 0", store.Len())
	}

	// Removing an unknown id is a no-op.
	if store.Remove(ctx, e.ID) {
		t.Error("Remove() of absent id = true, want false")
	}
}

func TestRestore(t *testing.T) {
	store, _ := newTestStore(15)
	ctx := context.Background()

	result := testResult(t, "87.20")
	e := store.Append(ctx, result)

	in, err := store.Restore(e.ID)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !in.SellRate.Equal(result.Inputs.SellRate) {
		t.Errorf("restored SellRate = %s, want %s", in.SellRate, result.Inputs.SellRate)
	}
	if in.Exchange != "Binance" || in.Coin != "USDT" || in.Fiat != "KGS" {
		t.Error("restored selector fields do not match")
	}

	_, err = store.Restore(e.ID + 999)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeHistoryEntryNotFound {
		t.Errorf("Restore() unknown id error = %v, want %s", err, apperror.CodeHistoryEntryNotFound)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	st := state.NewStore(afero.NewMemMapFs(), "data", "state.json")
	ctx := context.Background()

	store := NewStore(mockLogger{}, st, 15)
	e := store.Append(ctx, testResult(t, "87.20"))

	// A new store over the same state sees the persisted entries.
	reloaded := NewStore(mockLogger{}, st, 15)
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded Len = %d, want 1", reloaded.Len())
	}
	got := reloaded.Entries()[0]
	if got.ID != e.ID || !got.NetProfit.Equal(e.NetProfit) {
		t.Error("reloaded entry does not match persisted entry")
	}

	// New IDs stay above the persisted ones.
	next := reloaded.Append(ctx, testResult(t, "87.00"))
	if next.ID <= e.ID {
		t.Errorf("next ID = %d, want > %d", next.ID, e.ID)
	}
}

func TestLoadMalformedHistory(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := fmt.Sprintf(`{"%s": "definitely not a list"}`, state.KeyHistory)
	if err := afero.WriteFile(fs, "data/state.json", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	st := state.NewStore(fs, "data", "state.json")
	store := NewStore(mockLogger{}, st, 15)

	if store.Len() != 0 {
		t.Errorf("Len = %d for malformed history, want 0", store.Len())
	}
}
