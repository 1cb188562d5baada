// Package app contains application services for the history context.
package app

import (
	"context"
	"strconv"
	"sync"
	"time"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/history/domain"
	"github.com/p2ppro/p2p-calc/internal/apperror"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/state"
)

// Store keeps a bounded, newest-first list of saved calculations, persisted
// through the state store. A corrupt persisted list degrades to empty.
type Store struct {
	log   logger.LoggerInterface
	state *state.Store
	max   int
	nowFn func() time.Time

	mu      sync.RWMutex
	entries []domain.Entry
	lastID  int64
}

// NewStore creates a Store capped at max entries and loads any persisted
// history.
func NewStore(log logger.LoggerInterface, st *state.Store, max int) *Store {
	s := &Store{
		log:   log,
		state: st,
		max:   max,
		nowFn: time.Now,
	}
	s.load()
	return s
}

func (s *Store) load() {
	var entries []domain.Entry
	if !s.state.Get(state.KeyHistory, &entries) {
		return
	}

	if len(entries) > s.max {
		entries = entries[:s.max]
	}

	s.entries = entries
	for _, e := range entries {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
}

// Append saves a calculation at the head of the list, evicting the oldest
// entry when the cap is reached. IDs are derived from the wall clock and
// kept strictly increasing.
func (s *Store) Append(ctx context.Context, r calcDomain.Result) domain.Entry {
	s.mu.Lock()

	now := s.nowFn()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry := domain.NewEntry(id, now, r)
	s.entries = append([]domain.Entry{entry}, s.entries...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}

	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return entry
}

// Remove deletes the entry with the given id. Removing an unknown id is a
// no-op and returns false.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// Restore returns the calculator inputs of the entry with the given id.
func (s *Store) Restore(id int64) (calcDomain.Inputs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Inputs(), nil
		}
	}
	return calcDomain.Inputs{}, apperror.NotFound(
		apperror.CodeHistoryEntryNotFound, strconv.FormatInt(id, 10))
}

// Entries returns a newest-first snapshot of the saved calculations.
func (s *Store) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of saved calculations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) snapshotLocked() []domain.Entry {
	snapshot := make([]domain.Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

func (s *Store) persist(ctx context.Context, entries []domain.Entry) {
	if err := s.state.Set(state.KeyHistory, entries); err != nil {
		s.log.Warn(ctx, "failed to persist history", "error", err)
	}
}
