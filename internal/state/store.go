// Package state persists small key/value application state as a JSON file.
package state

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/p2ppro/p2p-calc/internal/apperror"
)

// Well-known state keys.
const (
	KeyTheme           = "theme"
	KeyRefreshInterval = "refresh_interval_ms"
	KeyHistory         = "history"
)

// Store reads and writes namespaced JSON values backed by a single file.
// A missing or malformed file behaves as an empty store.
type Store struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewStore creates a Store over fs at dir/file.
func NewStore(fs afero.Fs, dir, file string) *Store {
	return &Store{
		fs:   fs,
		path: filepath.Join(dir, file),
	}
}

// Get unmarshals the value stored under key into out. It returns false when
// the key is absent or its value cannot be decoded into out.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.read()
	raw, ok := data[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

// Set stores value under key and rewrites the backing file.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return apperror.Internal(apperror.CodeStateWriteFailed, key, err)
	}

	data := s.read()
	data[key] = raw
	return s.write(data)
}

// Delete removes key and rewrites the backing file. Deleting an absent key
// is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.read()
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.write(data)
}

// read loads the backing file. Corrupt or unreadable content degrades to an
// empty map so one bad write never bricks the application.
func (s *Store) read() map[string]json.RawMessage {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return make(map[string]json.RawMessage)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return make(map[string]json.RawMessage)
	}
	return data
}

func (s *Store) write(data map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return apperror.Internal(apperror.CodeStateWriteFailed, s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return apperror.Internal(apperror.CodeStateWriteFailed, s.path, err)
		}
	}

	if err := afero.WriteFile(s.fs, s.path, raw, 0o644); err != nil {
		return apperror.Internal(apperror.CodeStateWriteFailed, s.path, err)
	}
	return nil
}
