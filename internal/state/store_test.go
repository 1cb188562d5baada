package state

import (
	"testing"

	"github.com/spf13/afero"
)

func TestStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "data", "state.json")

	if err := store.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(KeyRefreshInterval, int64(180000)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var theme string
	if !store.Get(KeyTheme, &theme) {
		t.Fatal("Get(theme) = false, want true")
	}
	if theme != "dark" {
		t.Errorf("theme = %q, want %q", theme, "dark")
	}

	var interval int64
	if !store.Get(KeyRefreshInterval, &interval) {
		t.Fatal("Get(refresh_interval_ms) = false, want true")
	}
	if interval != 180000 {
		t.Errorf("interval = %d, want 180000", interval)
	}
}

func TestStoreMissingKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "data", "state.json")

	var theme string
	if store.Get(KeyTheme, &theme) {
		t.Error("Get() on empty store = true, want false")
	}
}

func TestStoreMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "data/state.json", []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(fs, "data", "state.json")

	var theme string
	if store.Get(KeyTheme, &theme) {
		t.Error("Get() on malformed file = true, want false")
	}

	// A malformed file is recoverable: the next Set rewrites it.
	if err := store.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set() after malformed file error = %v", err)
	}
	if !store.Get(KeyTheme, &theme) || theme != "light" {
		t.Errorf("theme after rewrite = %q, want %q", theme, "light")
	}
}

func TestStoreMismatchedType(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "data", "state.json")

	if err := store.Set(KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}

	var interval int64
	if store.Get(KeyTheme, &interval) {
		t.Error("Get() with mismatched type = true, want false")
	}
}

func TestStoreDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "data", "state.json")

	if err := store.Set(KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var theme string
	if store.Get(KeyTheme, &theme) {
		t.Error("Get() after Delete = true, want false")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete(KeyTheme); err != nil {
		t.Errorf("Delete() absent key error = %v", err)
	}
}
