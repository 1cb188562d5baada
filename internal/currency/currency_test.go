package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	if got := r.Count(); got != 9 {
		t.Errorf("Count() = %d, want 9", got)
	}

	fiats := r.Fiats()
	wantFiats := []string{"KGS", "RUB", "USD", "KZT", "EUR"}
	if len(fiats) != len(wantFiats) {
		t.Fatalf("Fiats() returned %d currencies, want %d", len(fiats), len(wantFiats))
	}
	for i, want := range wantFiats {
		if fiats[i].Code() != want {
			t.Errorf("Fiats()[%d] = %s, want %s", i, fiats[i].Code(), want)
		}
	}

	coins := r.Stablecoins()
	wantCoins := []string{"USDT", "USDC", "FDUSD", "DAI"}
	if len(coins) != len(wantCoins) {
		t.Fatalf("Stablecoins() returned %d currencies, want %d", len(coins), len(wantCoins))
	}
	for i, want := range wantCoins {
		if coins[i].Code() != want {
			t.Errorf("Stablecoins()[%d] = %s, want %s", i, coins[i].Code(), want)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r := DefaultRegistry()

	c, ok := r.Get("KGS")
	if !ok {
		t.Fatal("Get(KGS) not found")
	}
	if !c.IsFiat() {
		t.Error("KGS should be fiat")
	}
	if c.Name() != "Kyrgyzstani Som" {
		t.Errorf("Name() = %q", c.Name())
	}

	if _, ok := r.Get("BTC"); ok {
		t.Error("Get(BTC) found, want missing")
	}
}

func TestFormat(t *testing.T) {
	amount := decimal.RequireFromString("86.5")
	if got := KGS.Format(amount); got != "86.50 KGS" {
		t.Errorf("Format() = %q, want %q", got, "86.50 KGS")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	r := NewRegistry()
	r.Register(KGS)
	r.Register(KGS)
}
