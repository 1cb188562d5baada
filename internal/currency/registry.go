package currency

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of known currencies.
type Registry struct {
	byCode map[string]*Currency
	order  []string // registration order, for stable listings
	mu     sync.RWMutex
}

// NewRegistry creates a new empty currency registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]*Currency),
	}
}

// Register adds a currency to the registry.
// Panics if a currency with the same code is already registered.
func (r *Registry) Register(c *Currency) {
	if c == nil {
		panic("currency: cannot register nil currency")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[c.Code()]; exists {
		panic(fmt.Sprintf("currency: %s already registered", c.Code()))
	}

	r.byCode[c.Code()] = c
	r.order = append(r.order, c.Code())
}

// Get retrieves a currency by its code.
func (r *Registry) Get(code string) (*Currency, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byCode[code]
	return c, ok
}

// MustGet retrieves a currency by its code, panics if not found.
func (r *Registry) MustGet(code string) *Currency {
	c, ok := r.Get(code)
	if !ok {
		panic(fmt.Sprintf("currency: %s not found in registry", code))
	}
	return c
}

// Fiats returns all registered fiat currencies in registration order.
func (r *Registry) Fiats() []*Currency {
	return r.filter(KindFiat)
}

// Stablecoins returns all registered stablecoins in registration order.
func (r *Registry) Stablecoins() []*Currency {
	return r.filter(KindStablecoin)
}

func (r *Registry) filter(kind Kind) []*Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Currency
	for _, code := range r.order {
		if c := r.byCode[code]; c.Kind() == kind {
			result = append(result, c)
		}
	}
	return result
}

// All returns all registered currencies in registration order.
func (r *Registry) All() []*Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Currency, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, r.byCode[code])
	}
	return result
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}

// Has returns true if a currency with the given code is registered.
func (r *Registry) Has(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCode[code]
	return ok
}
