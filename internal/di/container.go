// Package di provides a minimal service registry with typed tokens used to
// wire modules together at startup.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves registered services by token name.
type ServiceRegistry interface {
	// Get returns the service registered under name, or nil.
	Get(name string) any
}

// Container registers and resolves services.
type Container interface {
	ServiceRegistry

	// Register stores a ready-made service under the given name.
	Register(name string, service any)

	// RegisterFactory stores a lazy factory under the given name. The
	// factory runs at most once, on first Get.
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type entry struct {
	once     sync.Once
	instance any
	factory  func(ServiceRegistry) any
}

type container struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewContainer creates an empty Container.
func NewContainer() Container {
	return &container{entries: make(map[string]*entry)}
}

func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &entry{instance: service}
	e.once.Do(func() {})
	c.entries[name] = e
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry{factory: factory}
}

func (c *container) Get(name string) any {
	c.mu.RLock()
	e := c.entries[name]
	c.mu.RUnlock()

	if e == nil {
		return nil
	}

	e.once.Do(func() {
		if e.factory != nil {
			e.instance = e.factory(c)
		}
	})
	return e.instance
}

// Token is a typed handle for a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token with the given name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// String returns the token name.
func (t Token[T]) String() string {
	return t.name
}

// RegisterToken registers a lazy factory for the token's service.
func RegisterToken[T any](c Container, t Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(t.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves the token's service. It panics on a missing or mistyped
// registration, which indicates a wiring bug rather than a runtime condition.
func GetToken[T any](r ServiceRegistry, t Token[T]) T {
	svc := r.Get(t.name)
	if svc == nil {
		panic(fmt.Sprintf("di: service %q is not registered", t.name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has type %T, not the requested type", t.name, svc))
	}
	return typed
}
