// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/p2ppro/p2p-calc/internal/config"
	"github.com/p2ppro/p2p-calc/internal/currency"
	"github.com/p2ppro/p2p-calc/internal/di"
	"github.com/p2ppro/p2p-calc/internal/logger"
	"github.com/p2ppro/p2p-calc/internal/state"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	StateStore() *state.Store
	CurrencyRegistry() *currency.Registry
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config     *config.Config
	logger     logger.LoggerInterface
	stateStore *state.Store
	currencies *currency.Registry
	container  di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	stateDir := cfg.State.Dir
	if stateDir == "" {
		if userDir, err := os.UserConfigDir(); err == nil {
			stateDir = filepath.Join(userDir, cfg.App.Name)
		} else {
			stateDir = "."
		}
	}
	stateStore := state.NewStore(afero.NewOsFs(), stateDir, cfg.State.File)

	// Use default currency registry (pre-populated with supported currencies)
	currencies := currency.DefaultRegistry()

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("stateStore", stateStore)
	container.Register("currencyRegistry", currencies)

	return &app{
		config:     cfg,
		logger:     log,
		stateStore: stateStore,
		currencies: currencies,
		container:  container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) StateStore() *state.Store {
	return a.stateStore
}

func (a *app) CurrencyRegistry() *currency.Registry {
	return a.currencies
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	return nil
}
