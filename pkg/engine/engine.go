// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"Folio/pkg/config"
	"Folio/pkg/engine/logger"
	"Folio/pkg/engine/network"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"
	"Folio/pkg/provider"
)

// Engine is the central component providing services to providers
type Engine struct {
	Config  config.Config
	Network *network.HTTPService
	Limiter *network.RateLimiter
	Prefs   *prefs.Store
	Logger  logger.Logger

	// Provider registry
	providers     map[string]provider.Provider
	providerMutex sync.RWMutex

	debugMode bool
}

// DefaultLogFile returns ~/.folio/logs/folio.log, creating the directory
func DefaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	logDir := filepath.Join(homeDir, ".folio", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return ""
	}
	return filepath.Join(logDir, "folio.log")
}

// New creates an Engine from a validated configuration
func New(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = DefaultLogFile()
	}
	log := logger.NewService(logFile)

	store := prefs.NewStore(nil, log)
	if err := cfg.Apply(store); err != nil {
		return nil, errors.Track(err).WithMessage("Failed to seed preferences").AsConfig().Error()
	}

	return NewWithServices(cfg, log, store, nil)
}

// NewWithServices assembles an Engine from existing services. A nil clock
// uses the wall clock.
func NewWithServices(cfg config.Config, log logger.Logger, store *prefs.Store, clock network.Clock) (*Engine, error) {
	if log == nil {
		log = logger.Nop()
	}
	if store == nil {
		store = prefs.NewStore(nil, log)
	}

	limiter := network.NewRateLimiterWithClock(cfg.RateLimit.Requests, cfg.RateLimit.Period, clock)
	httpService, err := network.NewHTTPService(network.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Limiter:   limiter,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		Config:    cfg,
		Network:   httpService,
		Limiter:   limiter,
		Prefs:     store,
		Logger:    log,
		providers: make(map[string]provider.Provider),
	}

	log.Info("Engine initialized (rate budget %d per %s)", cfg.RateLimit.Requests, cfg.RateLimit.Period)
	return engine, nil
}

// RegisterProvider adds a provider to the registry
func (e *Engine) RegisterProvider(p provider.Provider) error {
	if p == nil {
		return errors.Track(fmt.Errorf("provider is nil")).Error()
	}

	e.providerMutex.Lock()
	defer e.providerMutex.Unlock()

	id := p.ID()
	if id == "" {
		return errors.Track(fmt.Errorf("provider has empty ID")).Error()
	}

	if _, exists := e.providers[id]; exists {
		return errors.Track(fmt.Errorf("provider with ID '%s' already registered", id)).Error()
	}

	e.providers[id] = p
	e.Logger.Info("Registered provider: %s (%s)", p.Name(), id)
	return nil
}

// GetProvider retrieves a registered provider by ID
func (e *Engine) GetProvider(id string) (provider.Provider, error) {
	e.providerMutex.RLock()
	defer e.providerMutex.RUnlock()

	p, exists := e.providers[id]
	if !exists {
		return nil, errors.Track(fmt.Errorf("provider '%s' not found: %w", id, errors.ErrNotFound)).
			WithContext("available_providers", e.getProviderIDs()).Error()
	}

	return p, nil
}

// AllProviders returns all registered providers sorted by ID
func (e *Engine) AllProviders() []provider.Provider {
	e.providerMutex.RLock()
	defer e.providerMutex.RUnlock()

	providers := make([]provider.Provider, 0, len(e.providers))
	for _, p := range e.providers {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].ID() < providers[j].ID() })
	return providers
}

// ProviderExists checks if a provider exists
func (e *Engine) ProviderExists(id string) bool {
	e.providerMutex.RLock()
	defer e.providerMutex.RUnlock()
	_, exists := e.providers[id]
	return exists
}

// ProviderCount returns the number of registered providers
func (e *Engine) ProviderCount() int {
	e.providerMutex.RLock()
	defer e.providerMutex.RUnlock()
	return len(e.providers)
}

// InitializeProviders initializes all registered providers
func (e *Engine) InitializeProviders(ctx context.Context) error {
	for _, p := range e.AllProviders() {
		if err := p.Initialize(ctx); err != nil {
			e.Logger.Error("Failed to initialize provider %s: %v", p.ID(), err)
		}
	}
	return nil
}

// Shutdown gracefully shuts down the engine
func (e *Engine) Shutdown() error {
	e.Logger.Info("Shutting down engine...")

	if err := e.Prefs.Close(); err != nil {
		e.Logger.Warn("Failed to close preference store: %v", err)
	}

	if closer, ok := e.Logger.(interface{ Close() error }); ok {
		return closer.Close()
	}

	return nil
}

// getProviderIDs returns a sorted list of all provider IDs
func (e *Engine) getProviderIDs() []string {
	ids := make([]string, 0, len(e.providers))
	for id := range e.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetDebugMode enables or disables debug mode for logging and error formatting
func (e *Engine) SetDebugMode(enabled bool) {
	e.debugMode = enabled
	if enabled {
		e.Logger.SetLevel(logger.LevelDebug)
		if loggerService, ok := e.Logger.(*logger.Service); ok {
			loggerService.SetConsoleOutput(true)
		}
		e.Logger.Debug("Debug mode enabled")
		return
	}

	e.Logger.SetLevel(logger.LevelInfo)
	if loggerService, ok := e.Logger.(*logger.Service); ok {
		loggerService.SetConsoleOutput(false)
	}
}

// DebugMode reports whether debug mode is on
func (e *Engine) DebugMode() bool {
	return e.debugMode
}

// FormatError formats an error based on the current verbosity settings
func (e *Engine) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if e.debugMode {
		return errors.FormatCLIDebug(err)
	}
	return errors.FormatCLI(err)
}
