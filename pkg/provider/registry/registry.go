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

// Package registry collects the catalog adapters compiled into the binary.
// Adapter packages call Register from init; cmd/folio blank-imports them and
// the engine instantiates every one of them through LoadAll at startup.
package registry

import (
	"sync"

	"Folio/pkg/engine"
	"Folio/pkg/provider"
)

// ProviderConstructor builds an adapter on top of the engine's shared
// fetcher, preference store and logger. It may return nil to opt out.
type ProviderConstructor func(*engine.Engine) provider.Provider

var (
	mu           sync.RWMutex
	constructors []ProviderConstructor
)

// Register queues an adapter for LoadAll
func Register(constructor ProviderConstructor) {
	mu.Lock()
	defer mu.Unlock()
	constructors = append(constructors, constructor)
}

// LoadAll instantiates every queued adapter and registers it with e.
// An adapter whose id is taken is logged and skipped; the rest still load.
func LoadAll(e *engine.Engine) error {
	for _, build := range queued() {
		p := build(e)
		if p == nil {
			continue
		}
		if err := e.RegisterProvider(p); err != nil {
			e.Logger.Warn("Skipping catalog adapter %s: %v", p.ID(), err)
		}
	}

	e.Logger.Info("Loaded %d catalog adapters", e.ProviderCount())
	return nil
}

func queued() []ProviderConstructor {
	mu.RLock()
	defer mu.RUnlock()
	return append([]ProviderConstructor(nil), constructors...)
}

// Clear drops every queued adapter
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	constructors = nil
}

// Count reports how many adapters are queued
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(constructors)
}
