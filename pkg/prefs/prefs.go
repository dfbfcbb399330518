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

// Package prefs holds the process-wide reader preferences. Values live in a
// gokv store so hosts can change them at any time; providers take a
// Snapshot at the start of each operation and never keep one across calls.
package prefs

import (
	"strings"
	"sync"

	"Folio/pkg/engine/logger"
	"Folio/pkg/util"

	"github.com/philippgille/gokv"
	"github.com/philippgille/gokv/syncmap"
)

// Store keys
const (
	KeyLanguages        = "languages"
	KeyDataSaver        = "dataSaver"
	KeyForcePort443     = "standardHttpsPort"
	KeyBlockedGroups    = "blockedGroups"
	KeyBlockedUploaders = "blockedUploaders"
	KeyCoverQuality     = "coverQuality"
)

// CoverQuality selects the cover image variant
type CoverQuality string

const (
	CoverOriginal CoverQuality = "original"
	CoverMedium   CoverQuality = "512"
	CoverSmall    CoverQuality = "256"
)

// Valid reports whether q is a known quality
func (q CoverQuality) Valid() bool {
	switch q {
	case CoverOriginal, CoverMedium, CoverSmall:
		return true
	}
	return false
}

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "en"

// Values is one consistent read of every preference
type Values struct {
	Languages        []string
	DataSaver        bool
	ForcePort443     bool
	BlockedGroups    []string
	BlockedUploaders []string
	CoverQuality     CoverQuality
}

// Defaults returns the values used for absent keys
func Defaults() Values {
	return Values{
		Languages:    []string{DefaultLanguage},
		CoverQuality: CoverOriginal,
	}
}

// Source hands out fresh preference snapshots
type Source interface {
	Snapshot() Values
}

// Static is a Source that always returns the same values
type Static Values

func (s Static) Snapshot() Values { return Values(s) }

// Store is a Source backed by a gokv.Store
type Store struct {
	store  gokv.Store
	logger logger.Logger
	mu     sync.Mutex
}

// NewStore wraps an existing gokv store. A nil store gets an in-memory one.
func NewStore(store gokv.Store, log logger.Logger) *Store {
	if store == nil {
		store = syncmap.NewStore(syncmap.DefaultOptions)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{store: store, logger: log}
}

// NewMemoryStore creates a Store on gokv's in-memory syncmap
func NewMemoryStore() *Store {
	return NewStore(nil, nil)
}

// SetLanguages replaces the preferred language list
func (s *Store) SetLanguages(languages []string) error {
	return s.set(KeyLanguages, strings.Join(languages, ","))
}

// SetDataSaver toggles the data-saver image variant
func (s *Store) SetDataSaver(enabled bool) error {
	return s.set(KeyDataSaver, enabled)
}

// SetForcePort443 toggles at-home servers on the standard HTTPS port
func (s *Store) SetForcePort443(enabled bool) error {
	return s.set(KeyForcePort443, enabled)
}

// SetBlockedGroups stores a comma separated list of scanlation group ids
func (s *Store) SetBlockedGroups(list string) error {
	return s.set(KeyBlockedGroups, list)
}

// SetBlockedUploaders stores a comma separated list of uploader ids
func (s *Store) SetBlockedUploaders(list string) error {
	return s.set(KeyBlockedUploaders, list)
}

// SetCoverQuality selects the cover variant
func (s *Store) SetCoverQuality(quality CoverQuality) error {
	return s.set(KeyCoverQuality, string(quality))
}

// Reset removes every key so defaults apply again
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{KeyLanguages, KeyDataSaver, KeyForcePort443, KeyBlockedGroups, KeyBlockedUploaders, KeyCoverQuality} {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying store
func (s *Store) Close() error {
	return s.store.Close()
}

// Snapshot reads every key. Missing or unreadable keys fall back to Defaults.
func (s *Store) Snapshot() Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := Defaults()

	if list, ok := s.getString(KeyLanguages); ok {
		if languages := util.ParseLanguageList(list); len(languages) > 0 {
			values.Languages = languages
		}
	}
	if enabled, ok := s.getBool(KeyDataSaver); ok {
		values.DataSaver = enabled
	}
	if enabled, ok := s.getBool(KeyForcePort443); ok {
		values.ForcePort443 = enabled
	}
	if list, ok := s.getString(KeyBlockedGroups); ok {
		values.BlockedGroups = util.SplitList(list)
	}
	if list, ok := s.getString(KeyBlockedUploaders); ok {
		values.BlockedUploaders = util.SplitList(list)
	}
	if quality, ok := s.getString(KeyCoverQuality); ok && CoverQuality(quality).Valid() {
		values.CoverQuality = CoverQuality(quality)
	}

	return values
}

func (s *Store) set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(key, value)
}

func (s *Store) getString(key string) (string, bool) {
	var value string
	found, err := s.store.Get(key, &value)
	if err != nil {
		s.logger.Warn("Failed to read preference %s: %v", key, err)
		return "", false
	}
	return value, found
}

func (s *Store) getBool(key string) (bool, bool) {
	var value bool
	found, err := s.store.Get(key, &value)
	if err != nil {
		s.logger.Warn("Failed to read preference %s: %v", key, err)
		return false, false
	}
	return value, found
}
