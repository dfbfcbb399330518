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

package core

import "strings"

// FilterKind discriminates the Filter union. The zero value is
// FilterUnknown, which every provider skips.
type FilterKind int

const (
	FilterUnknown FilterKind = iota
	FilterText
	FilterAuthor
	FilterToggle
	FilterTag
	FilterSort
	FilterSelect
)

var filterKindNames = []string{"unknown", "text", "author", "toggle", "tag", "sort", "select"}

func (k FilterKind) String() string {
	if int(k) < 0 || int(k) >= len(filterKindNames) {
		return filterKindNames[0]
	}
	return filterKindNames[k]
}

func (k FilterKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText maps unrecognized names to FilterUnknown instead of failing
func (k *FilterKind) UnmarshalText(text []byte) error {
	*k = FilterUnknown
	name := strings.ToLower(string(text))
	for i, candidate := range filterKindNames {
		if candidate == name {
			*k = FilterKind(i)
		}
	}
	return nil
}

// Tri-state values used by toggle and tag filters
const (
	StateIgnored  = -1
	StateExcluded = 0
	StateIncluded = 1
)

// SortValue selects an ordering key by index and a direction
type SortValue struct {
	Index     int  `json:"index"`
	Ascending bool `json:"ascending"`
}

// Filter is one caller-supplied search predicate. Exactly one of the value
// fields is normally set; which one depends on Kind.
type Filter struct {
	Kind FilterKind `json:"kind"`
	Name string     `json:"name"`
	// ID carries the tag identifier for tag filters and the
	// "param=value" binding for toggle filters.
	ID   string     `json:"id,omitempty"`
	Text *string    `json:"text,omitempty"`
	Int  *int       `json:"int,omitempty"`
	Bool *bool      `json:"bool,omitempty"`
	Sort *SortValue `json:"sort,omitempty"`
}

// TextValue returns the string value, or "" when absent
func (f Filter) TextValue() string {
	if f.Text == nil {
		return ""
	}
	return *f.Text
}

// IntValue returns the integer value. Booleans count as 1/0.
// ok is false when no value was supplied.
func (f Filter) IntValue() (value int, ok bool) {
	switch {
	case f.Int != nil:
		return *f.Int, true
	case f.Bool != nil && *f.Bool:
		return 1, true
	case f.Bool != nil:
		return 0, true
	}
	return 0, false
}

// TextFilter builds a title search filter
func TextFilter(name, text string) Filter {
	return Filter{Kind: FilterText, Name: name, Text: &text}
}

// AuthorFilter builds an author search filter
func AuthorFilter(name, text string) Filter {
	return Filter{Kind: FilterAuthor, Name: name, Text: &text}
}

// ToggleFilter builds a tri-state check filter bound to a query parameter
func ToggleFilter(name, binding string, state int) Filter {
	return Filter{Kind: FilterToggle, Name: name, ID: binding, Int: &state}
}

// TagFilter builds a tag inclusion/exclusion filter
func TagFilter(name, tagID string, state int) Filter {
	return Filter{Kind: FilterTag, Name: name, ID: tagID, Int: &state}
}

// SortFilter builds an ordering filter
func SortFilter(name string, index int, ascending bool) Filter {
	return Filter{Kind: FilterSort, Name: name, Sort: &SortValue{Index: index, Ascending: ascending}}
}

// SelectFilter builds an enumerated choice filter
func SelectFilter(name string, index int) Filter {
	return Filter{Kind: FilterSelect, Name: name, Int: &index}
}

// FilterDefinition describes a filter a provider understands, so hosts can
// render controls for it.
type FilterDefinition struct {
	Kind       FilterKind `json:"kind"`
	Name       string     `json:"name"`
	Group      string     `json:"group,omitempty"`
	ID         string     `json:"id,omitempty"`
	Options    []string   `json:"options,omitempty"`
	CanExclude bool       `json:"can_exclude,omitempty"`
}
