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

// MissingNumber marks an absent chapter or volume number
const MissingNumber float64 = -1

// UnknownDate marks an absent publish timestamp
const UnknownDate float64 = -1

// Status is the publication lifecycle of a catalog entry
type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusHiatus
	StatusCancelled
)

var statusNames = []string{"unknown", "ongoing", "completed", "hiatus", "cancelled"}

func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return statusNames[0]
	}
	return statusNames[s]
}

// ParseStatus matches case-insensitively; anything else is StatusUnknown
func ParseStatus(value string) Status {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range statusNames {
		if name == value {
			return Status(i)
		}
	}
	return StatusUnknown
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// ContentRating is the maturity flag of a catalog entry
type ContentRating int

const (
	RatingSafe ContentRating = iota
	RatingSuggestive
	RatingNSFW
)

var ratingNames = []string{"safe", "suggestive", "nsfw"}

func (r ContentRating) String() string {
	if int(r) < 0 || int(r) >= len(ratingNames) {
		return ratingNames[0]
	}
	return ratingNames[r]
}

func (r ContentRating) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *ContentRating) UnmarshalText(text []byte) error {
	*r = RatingSafe
	for i, name := range ratingNames {
		if name == string(text) {
			*r = ContentRating(i)
		}
	}
	return nil
}

// Viewer is the reading-direction hint for a catalog entry
type Viewer int

const (
	ViewerDefault Viewer = iota
	ViewerRightToLeft
	ViewerLeftToRight
	ViewerVertical
	ViewerScroll
)

var viewerNames = []string{"default", "rtl", "ltr", "vertical", "scroll"}

func (v Viewer) String() string {
	if int(v) < 0 || int(v) >= len(viewerNames) {
		return viewerNames[0]
	}
	return viewerNames[v]
}

func (v Viewer) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Viewer) UnmarshalText(text []byte) error {
	*v = ViewerDefault
	for i, name := range viewerNames {
		if name == string(text) {
			*v = Viewer(i)
		}
	}
	return nil
}

// Manga is one catalog entry. Values are built once by a provider and
// never mutated afterwards.
type Manga struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Cover       string        `json:"cover,omitempty"`
	Author      string        `json:"author,omitempty"`
	Artist      string        `json:"artist,omitempty"`
	Description string        `json:"description,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	Status      Status        `json:"status"`
	Rating      ContentRating `json:"rating"`
	Viewer      Viewer        `json:"viewer"`
	URL         string        `json:"url,omitempty"`
}

// Chapter is one readable unit of a catalog entry
type Chapter struct {
	ID        string  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Volume    float64 `json:"volume"`  // MissingNumber when absent
	Number    float64 `json:"chapter"` // MissingNumber when absent
	Date      float64 `json:"date"`    // epoch seconds, UnknownDate when absent
	Scanlator string  `json:"scanlator,omitempty"`
	URL       string  `json:"url,omitempty"`
	Language  string  `json:"lang,omitempty"`
}

// Page is one image of a chapter. Indexes are 0-based and contiguous.
type Page struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// MangaPage is one page of a catalog listing
type MangaPage struct {
	Manga   []Manga `json:"manga"`
	HasMore bool    `json:"has_more"`
}

// Listing is a named, provider-defined listing such as "Popular"
type Listing struct {
	Name string `json:"name"`
}

// DeepLink is the result of resolving an external URL
type DeepLink struct {
	Manga   *Manga   `json:"manga,omitempty"`
	Chapter *Chapter `json:"chapter,omitempty"`
}
