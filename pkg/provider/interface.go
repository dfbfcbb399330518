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

package provider

import (
	"context"

	"Folio/pkg/core"
)

// Provider defines the interface all catalog providers must implement
type Provider interface {
	ID() string
	Name() string
	Description() string
	SiteURL() string

	Initialize(ctx context.Context) error

	// Listings returns the named listings the provider supports
	Listings() []core.Listing
	// Filters describes the filters GetMangaList understands
	Filters() []core.FilterDefinition

	GetMangaList(ctx context.Context, filters []core.Filter, page int) (*core.MangaPage, error)
	GetMangaListing(ctx context.Context, listing core.Listing, page int) (*core.MangaPage, error)
	GetMangaDetails(ctx context.Context, id string) (*core.Manga, error)
	GetChapterList(ctx context.Context, mangaID string) ([]core.Chapter, error)
	GetPageList(ctx context.Context, chapterID string) ([]core.Page, error)

	// HandleURL resolves an external link. Links the provider does not
	// recognize yield an UnsupportedLinkError.
	HandleURL(ctx context.Context, url string) (*core.DeepLink, error)
}
