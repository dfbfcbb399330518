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

package mangadex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/engine"
	"Folio/pkg/engine/logger"
	"Folio/pkg/engine/network"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"
	"Folio/pkg/provider"
	"Folio/pkg/provider/registry"
)

// Provider identity
const (
	ProviderID          = "mgd"
	ProviderName        = "MangaDex"
	ProviderDescription = "World's largest manga community and scanlation site"
)

// Named listings
const (
	ListingLatest  = "Latest"
	ListingPopular = "Popular"
)

func init() {
	registry.Register(NewFromEngine)
}

// Options configures a Provider
type Options struct {
	Fetcher    network.Fetcher
	Prefs      prefs.Source
	Logger     logger.Logger
	APIURL     string
	SiteURL    string
	UploadsURL string
}

// Provider is the MangaDex catalog adapter
type Provider struct {
	fetcher network.Fetcher
	prefs   prefs.Source
	logger  logger.Logger
	apiURL  string
	siteURL string
	mapper  mapper
}

// New creates a Provider. Empty URLs fall back to the public endpoints.
func New(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.Static(prefs.Defaults())
	}
	apiURL := baseURL(opts.APIURL, "https://api.mangadex.org")
	siteURL := baseURL(opts.SiteURL, "https://mangadex.org")
	uploadsURL := baseURL(opts.UploadsURL, "https://uploads.mangadex.org")

	return &Provider{
		fetcher: opts.Fetcher,
		prefs:   opts.Prefs,
		logger:  opts.Logger,
		apiURL:  apiURL,
		siteURL: siteURL,
		mapper: mapper{
			siteURL:    siteURL,
			uploadsURL: uploadsURL,
		},
	}
}

// NewFromEngine wires a Provider to the engine's shared services
func NewFromEngine(e *engine.Engine) provider.Provider {
	return New(Options{
		Fetcher:    e.Network,
		Prefs:      e.Prefs,
		Logger:     e.Logger,
		APIURL:     e.Config.APIURL,
		SiteURL:    e.Config.SiteURL,
		UploadsURL: e.Config.UploadsURL,
	})
}

func baseURL(value, fallback string) string {
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}

func (p *Provider) ID() string          { return ProviderID }
func (p *Provider) Name() string        { return ProviderName }
func (p *Provider) Description() string { return ProviderDescription }
func (p *Provider) SiteURL() string     { return p.siteURL }

// Initialize checks that the provider has a fetcher
func (p *Provider) Initialize(ctx context.Context) error {
	if p.fetcher == nil {
		return errors.Track(&errors.ConfigurationError{Key: "fetcher", Err: fmt.Errorf("no fetcher configured")}).
			AsProvider(ProviderID).
			Error()
	}
	p.logger.Info("[%s] Initialized against %s", ProviderName, p.apiURL)
	return nil
}

// Listings returns the named listings this provider supports
func (p *Provider) Listings() []core.Listing {
	return []core.Listing{{Name: ListingLatest}, {Name: ListingPopular}}
}

// GetMangaList returns one page of the catalog narrowed by filters
func (p *Provider) GetMangaList(ctx context.Context, filters []core.Filter, page int) (*core.MangaPage, error) {
	values := p.prefs.Snapshot()
	requestURL := p.apiURL + "/manga?" + listingQuery(filters, page, values.Languages)

	var response collectionResponse
	if err := p.fetcher.GetJSON(ctx, requestURL, &response); err != nil {
		return nil, errors.Track(err).WithContext("page", page).Error()
	}

	offset := offsetForPage(page, listingPageSize)
	return &core.MangaPage{
		Manga:   p.mapManga(response.Data, values),
		HasMore: hasMore(offset, listingPageSize, response.Total),
	}, nil
}

// GetMangaListing returns one page of a named listing. Unknown names get
// the unfiltered catalog.
func (p *Provider) GetMangaListing(ctx context.Context, listing core.Listing, page int) (*core.MangaPage, error) {
	switch listing.Name {
	case ListingPopular:
		return p.GetMangaList(ctx, []core.Filter{core.SortFilter("Sort", 2, false)}, page)
	case ListingLatest:
		return p.latest(ctx, page)
	}
	return p.GetMangaList(ctx, nil, page)
}

// latest walks one page of the global chapter feed, then resolves the
// distinct owning manga with a single batched lookup.
func (p *Provider) latest(ctx context.Context, page int) (*core.MangaPage, error) {
	values := p.prefs.Snapshot()
	offset := offsetForPage(page, listingPageSize)

	feed, err := collect(ctx, p.fetcher, collectOptions{
		PageSize: listingPageSize,
		Offset:   offset,
		MaxPages: 1,
	}, func(o int) string {
		return p.apiURL + "/chapter?" + latestFeedQuery(o, values.Languages)
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("listing", ListingLatest).Error()
	}

	result := &core.MangaPage{
		Manga:   []core.Manga{},
		HasMore: hasMore(offset, listingPageSize, feed.Total),
	}

	ids := p.distinctOwners(feed.Records)
	if len(ids) == 0 {
		return result, nil
	}

	var response collectionResponse
	if err := p.fetcher.GetJSON(ctx, p.apiURL+"/manga?"+batchMangaQuery(ids), &response); err != nil {
		return nil, errors.Track(err).WithContext("listing", ListingLatest).Error()
	}

	result.Manga = p.mapManga(response.Data, values)
	return result, nil
}

// GetMangaDetails fetches one manga with its cover, author and artist
func (p *Provider) GetMangaDetails(ctx context.Context, id string) (*core.Manga, error) {
	if id == "" {
		return nil, errors.Track(errors.ErrInvalidInput).WithMessage("Manga ID is empty").AsValidation().Error()
	}

	values := p.prefs.Snapshot()
	requestURL := p.apiURL + "/manga/" + url.PathEscape(id) + "?includes[]=cover_art&includes[]=author&includes[]=artist"

	var response entityResponse
	if err := p.fetcher.GetJSON(ctx, requestURL, &response); err != nil {
		return nil, errors.Track(err).WithContext("manga_id", id).Error()
	}

	manga, err := p.mapper.manga(response.Data, values)
	if err != nil {
		return nil, errors.Track(err).WithContext("manga_id", id).AsParser().Error()
	}
	return &manga, nil
}

// GetChapterList returns every chapter of a manga in feed order
// (volume, then chapter, descending).
func (p *Provider) GetChapterList(ctx context.Context, mangaID string) ([]core.Chapter, error) {
	if mangaID == "" {
		return nil, errors.Track(errors.ErrInvalidInput).WithMessage("Manga ID is empty").AsValidation().Error()
	}

	values := p.prefs.Snapshot()
	base := p.apiURL + "/manga/" + url.PathEscape(mangaID) + "/feed?" +
		chapterFeedQuery(values.Languages, values.BlockedGroups, values.BlockedUploaders)

	feed, err := collect(ctx, p.fetcher, collectOptions{PageSize: feedPageSize}, func(offset int) string {
		if offset == 0 {
			return base
		}
		return base + "&offset=" + strconv.Itoa(offset)
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("manga_id", mangaID).Error()
	}

	chapters := mapEach(feed.Records, p.logger, func(raw json.RawMessage) (core.Chapter, error) {
		chapter, _, err := p.mapper.chapter(raw)
		return chapter, err
	})
	p.logger.Debug("[%s] %d of %d chapters mapped for %s in %d requests", ProviderName, len(chapters), feed.Total, mangaID, len(feed.Offsets))
	return chapters, nil
}

// GetPageList resolves the image URLs of one chapter through the at-home
// network. Data-saver and port preferences are read per call.
func (p *Provider) GetPageList(ctx context.Context, chapterID string) ([]core.Page, error) {
	if chapterID == "" {
		return nil, errors.Track(errors.ErrInvalidInput).WithMessage("Chapter ID is empty").AsValidation().Error()
	}

	values := p.prefs.Snapshot()
	requestURL := p.apiURL + "/at-home/server/" + url.PathEscape(chapterID)
	if values.ForcePort443 {
		requestURL += "?forcePort443=true"
	}

	var response atHomeResponse
	if err := p.fetcher.GetJSON(ctx, requestURL, &response); err != nil {
		return nil, errors.Track(err).WithContext("chapter_id", chapterID).Error()
	}

	if response.BaseURL == "" || response.Chapter == nil || response.Chapter.Hash == "" {
		return nil, errors.Track(errors.Malformed("at-home", chapterID, "missing base URL or hash")).
			WithContext("chapter_id", chapterID).
			AsParser().
			Error()
	}

	files, segment := response.Chapter.Data, "/data/"
	if values.DataSaver {
		files, segment = response.Chapter.DataSaver, "/data-saver/"
	}

	pages := make([]core.Page, len(files))
	for i, file := range files {
		pages[i] = core.Page{
			Index: i,
			URL:   response.BaseURL + segment + response.Chapter.Hash + "/" + file,
		}
	}
	return pages, nil
}

func (p *Provider) mapManga(records []json.RawMessage, values prefs.Values) []core.Manga {
	return mapEach(records, p.logger, func(raw json.RawMessage) (core.Manga, error) {
		return p.mapper.manga(raw, values)
	})
}
