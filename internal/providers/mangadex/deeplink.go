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
	"net/url"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/errors"
)

type linkKind int

const (
	linkUnknown linkKind = iota
	linkTitle
	linkChapter
)

// classifyLink extracts the kind and id named by a site URL. Scheme and a
// leading "www." are optional; query and fragment are ignored.
func classifyLink(siteURL, raw string) (linkKind, string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return linkUnknown, "", "empty URL"
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	link, err := url.Parse(raw)
	if err != nil {
		return linkUnknown, "", "unparseable URL"
	}
	site, err := url.Parse(siteURL)
	if err != nil {
		return linkUnknown, "", "unparseable site URL"
	}

	if normalizeHost(link.Host) != normalizeHost(site.Host) {
		return linkUnknown, "", "foreign host " + link.Host
	}

	path := strings.TrimPrefix(link.Path, strings.TrimRight(site.Path, "/"))
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[1] == "" {
		return linkUnknown, "", "no identifier in path"
	}

	switch segments[0] {
	case "title":
		return linkTitle, segments[1], ""
	case "chapter":
		return linkChapter, segments[1], ""
	}
	return linkUnknown, "", "unrecognized path /" + segments[0]
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// HandleURL resolves a title or chapter link. A chapter link costs one
// chapter fetch plus one details fetch for its owning manga.
func (p *Provider) HandleURL(ctx context.Context, rawURL string) (*core.DeepLink, error) {
	kind, id, reason := classifyLink(p.siteURL, rawURL)

	switch kind {
	case linkTitle:
		manga, err := p.GetMangaDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return &core.DeepLink{Manga: manga}, nil

	case linkChapter:
		return p.resolveChapter(ctx, rawURL, id)
	}

	p.logger.Debug("[%s] Unsupported link %s: %s", ProviderName, rawURL, reason)
	return nil, &errors.UnsupportedLinkError{URL: rawURL, Reason: reason}
}

func (p *Provider) resolveChapter(ctx context.Context, rawURL, chapterID string) (*core.DeepLink, error) {
	var response entityResponse
	if err := p.fetcher.GetJSON(ctx, p.apiURL+"/chapter/"+url.PathEscape(chapterID), &response); err != nil {
		return nil, errors.Track(err).WithContext("chapter_id", chapterID).Error()
	}

	chapter, relations, err := p.mapper.chapter(response.Data)
	if err != nil {
		return nil, errors.Track(err).WithContext("chapter_id", chapterID).Error()
	}

	owner, ok := firstRelated(relations, relManga)
	if !ok {
		return nil, &errors.UnsupportedLinkError{URL: rawURL, Reason: "chapter has no owning manga"}
	}

	manga, err := p.GetMangaDetails(ctx, owner.RelatedID)
	if err != nil {
		return nil, err
	}

	return &core.DeepLink{Manga: manga, Chapter: &chapter}, nil
}
