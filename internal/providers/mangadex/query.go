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
	"strconv"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/util"
)

const (
	listingPageSize = 20
	feedPageSize    = 500
)

// Filter names with special handling
const (
	filterAvailableChapters = "Has available chapters"
	filterIncludedTagsMode  = "Included tags mode"
	filterExcludedTagsMode  = "Excluded tags mode"
)

// sortKeys is indexed by SortValue.Index
var sortKeys = []string{
	"latestUploadedChapter",
	"relevance",
	"followedCount",
	"createdAt",
	"updatedAt",
	"title",
}

// excludedParams maps a toggle parameter to its exclusion counterpart
var excludedParams = map[string]string{
	"originalLanguage": "excludedOriginalLanguage",
}

// offsetForPage converts a 1-based page number into an offset
func offsetForPage(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// hasMore reports whether another page exists after the one at offset
func hasMore(offset, pageSize, total int) bool {
	return offset+pageSize < total
}

// listingQuery translates filters into the query string of /manga.
// It never fails: filters it cannot encode are left out.
func listingQuery(filters []core.Filter, page int, languages []string) string {
	var q strings.Builder
	q.WriteString("includes[]=cover_art&limit=")
	q.WriteString(strconv.Itoa(listingPageSize))
	q.WriteString("&offset=")
	q.WriteString(strconv.Itoa(offsetForPage(page, listingPageSize)))

	decidedTags := make(map[string]bool)

	for _, filter := range filters {
		switch filter.Kind {
		case core.FilterText:
			writeText(&q, "title", filter.TextValue())
		case core.FilterAuthor:
			writeText(&q, "author", filter.TextValue())
		case core.FilterToggle:
			writeToggle(&q, filter, languages)
		case core.FilterTag:
			writeTag(&q, filter, decidedTags)
		case core.FilterSort:
			writeSort(&q, filter)
		case core.FilterSelect:
			writeSelect(&q, filter)
		}
	}

	return q.String()
}

func writeText(q *strings.Builder, param, text string) {
	if text == "" {
		return
	}
	q.WriteString("&" + param + "=")
	q.WriteString(util.PercentEscape(text))
}

func writeToggle(q *strings.Builder, filter core.Filter, languages []string) {
	state, ok := filter.IntValue()
	if !ok || state < 0 {
		return
	}

	if filter.ID == "" {
		if filter.Name == filterAvailableChapters && state == core.StateIncluded {
			q.WriteString("&hasAvailableChapters=true")
			for _, lang := range languages {
				q.WriteString("&availableTranslatedLanguage[]=" + lang)
			}
		}
		return
	}

	param, value, found := strings.Cut(filter.ID, "=")
	if !found || param == "" || value == "" {
		return
	}

	switch state {
	case core.StateIncluded:
		q.WriteString("&" + param + "[]=" + value)
	case core.StateExcluded:
		if excluded, ok := excludedParams[param]; ok {
			q.WriteString("&" + excluded + "[]=" + value)
		}
	}
}

func writeTag(q *strings.Builder, filter core.Filter, decided map[string]bool) {
	if filter.ID == "" || decided[filter.ID] {
		return
	}
	state, ok := filter.IntValue()
	if !ok {
		return
	}

	switch state {
	case core.StateIncluded:
		q.WriteString("&includedTags[]=" + filter.ID)
	case core.StateExcluded:
		q.WriteString("&excludedTags[]=" + filter.ID)
	default:
		return
	}
	decided[filter.ID] = true
}

func writeSort(q *strings.Builder, filter core.Filter) {
	if filter.Sort == nil || filter.Sort.Index < 0 || filter.Sort.Index >= len(sortKeys) {
		return
	}
	direction := "desc"
	if filter.Sort.Ascending {
		direction = "asc"
	}
	q.WriteString("&order[" + sortKeys[filter.Sort.Index] + "]=" + direction)
}

func writeSelect(q *strings.Builder, filter core.Filter) {
	value, ok := filter.IntValue()
	if !ok {
		value = -1
	}

	switch filter.Name {
	case filterIncludedTagsMode:
		q.WriteString("&includedTagsMode=" + tagMode(value, "AND"))
	case filterExcludedTagsMode:
		q.WriteString("&excludedTagsMode=" + tagMode(value, "OR"))
	}
}

func tagMode(value int, fallback string) string {
	switch value {
	case 0:
		return "AND"
	case 1:
		return "OR"
	}
	return fallback
}

// repeatParam appends one "&name[]=value" per value
func repeatParam(q *strings.Builder, name string, values []string) {
	for _, value := range values {
		q.WriteString("&" + name + "[]=" + value)
	}
}

// latestFeedQuery is the chapter feed query behind the Latest listing
func latestFeedQuery(offset int, languages []string) string {
	var q strings.Builder
	q.WriteString("includes[]=manga&order[publishAt]=desc&includeFutureUpdates=0&limit=")
	q.WriteString(strconv.Itoa(listingPageSize))
	q.WriteString("&offset=")
	q.WriteString(strconv.Itoa(offset))
	repeatParam(&q, "translatedLanguage", languages)
	return q.String()
}

// batchMangaQuery looks up a set of manga by id in one request
func batchMangaQuery(ids []string) string {
	var q strings.Builder
	q.WriteString("includes[]=cover_art&order[updatedAt]=desc")
	q.WriteString("&contentRating[]=erotica&contentRating[]=suggestive&contentRating[]=safe")
	q.WriteString("&limit=" + strconv.Itoa(len(ids)))
	repeatParam(&q, "ids", ids)
	return q.String()
}

// chapterFeedQuery is the per-manga chapter feed query. Pages after the
// first append their offset.
func chapterFeedQuery(languages, blockedGroups, blockedUploaders []string) string {
	var q strings.Builder
	q.WriteString("order[volume]=desc&order[chapter]=desc&limit=")
	q.WriteString(strconv.Itoa(feedPageSize))
	q.WriteString("&contentRating[]=pornographic&contentRating[]=erotica&contentRating[]=suggestive&contentRating[]=safe")
	q.WriteString("&includes[]=scanlation_group")
	repeatParam(&q, "translatedLanguage", languages)
	repeatParam(&q, "excludedGroups", trimmedNonEmpty(blockedGroups))
	repeatParam(&q, "excludedUploaders", trimmedNonEmpty(blockedUploaders))
	return q.String()
}

func trimmedNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
