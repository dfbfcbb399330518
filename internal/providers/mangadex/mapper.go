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
	"encoding/json"
	"strconv"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"
	"Folio/pkg/util"

	"github.com/samber/lo"
)

const longStripTagID = "3e2b8dae-350e-4ab8-a8ce-016e844b9f0d"

// mapper turns raw catalog records into core entities. Every failure is a
// MalformedRecordError; callers decide whether to drop or propagate it.
type mapper struct {
	siteURL    string
	uploadsURL string
}

func (m mapper) manga(raw json.RawMessage, values prefs.Values) (core.Manga, error) {
	var record mangaRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return core.Manga{}, errors.Malformed(kindManga, "", "decode: %v", err)
	}
	if record.ID == "" {
		return core.Manga{}, errors.Malformed(kindManga, "", "missing id")
	}
	if record.Type != "" && record.Type != kindManga {
		return core.Manga{}, errors.Malformed(kindManga, record.ID, "unexpected type %q", record.Type)
	}
	attrs := record.Attributes
	if attrs == nil {
		return core.Manga{}, errors.Malformed(kindManga, record.ID, "missing attributes")
	}

	title := mangaTitle(attrs, values.Languages)
	if title == "" {
		return core.Manga{}, errors.Malformed(kindManga, record.ID, "missing title")
	}

	relations := relationsOf(record.ID, kindManga, record.Relationships)

	manga := core.Manga{
		ID:          record.ID,
		Title:       title,
		Description: attrs.Description.pick(values.Languages),
		Author:      relatedName(relations, relAuthor),
		Artist:      relatedName(relations, relArtist),
		Categories:  tagNames(attrs.Tags, values.Languages),
		Status:      core.ParseStatus(attrs.Status),
		Rating:      contentRating(attrs.ContentRating),
		Viewer:      readingDirection(attrs),
		URL:         m.siteURL + "/title/" + record.ID,
	}

	if cover, ok := firstRelated(relations, relCoverArt); ok && cover.Attributes != nil && cover.Attributes.FileName != "" {
		manga.Cover = m.coverURL(record.ID, cover.Attributes.FileName, values.CoverQuality)
	}

	return manga, nil
}

func (m mapper) coverURL(mangaID, fileName string, quality prefs.CoverQuality) string {
	url := m.uploadsURL + "/covers/" + mangaID + "/" + fileName
	switch quality {
	case prefs.CoverMedium:
		url += ".512.jpg"
	case prefs.CoverSmall:
		url += ".256.jpg"
	}
	return url
}

// chapter maps a chapter record and returns its relations alongside
func (m mapper) chapter(raw json.RawMessage) (core.Chapter, []relation, error) {
	var record chapterRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return core.Chapter{}, nil, errors.Malformed(kindChapter, "", "decode: %v", err)
	}
	if record.ID == "" {
		return core.Chapter{}, nil, errors.Malformed(kindChapter, "", "missing id")
	}
	attrs := record.Attributes
	if attrs == nil {
		return core.Chapter{}, nil, errors.Malformed(kindChapter, record.ID, "missing attributes")
	}
	if attrs.ExternalURL != nil && *attrs.ExternalURL != "" {
		return core.Chapter{}, nil, errors.Malformed(kindChapter, record.ID, "hosted externally at %s", *attrs.ExternalURL)
	}

	relations := relationsOf(record.ID, kindChapter, record.Relationships)

	chapter := core.Chapter{
		ID:        record.ID,
		Title:     lo.FromPtr(attrs.Title),
		Volume:    parseNumber(attrs.Volume),
		Number:    parseNumber(attrs.Chapter),
		Date:      util.EpochSeconds(attrs.PublishAt),
		Scanlator: scanlators(relations),
		URL:       m.siteURL + "/chapter/" + record.ID,
		Language:  attrs.TranslatedLanguage,
	}

	return chapter, relations, nil
}

// owners returns the manga a feed record belongs to
func (m mapper) owners(raw json.RawMessage) ([]string, error) {
	var record struct {
		ID            string               `json:"id"`
		Relationships []relationshipRecord `json:"relationships"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Malformed(kindChapter, "", "decode: %v", err)
	}
	relations := relationsOf(record.ID, kindChapter, record.Relationships)
	return lo.Map(allRelated(relations, relManga), func(r relation, _ int) string {
		return r.RelatedID
	}), nil
}

// mapEach maps every record, dropping and logging the ones that fail
func mapEach[T any](records []json.RawMessage, log logger.Logger, fn func(json.RawMessage) (T, error)) []T {
	out := make([]T, 0, len(records))
	for _, raw := range records {
		item, err := fn(raw)
		if err != nil {
			log.Warn("[MangaDex] Dropping record: %v", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

func mangaTitle(attrs *mangaAttributes, languages []string) string {
	for _, lang := range languages {
		if title, ok := attrs.Title.get(lang); ok {
			return title
		}
		for _, alt := range attrs.AltTitles {
			if title, ok := alt.get(lang); ok {
				return title
			}
		}
	}
	return attrs.Title.pick(nil)
}

func relatedName(relations []relation, kind string) string {
	r, ok := firstRelated(relations, kind)
	if !ok || r.Attributes == nil {
		return ""
	}
	return r.Attributes.Name
}

func scanlators(relations []relation) string {
	names := lo.FilterMap(allRelated(relations, relScanlationGroup), func(r relation, _ int) (string, bool) {
		if r.Attributes == nil {
			return "", false
		}
		return r.Attributes.Name, r.Attributes.Name != ""
	})
	return strings.Join(names, ", ")
}

func tagNames(tags []tagRecord, languages []string) []string {
	return lo.Uniq(lo.FilterMap(tags, func(tag tagRecord, _ int) (string, bool) {
		name := tag.Attributes.Name.pick(languages)
		return name, name != ""
	}))
}

func parseNumber(value *string) float64 {
	if value == nil {
		return core.MissingNumber
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return core.MissingNumber
	}
	return n
}

func contentRating(value string) core.ContentRating {
	switch strings.ToLower(value) {
	case "suggestive":
		return core.RatingSuggestive
	case "erotica", "pornographic":
		return core.RatingNSFW
	}
	return core.RatingSafe
}

func readingDirection(attrs *mangaAttributes) core.Viewer {
	for _, tag := range attrs.Tags {
		if name, _ := tag.Attributes.Name.get(defaultLanguageCode); tag.ID == longStripTagID || name == "Long Strip" {
			return core.ViewerVertical
		}
	}

	switch strings.ToLower(attrs.OriginalLanguage) {
	case "ja":
		return core.ViewerRightToLeft
	case "ko", "zh", "zh-hk":
		return core.ViewerVertical
	}
	return core.ViewerDefault
}
