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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Relationship types used by the catalog API
const (
	relManga            = "manga"
	relAuthor           = "author"
	relArtist           = "artist"
	relCoverArt         = "cover_art"
	relScanlationGroup  = "scanlation_group"
	kindManga           = "manga"
	kindChapter         = "chapter"
	defaultLanguageCode = "en"
)

// collectionResponse is the {data, total} envelope of list endpoints.
// Records stay raw so each one can be mapped, and dropped, on its own.
type collectionResponse struct {
	Result string            `json:"result"`
	Data   []json.RawMessage `json:"data"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
}

// entityResponse is the {data} envelope of single-record endpoints
type entityResponse struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data"`
}

type mangaRecord struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	Attributes    *mangaAttributes     `json:"attributes"`
	Relationships []relationshipRecord `json:"relationships"`
}

type mangaAttributes struct {
	Title            localizedString   `json:"title"`
	AltTitles        []localizedString `json:"altTitles"`
	Description      localizedString   `json:"description"`
	OriginalLanguage string            `json:"originalLanguage"`
	Status           string            `json:"status"`
	ContentRating    string            `json:"contentRating"`
	Tags             []tagRecord       `json:"tags"`
}

type tagRecord struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name  localizedString `json:"name"`
		Group string          `json:"group"`
	} `json:"attributes"`
}

type chapterRecord struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	Attributes    *chapterAttributes   `json:"attributes"`
	Relationships []relationshipRecord `json:"relationships"`
}

type chapterAttributes struct {
	Title              *string `json:"title"`
	Volume             *string `json:"volume"`
	Chapter            *string `json:"chapter"`
	PublishAt          string  `json:"publishAt"`
	TranslatedLanguage string  `json:"translatedLanguage"`
	ExternalURL        *string `json:"externalUrl"`
	Pages              int     `json:"pages"`
}

// relationshipRecord is an embedded weak reference. Attributes are only
// present when the request asked for the type via includes[].
type relationshipRecord struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Related    string                  `json:"related,omitempty"`
	Attributes *relationshipAttributes `json:"attributes,omitempty"`
}

type relationshipAttributes struct {
	Name     string `json:"name"`
	FileName string `json:"fileName"`
}

type atHomeResponse struct {
	Result  string `json:"result"`
	BaseURL string `json:"baseUrl"`
	Chapter *struct {
		Hash      string   `json:"hash"`
		Data      []string `json:"data"`
		DataSaver []string `json:"dataSaver"`
	} `json:"chapter"`
}

// relation is one (subject, related) edge taken from a record's
// relationship list. It lives for one collection pass only.
type relation struct {
	SubjectID   string
	SubjectKind string
	RelatedID   string
	RelatedKind string
	Attributes  *relationshipAttributes
}

func relationsOf(subjectID, subjectKind string, records []relationshipRecord) []relation {
	return lo.FilterMap(records, func(r relationshipRecord, _ int) (relation, bool) {
		return relation{
			SubjectID:   subjectID,
			SubjectKind: subjectKind,
			RelatedID:   r.ID,
			RelatedKind: r.Type,
			Attributes:  r.Attributes,
		}, r.ID != "" && r.Type != ""
	})
}

// firstRelated returns the first relation of the given kind
func firstRelated(relations []relation, kind string) (relation, bool) {
	return lo.Find(relations, func(r relation) bool { return r.RelatedKind == kind })
}

// allRelated returns every relation of the given kind, in record order
func allRelated(relations []relation, kind string) []relation {
	return lo.Filter(relations, func(r relation, _ int) bool { return r.RelatedKind == kind })
}

// localizedValue is one language entry of a localized string
type localizedValue struct {
	Lang  string
	Value string
}

// localizedString is a language -> text object that remembers the order
// in which languages appeared in the JSON document.
type localizedString []localizedValue

func (l *localizedString) UnmarshalJSON(data []byte) error {
	*l = nil

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	// Empty objects are sometimes serialized as []
	if bytes.Equal(trimmed, []byte("[]")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("localized string: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("localized string: unexpected key %v", keyTok)
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("localized string %q: %w", key, err)
		}
		if value == nil {
			continue
		}
		*l = append(*l, localizedValue{Lang: key, Value: *value})
	}

	_, err = dec.Token()
	return err
}

// get returns the non-empty value for lang
func (l localizedString) get(lang string) (string, bool) {
	for _, v := range l {
		if v.Lang == lang && v.Value != "" {
			return v.Value, true
		}
	}
	return "", false
}

// first returns the first non-empty value in document order
func (l localizedString) first() (string, bool) {
	for _, v := range l {
		if v.Value != "" {
			return v.Value, true
		}
	}
	return "", false
}

// pick selects a value by preferred languages, then the site default,
// then the first entry present.
func (l localizedString) pick(preferred []string) string {
	for _, lang := range preferred {
		if value, ok := l.get(lang); ok {
			return value
		}
	}
	if value, ok := l.get(defaultLanguageCode); ok {
		return value
	}
	value, _ := l.first()
	return value
}
