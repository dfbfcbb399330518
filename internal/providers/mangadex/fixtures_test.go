package mangadex

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"

	"github.com/google/uuid"
)

const (
	testAPI     = "https://api.test"
	testSite    = "https://mangadex.org"
	testUploads = "https://uploads.test"
)

type object = map[string]interface{}

// recordingFetcher answers GetJSON from a handler and remembers every URL
type recordingFetcher struct {
	mu      sync.Mutex
	calls   []string
	handler func(url string) (interface{}, error)
}

func (f *recordingFetcher) GetJSON(_ context.Context, url string, result interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	body, err := f.handler(url)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &errors.TransportError{URL: url, StatusCode: 200, Err: err}
	}
	return nil
}

func (f *recordingFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestProvider(fetcher *recordingFetcher, source prefs.Source) *Provider {
	return New(Options{
		Fetcher:    fetcher,
		Prefs:      source,
		Logger:     logger.Nop(),
		APIURL:     testAPI,
		SiteURL:    testSite,
		UploadsURL: testUploads,
	})
}

func mangaFixture(id, title string) object {
	return object{
		"id":   id,
		"type": "manga",
		"attributes": object{
			"title":            object{"en": title},
			"altTitles":        []interface{}{},
			"description":      object{"en": "About " + title},
			"originalLanguage": "ja",
			"status":           "ongoing",
			"contentRating":    "safe",
			"tags": []interface{}{
				tagFixture("391b0423-d847-456f-aff0-8b0cfc03066b", "Action"),
			},
		},
		"relationships": []interface{}{
			object{"id": uuid.NewString(), "type": "author", "attributes": object{"name": "Author of " + title}},
			object{"id": uuid.NewString(), "type": "artist", "attributes": object{"name": "Artist of " + title}},
			object{"id": uuid.NewString(), "type": "cover_art", "attributes": object{"fileName": "cover.jpg"}},
		},
	}
}

func tagFixture(id, name string) object {
	return object{
		"id":         id,
		"type":       "tag",
		"attributes": object{"name": object{"en": name}, "group": "genre"},
	}
}

func chapterFixture(id, mangaID, number string) object {
	return object{
		"id":   id,
		"type": "chapter",
		"attributes": object{
			"title":              "Chapter " + number,
			"volume":             "1",
			"chapter":            number,
			"publishAt":          "2021-03-04T05:06:07+00:00",
			"translatedLanguage": "en",
			"externalUrl":        nil,
			"pages":              12,
		},
		"relationships": []interface{}{
			object{"id": uuid.NewString(), "type": "scanlation_group", "attributes": object{"name": "Group A"}},
			object{"id": mangaID, "type": "manga"},
		},
	}
}

func collection(data []interface{}, total int) object {
	return object{"result": "ok", "data": data, "limit": len(data), "total": total}
}

func entity(data interface{}) object {
	return object{"result": "ok", "data": data}
}

func mustRaw(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// offsetOf reads the offset query value of url, 0 when absent
func offsetOf(url string) int {
	idx := strings.Index(url, "offset=")
	if idx < 0 {
		return 0
	}
	value := url[idx+len("offset="):]
	if end := strings.IndexByte(value, '&'); end >= 0 {
		value = value[:end]
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(fmt.Sprintf("bad offset in %s", url))
	}
	return n
}

// chapterFeed serves a synthetic feed of total chapters for one manga
func chapterFeed(mangaID string, total, pageSize int) func(url string) (interface{}, error) {
	ids := make([]string, total)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return func(url string) (interface{}, error) {
		offset := offsetOf(url)
		data := []interface{}{}
		for i := offset; i < total && i < offset+pageSize; i++ {
			data = append(data, chapterFixture(ids[i], mangaID, strconv.Itoa(total-i)))
		}
		return collection(data, total), nil
	}
}
