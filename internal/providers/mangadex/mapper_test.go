package mangadex

import (
	"encoding/json"
	"testing"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalizedString(t *testing.T) {
	Convey("Given localized strings", t, func() {

		Convey("Document order is kept", func() {
			var l localizedString
			So(json.Unmarshal([]byte(`{"b":"second","a":"first","c":null}`), &l), ShouldBeNil)
			So(l, ShouldResemble, localizedString{{"b", "second"}, {"a", "first"}})
			So(l.pick([]string{"fr"}), ShouldEqual, "second")
		})

		Convey("Preferred languages win, then English, then the first entry", func() {
			var l localizedString
			So(json.Unmarshal([]byte(`{"ja-ro":"Romaji","en":"English","fr":"Francais"}`), &l), ShouldBeNil)
			So(l.pick([]string{"fr"}), ShouldEqual, "Francais")
			So(l.pick([]string{"de"}), ShouldEqual, "English")
			So(l.pick(nil), ShouldEqual, "English")

			var noEnglish localizedString
			So(json.Unmarshal([]byte(`{"ja-ro":"Romaji","ko":"Korean"}`), &noEnglish), ShouldBeNil)
			So(noEnglish.pick([]string{"de"}), ShouldEqual, "Romaji")
		})

		Convey("Empty arrays and null decode to nothing", func() {
			var l localizedString
			So(json.Unmarshal([]byte(`[]`), &l), ShouldBeNil)
			So(l, ShouldBeEmpty)
			So(json.Unmarshal([]byte(`null`), &l), ShouldBeNil)
			So(l.pick([]string{"en"}), ShouldEqual, "")
		})

		Convey("Other shapes are rejected", func() {
			var l localizedString
			So(json.Unmarshal([]byte(`"plain"`), &l), ShouldNotBeNil)
			So(json.Unmarshal([]byte(`{"en":5}`), &l), ShouldNotBeNil)
		})
	})
}

func TestMapManga(t *testing.T) {
	m := mapper{siteURL: testSite, uploadsURL: testUploads}
	values := prefs.Defaults()

	Convey("Given a complete manga record", t, func() {
		id := uuid.NewString()
		fixture := mangaFixture(id, "Komi Can't Communicate")

		Convey("Every field is mapped", func() {
			manga, err := m.manga(mustRaw(fixture), values)
			So(err, ShouldBeNil)
			So(manga.ID, ShouldEqual, id)
			So(manga.Title, ShouldEqual, "Komi Can't Communicate")
			So(manga.Description, ShouldEqual, "About Komi Can't Communicate")
			So(manga.Author, ShouldEqual, "Author of Komi Can't Communicate")
			So(manga.Artist, ShouldEqual, "Artist of Komi Can't Communicate")
			So(manga.Cover, ShouldEqual, testUploads+"/covers/"+id+"/cover.jpg")
			So(manga.Categories, ShouldResemble, []string{"Action"})
			So(manga.Status, ShouldEqual, core.StatusOngoing)
			So(manga.Rating, ShouldEqual, core.RatingSafe)
			So(manga.Viewer, ShouldEqual, core.ViewerRightToLeft)
			So(manga.URL, ShouldEqual, testSite+"/title/"+id)
		})

		Convey("The cover follows the quality preference", func() {
			medium, err := m.manga(mustRaw(fixture), prefs.Values{CoverQuality: prefs.CoverMedium})
			So(err, ShouldBeNil)
			So(medium.Cover, ShouldEqual, testUploads+"/covers/"+id+"/cover.jpg.512.jpg")

			small, err := m.manga(mustRaw(fixture), prefs.Values{CoverQuality: prefs.CoverSmall})
			So(err, ShouldBeNil)
			So(small.Cover, ShouldEqual, testUploads+"/covers/"+id+"/cover.jpg.256.jpg")
		})

		Convey("Relationships without attributes leave fields empty", func() {
			fixture["relationships"] = []interface{}{
				object{"id": uuid.NewString(), "type": "author"},
				object{"id": uuid.NewString(), "type": "cover_art"},
			}
			manga, err := m.manga(mustRaw(fixture), values)
			So(err, ShouldBeNil)
			So(manga.Author, ShouldEqual, "")
			So(manga.Artist, ShouldEqual, "")
			So(manga.Cover, ShouldEqual, "")
		})

		Convey("The first relationship of a type wins", func() {
			fixture["relationships"] = []interface{}{
				object{"id": uuid.NewString(), "type": "author", "attributes": object{"name": "First"}},
				object{"id": uuid.NewString(), "type": "author", "attributes": object{"name": "Second"}},
			}
			manga, err := m.manga(mustRaw(fixture), values)
			So(err, ShouldBeNil)
			So(manga.Author, ShouldEqual, "First")
		})

		Convey("Alternative titles serve preferred languages", func() {
			attrs := fixture["attributes"].(object)
			attrs["title"] = object{"ja-ro": "Komi-san wa", "en": "Komi"}
			attrs["altTitles"] = []interface{}{object{"ja": "古見さんは"}, object{"fr": "Komi cherche ses mots"}}

			manga, err := m.manga(mustRaw(fixture), prefs.Values{Languages: []string{"fr"}})
			So(err, ShouldBeNil)
			So(manga.Title, ShouldEqual, "Komi cherche ses mots")

			manga, err = m.manga(mustRaw(fixture), prefs.Values{Languages: []string{"de"}})
			So(err, ShouldBeNil)
			So(manga.Title, ShouldEqual, "Komi")
		})

		Convey("Categories are de-duplicated", func() {
			attrs := fixture["attributes"].(object)
			attrs["tags"] = []interface{}{
				tagFixture(uuid.NewString(), "Comedy"),
				tagFixture(uuid.NewString(), "Romance"),
				tagFixture(uuid.NewString(), "Comedy"),
			}
			manga, err := m.manga(mustRaw(fixture), values)
			So(err, ShouldBeNil)
			So(manga.Categories, ShouldResemble, []string{"Comedy", "Romance"})
		})

		Convey("Status is matched case-insensitively", func() {
			attrs := fixture["attributes"].(object)
			for status, want := range map[string]core.Status{
				"Completed": core.StatusCompleted,
				"HIATUS":    core.StatusHiatus,
				"cancelled": core.StatusCancelled,
				"paused":    core.StatusUnknown,
				"":          core.StatusUnknown,
			} {
				attrs["status"] = status
				manga, err := m.manga(mustRaw(fixture), values)
				So(err, ShouldBeNil)
				So(manga.Status, ShouldEqual, want)
			}
		})

		Convey("Content ratings collapse onto three levels", func() {
			attrs := fixture["attributes"].(object)
			for rating, want := range map[string]core.ContentRating{
				"safe":         core.RatingSafe,
				"suggestive":   core.RatingSuggestive,
				"erotica":      core.RatingNSFW,
				"pornographic": core.RatingNSFW,
			} {
				attrs["contentRating"] = rating
				manga, err := m.manga(mustRaw(fixture), values)
				So(err, ShouldBeNil)
				So(manga.Rating, ShouldEqual, want)
			}
		})

		Convey("Reading direction follows format tags and origin", func() {
			attrs := fixture["attributes"].(object)
			for language, want := range map[string]core.Viewer{
				"ja":    core.ViewerRightToLeft,
				"ko":    core.ViewerVertical,
				"zh":    core.ViewerVertical,
				"zh-hk": core.ViewerVertical,
				"en":    core.ViewerDefault,
			} {
				attrs["originalLanguage"] = language
				manga, err := m.manga(mustRaw(fixture), values)
				So(err, ShouldBeNil)
				So(manga.Viewer, ShouldEqual, want)
			}

			attrs["originalLanguage"] = "ja"
			attrs["tags"] = []interface{}{tagFixture(longStripTagID, "Long Strip")}
			manga, err := m.manga(mustRaw(fixture), values)
			So(err, ShouldBeNil)
			So(manga.Viewer, ShouldEqual, core.ViewerVertical)
		})
	})

	Convey("Incomplete manga records are malformed", t, func() {
		id := uuid.NewString()

		noID := mangaFixture("", "Nameless")
		noAttributes := object{"id": id, "type": "manga"}
		noTitle := mangaFixture(id, "")
		wrongType := mangaFixture(id, "Chapter in disguise")
		wrongType["type"] = "chapter"

		for _, raw := range []json.RawMessage{
			mustRaw(noID),
			mustRaw(noAttributes),
			mustRaw(noTitle),
			mustRaw(wrongType),
			json.RawMessage(`"not an object"`),
		} {
			_, err := m.manga(raw, values)
			So(errors.IsMalformedRecord(err), ShouldBeTrue)
		}
	})
}

func TestMapChapter(t *testing.T) {
	m := mapper{siteURL: testSite, uploadsURL: testUploads}

	Convey("Given a chapter record", t, func() {
		id, mangaID := uuid.NewString(), uuid.NewString()
		fixture := chapterFixture(id, mangaID, "10.5")

		Convey("Every field is mapped and the owner is exposed as a relation", func() {
			chapter, relations, err := m.chapter(mustRaw(fixture))
			So(err, ShouldBeNil)
			So(chapter.ID, ShouldEqual, id)
			So(chapter.Title, ShouldEqual, "Chapter 10.5")
			So(chapter.Volume, ShouldEqual, 1.0)
			So(chapter.Number, ShouldEqual, 10.5)
			So(chapter.Date, ShouldEqual, float64(1614834367))
			So(chapter.Scanlator, ShouldEqual, "Group A")
			So(chapter.URL, ShouldEqual, testSite+"/chapter/"+id)
			So(chapter.Language, ShouldEqual, "en")

			owner, ok := firstRelated(relations, relManga)
			So(ok, ShouldBeTrue)
			So(owner.RelatedID, ShouldEqual, mangaID)
			So(owner.SubjectID, ShouldEqual, id)
			So(owner.SubjectKind, ShouldEqual, kindChapter)
		})

		Convey("Missing numbers and dates use the -1 sentinel", func() {
			attrs := fixture["attributes"].(object)
			attrs["volume"] = nil
			attrs["chapter"] = "extra"
			attrs["publishAt"] = "someday"
			attrs["title"] = nil

			chapter, _, err := m.chapter(mustRaw(fixture))
			So(err, ShouldBeNil)
			So(chapter.Volume, ShouldEqual, core.MissingNumber)
			So(chapter.Number, ShouldEqual, core.MissingNumber)
			So(chapter.Date, ShouldEqual, core.UnknownDate)
			So(chapter.Title, ShouldEqual, "")
		})

		Convey("Scanlation groups are joined in order", func() {
			fixture["relationships"] = []interface{}{
				object{"id": uuid.NewString(), "type": "scanlation_group", "attributes": object{"name": "Alpha"}},
				object{"id": uuid.NewString(), "type": "user"},
				object{"id": uuid.NewString(), "type": "scanlation_group", "attributes": object{"name": "Beta"}},
			}
			chapter, _, err := m.chapter(mustRaw(fixture))
			So(err, ShouldBeNil)
			So(chapter.Scanlator, ShouldEqual, "Alpha, Beta")
		})

		Convey("Externally hosted chapters are malformed", func() {
			fixture["attributes"].(object)["externalUrl"] = "https://example.com/read/1"
			_, _, err := m.chapter(mustRaw(fixture))
			So(errors.IsMalformedRecord(err), ShouldBeTrue)
		})

		Convey("Chapters without id or attributes are malformed", func() {
			_, _, err := m.chapter(mustRaw(object{"type": "chapter", "attributes": object{}}))
			So(errors.IsMalformedRecord(err), ShouldBeTrue)
			_, _, err = m.chapter(mustRaw(object{"id": id, "type": "chapter"}))
			So(errors.IsMalformedRecord(err), ShouldBeTrue)
		})
	})
}

func TestMapEach(t *testing.T) {
	Convey("A malformed record costs only itself", t, func() {
		m := mapper{siteURL: testSite, uploadsURL: testUploads}
		records := make([]json.RawMessage, 0, listingPageSize)
		for i := 0; i < listingPageSize; i++ {
			if i == 7 {
				records = append(records, mustRaw(object{"type": "manga"}))
				continue
			}
			records = append(records, mustRaw(mangaFixture(uuid.NewString(), "Title")))
		}

		mapped := mapEach(records, logger.Nop(), func(raw json.RawMessage) (core.Manga, error) {
			return m.manga(raw, prefs.Defaults())
		})
		So(mapped, ShouldHaveLength, listingPageSize-1)
	})
}
