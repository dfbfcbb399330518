package mangadex

import (
	"context"
	"strings"
	"testing"

	"Folio/pkg/errors"
	"Folio/pkg/prefs"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyLink(t *testing.T) {
	Convey("Links are classified by host and first path segment", t, func() {
		cases := []struct {
			raw  string
			kind linkKind
			id   string
		}{
			{"https://mangadex.org/title/abc/some-slug", linkTitle, "abc"},
			{"https://www.mangadex.org/title/abc", linkTitle, "abc"},
			{"mangadex.org/chapter/xyz/1", linkChapter, "xyz"},
			{"https://MangaDex.org/chapter/xyz?page=2#top", linkChapter, "xyz"},
			{"https://mangadex.org/title/", linkUnknown, ""},
			{"https://mangadex.org/group/abc", linkUnknown, ""},
			{"https://example.com/title/abc", linkUnknown, ""},
			{"", linkUnknown, ""},
		}
		for _, c := range cases {
			kind, id, reason := classifyLink(testSite, c.raw)
			So(kind, ShouldEqual, c.kind)
			So(id, ShouldEqual, c.id)
			if c.kind == linkUnknown {
				So(reason, ShouldNotBeEmpty)
			}
		}
	})
}

func TestHandleURL(t *testing.T) {
	ctx := context.Background()

	Convey("Given a provider with a catalog", t, func() {
		mangaID, chapterID := uuid.NewString(), uuid.NewString()
		chapter := chapterFixture(chapterID, mangaID, "4")
		fetcher := &recordingFetcher{handler: func(url string) (interface{}, error) {
			if strings.Contains(url, "/chapter/") {
				return entity(chapter), nil
			}
			return entity(mangaFixture(mangaID, "Blame!")), nil
		}}
		p := newTestProvider(fetcher, prefs.Static(prefs.Defaults()))

		Convey("A title link resolves with one request", func() {
			link, err := p.HandleURL(ctx, testSite+"/title/"+mangaID+"/blame")
			So(err, ShouldBeNil)
			So(link.Manga.ID, ShouldEqual, mangaID)
			So(link.Chapter, ShouldBeNil)
			So(fetcher.Calls(), ShouldHaveLength, 1)
		})

		Convey("A chapter link resolves the chapter and its owner", func() {
			link, err := p.HandleURL(ctx, testSite+"/chapter/"+chapterID)
			So(err, ShouldBeNil)
			So(link.Chapter.ID, ShouldEqual, chapterID)
			So(link.Manga.ID, ShouldEqual, mangaID)
			So(fetcher.Calls(), ShouldResemble, []string{
				testAPI + "/chapter/" + chapterID,
				testAPI + "/manga/" + mangaID + "?includes[]=cover_art&includes[]=author&includes[]=artist",
			})
		})

		Convey("A chapter without an owner is unsupported", func() {
			chapter["relationships"] = []interface{}{}
			_, err := p.HandleURL(ctx, testSite+"/chapter/"+chapterID)
			So(errors.IsUnsupportedLink(err), ShouldBeTrue)
			So(fetcher.Calls(), ShouldHaveLength, 1)
		})

		Convey("Foreign links are unsupported without any request", func() {
			_, err := p.HandleURL(ctx, "https://example.com/title/"+mangaID)
			So(errors.IsUnsupportedLink(err), ShouldBeTrue)
			So(fetcher.Calls(), ShouldBeEmpty)
		})

		Convey("A missing chapter is a transport failure", func() {
			fetcher.handler = func(url string) (interface{}, error) {
				return nil, errors.NewStatusError(url, 404)
			}
			_, err := p.HandleURL(ctx, testSite+"/chapter/"+chapterID)
			So(errors.IsNotFound(err), ShouldBeTrue)
			So(errors.IsUnsupportedLink(err), ShouldBeFalse)
		})
	})
}
