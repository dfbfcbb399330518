package mangadex

import (
	"strings"
	"testing"

	"Folio/pkg/core"

	. "github.com/smartystreets/goconvey/convey"
)

const baseline = "includes[]=cover_art&limit=20&offset=0"

func TestListingQuery(t *testing.T) {
	languages := []string{"en", "ja"}

	Convey("Given the listing query translator", t, func() {

		Convey("Unrecognized filters degrade to the baseline query", func() {
			filters := []core.Filter{
				{Kind: core.FilterUnknown, Name: "Mystery"},
				{Kind: core.FilterKind(42), Name: "Future"},
				{Kind: core.FilterSelect, Name: "Some other select"},
				{Kind: core.FilterToggle, Name: "Unbound toggle", Int: intPtr(1)},
			}
			So(listingQuery(filters, 1, languages), ShouldEqual, baseline)
			So(listingQuery(nil, 1, languages), ShouldEqual, baseline)
		})

		Convey("The page number sets the offset", func() {
			So(listingQuery(nil, 3, nil), ShouldStartWith, "includes[]=cover_art&limit=20&offset=40")
			So(listingQuery(nil, 0, nil), ShouldEqual, baseline)
		})

		Convey("Text filters are escaped with lowercase hex", func() {
			query := listingQuery([]core.Filter{
				core.TextFilter("Title", "a b/é"),
				core.AuthorFilter("Author", "ONE"),
			}, 1, nil)
			So(query, ShouldEqual, baseline+"&title=a%20b%2f%c3%a9&author=ONE")
		})

		Convey("Empty text is omitted", func() {
			So(listingQuery([]core.Filter{core.TextFilter("Title", "")}, 1, nil), ShouldEqual, baseline)
			So(listingQuery([]core.Filter{{Kind: core.FilterText, Name: "Title"}}, 1, nil), ShouldEqual, baseline)
		})

		Convey("Bound toggles encode inclusion and, where supported, exclusion", func() {
			So(listingQuery([]core.Filter{core.ToggleFilter("Japanese", "originalLanguage=ja", 1)}, 1, nil),
				ShouldEqual, baseline+"&originalLanguage[]=ja")
			So(listingQuery([]core.Filter{core.ToggleFilter("Japanese", "originalLanguage=ja", 0)}, 1, nil),
				ShouldEqual, baseline+"&excludedOriginalLanguage[]=ja")
			So(listingQuery([]core.Filter{core.ToggleFilter("Safe", "contentRating=safe", 1)}, 1, nil),
				ShouldEqual, baseline+"&contentRating[]=safe")
		})

		Convey("Toggles without a usable state are skipped entirely", func() {
			filters := []core.Filter{
				core.ToggleFilter("Safe", "contentRating=safe", 0),
				core.ToggleFilter("Safe", "contentRating=safe", -1),
				{Kind: core.FilterToggle, Name: "Safe", ID: "contentRating=safe"},
				core.ToggleFilter("Broken", "contentRating", 1),
			}
			So(listingQuery(filters, 1, nil), ShouldEqual, baseline)
		})

		Convey("Boolean toggle values count as included or excluded", func() {
			yes, no := true, false
			filters := []core.Filter{
				{Kind: core.FilterToggle, Name: "Korean", ID: "originalLanguage=ko", Bool: &yes},
				{Kind: core.FilterToggle, Name: "Chinese", ID: "originalLanguage=zh", Bool: &no},
			}
			So(listingQuery(filters, 1, nil), ShouldEqual,
				baseline+"&originalLanguage[]=ko&excludedOriginalLanguage[]=zh")
		})

		Convey("The availability toggle adds one parameter per preferred language", func() {
			query := listingQuery([]core.Filter{{Kind: core.FilterToggle, Name: filterAvailableChapters, Int: intPtr(1)}}, 1, languages)
			So(query, ShouldEqual, baseline+"&hasAvailableChapters=true&availableTranslatedLanguage[]=en&availableTranslatedLanguage[]=ja")

			off := listingQuery([]core.Filter{{Kind: core.FilterToggle, Name: filterAvailableChapters, Int: intPtr(0)}}, 1, languages)
			So(off, ShouldEqual, baseline)
		})

		Convey("Tags encode inclusion or exclusion, never both", func() {
			const id = "391b0423-d847-456f-aff0-8b0cfc03066b"
			states := []int{-1, 0, 1, 2}
			for _, first := range states {
				for _, second := range states {
					query := listingQuery([]core.Filter{
						core.TagFilter("Action", id, first),
						core.TagFilter("Action", id, second),
					}, 1, nil)
					included := strings.Contains(query, "includedTags[]="+id)
					excluded := strings.Contains(query, "excludedTags[]="+id)
					So(included && excluded, ShouldBeFalse)
					So(strings.Count(query, id), ShouldBeLessThanOrEqualTo, 1)
				}
			}

			So(listingQuery([]core.Filter{
				core.TagFilter("Action", id, 1),
				core.TagFilter("Action", id, 0),
			}, 1, nil), ShouldEqual, baseline+"&includedTags[]="+id)
			So(listingQuery([]core.Filter{core.TagFilter("Action", id, 0)}, 1, nil),
				ShouldEqual, baseline+"&excludedTags[]="+id)
			So(listingQuery([]core.Filter{core.TagFilter("Action", "", 1)}, 1, nil), ShouldEqual, baseline)
		})

		Convey("Sort filters map their index to an ordering key", func() {
			So(listingQuery([]core.Filter{core.SortFilter("Sort", 2, false)}, 1, nil),
				ShouldEqual, baseline+"&order[followedCount]=desc")
			So(listingQuery([]core.Filter{core.SortFilter("Sort", 5, true)}, 1, nil),
				ShouldEqual, baseline+"&order[title]=asc")
		})

		Convey("Unrecognized sort keys drop only the sort clause", func() {
			query := listingQuery([]core.Filter{
				core.SortFilter("Sort", 9, true),
				core.SortFilter("Sort", -1, true),
				{Kind: core.FilterSort, Name: "Sort"},
				core.TextFilter("Title", "x"),
			}, 1, nil)
			So(query, ShouldEqual, baseline+"&title=x")
		})

		Convey("Tag modes fall back to their defaults", func() {
			So(listingQuery([]core.Filter{core.SelectFilter(filterIncludedTagsMode, 1)}, 1, nil),
				ShouldEqual, baseline+"&includedTagsMode=OR")
			So(listingQuery([]core.Filter{{Kind: core.FilterSelect, Name: filterIncludedTagsMode}}, 1, nil),
				ShouldEqual, baseline+"&includedTagsMode=AND")
			So(listingQuery([]core.Filter{core.SelectFilter(filterExcludedTagsMode, 0)}, 1, nil),
				ShouldEqual, baseline+"&excludedTagsMode=AND")
			So(listingQuery([]core.Filter{core.SelectFilter(filterExcludedTagsMode, 7)}, 1, nil),
				ShouldEqual, baseline+"&excludedTagsMode=OR")
		})

		Convey("Filters are encoded in the order given", func() {
			query := listingQuery([]core.Filter{
				core.SortFilter("Sort", 1, false),
				core.TextFilter("Title", "one piece"),
			}, 2, nil)
			So(query, ShouldEqual, "includes[]=cover_art&limit=20&offset=20&order[relevance]=desc&title=one%20piece")
		})
	})
}

func TestHasMore(t *testing.T) {
	Convey("hasMore is true iff offset + page size < total", t, func() {
		So(hasMore(0, 20, 21), ShouldBeTrue)
		So(hasMore(0, 20, 20), ShouldBeFalse)
		So(hasMore(40, 20, 60), ShouldBeFalse)
		So(hasMore(40, 20, 61), ShouldBeTrue)
		So(hasMore(0, 20, 0), ShouldBeFalse)
	})
}

func TestFeedQueries(t *testing.T) {
	Convey("Given the feed query builders", t, func() {

		Convey("The chapter feed excludes each trimmed, non-empty blocked group", func() {
			query := chapterFeedQuery([]string{"en"}, []string{" g1 ", "", "g2", "  "}, []string{"u1"})
			So(query, ShouldEqual, "order[volume]=desc&order[chapter]=desc&limit=500"+
				"&contentRating[]=pornographic&contentRating[]=erotica&contentRating[]=suggestive&contentRating[]=safe"+
				"&includes[]=scanlation_group&translatedLanguage[]=en"+
				"&excludedGroups[]=g1&excludedGroups[]=g2&excludedUploaders[]=u1")
			So(strings.Count(query, "excludedGroups[]="), ShouldEqual, 2)
		})

		Convey("The latest feed carries its offset before the languages", func() {
			So(latestFeedQuery(40, []string{"en", "fr"}), ShouldEqual,
				"includes[]=manga&order[publishAt]=desc&includeFutureUpdates=0&limit=20&offset=40"+
					"&translatedLanguage[]=en&translatedLanguage[]=fr")
		})

		Convey("The batched lookup asks for exactly as many records as ids", func() {
			So(batchMangaQuery([]string{"a", "b"}), ShouldEqual,
				"includes[]=cover_art&order[updatedAt]=desc"+
					"&contentRating[]=erotica&contentRating[]=suggestive&contentRating[]=safe"+
					"&limit=2&ids[]=a&ids[]=b")
		})
	})
}

func intPtr(v int) *int { return &v }
