package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"Folio/internal/providers/mangadex"
	"Folio/pkg/config"
	"Folio/pkg/core"
	"Folio/pkg/engine"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"
)

type stubProvider struct {
	filters  []core.Filter
	page     int
	listing  string
	chapters bool
}

func (p *stubProvider) ID() string          { return "stub" }
func (p *stubProvider) Name() string        { return "Stub" }
func (p *stubProvider) Description() string { return "In-memory catalog" }
func (p *stubProvider) SiteURL() string     { return "https://stub.test" }

func (p *stubProvider) Initialize(ctx context.Context) error { return nil }

func (p *stubProvider) Listings() []core.Listing {
	return []core.Listing{{Name: "Popular"}, {Name: "Latest"}}
}

func (p *stubProvider) Filters() []core.FilterDefinition {
	return mangadex.New(mangadex.Options{}).Filters()
}

func (p *stubProvider) GetMangaList(ctx context.Context, filters []core.Filter, page int) (*core.MangaPage, error) {
	p.filters, p.page = filters, page
	return &core.MangaPage{Manga: []core.Manga{{ID: "m1", Title: "Found"}}}, nil
}

func (p *stubProvider) GetMangaListing(ctx context.Context, listing core.Listing, page int) (*core.MangaPage, error) {
	p.listing, p.page = listing.Name, page
	return &core.MangaPage{Manga: []core.Manga{{ID: "m2", Title: "Listed"}}, HasMore: true}, nil
}

func (p *stubProvider) GetMangaDetails(ctx context.Context, id string) (*core.Manga, error) {
	return &core.Manga{ID: id, Title: "Details of " + id}, nil
}

func (p *stubProvider) GetChapterList(ctx context.Context, mangaID string) ([]core.Chapter, error) {
	p.chapters = true
	return []core.Chapter{{ID: "c1", Number: 3, Volume: 1, Date: 0, Language: "en"}}, nil
}

func (p *stubProvider) GetPageList(ctx context.Context, chapterID string) ([]core.Page, error) {
	return []core.Page{{Index: 0, URL: "https://img.test/1.png"}, {Index: 1, URL: "https://img.test/2.png"}}, nil
}

func (p *stubProvider) HandleURL(ctx context.Context, url string) (*core.DeepLink, error) {
	return nil, &errors.UnsupportedLinkError{URL: url, Reason: "stub resolves nothing"}
}

// run executes the root command against an engine holding prov
func run(t *testing.T, prov *stubProvider, args ...string) (string, error) {
	t.Helper()

	e, err := engine.NewWithServices(config.Default(), logger.Nop(), prefs.NewMemoryStore(), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := e.RegisterProvider(prov); err != nil {
		t.Fatalf("register: %v", err)
	}
	SetupEngine(e)

	jsonOutput, tableMode, debugMode, infoChapters = false, false, false, false
	listPage = 1
	searchOpts = searchOptions{Page: 1}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--provider", "stub"}, args...))
	err = rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	prov := &stubProvider{}
	out, err := run(t, prov, "list", "latest", "--page", "3")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if prov.listing != "Latest" || prov.page != 3 {
		t.Errorf("listing: got %q page %d, want Latest page 3", prov.listing, prov.page)
	}
	if !strings.Contains(out, "Listed") || !strings.Contains(out, "--page 4") {
		t.Errorf("output: got %q", out)
	}

	if _, err := run(t, prov, "list", "Weekly"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("unknown listing: got %v, want invalid input", err)
	}
}

func TestSearchCommandJSON(t *testing.T) {
	prov := &stubProvider{}
	out, err := run(t, prov, "search", "--json", "--title", "berserk", "--tag", "Action", "--sort", "title", "--asc", "--page", "2")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var env struct {
		Status string         `json:"status"`
		Data   core.MangaPage `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if env.Status != "success" || len(env.Data.Manga) != 1 {
		t.Errorf("response: got %+v", env)
	}
	if prov.page != 2 || len(prov.filters) != 3 {
		t.Fatalf("filters: got %d on page %d, want 3 on page 2", len(prov.filters), prov.page)
	}
	if prov.filters[0].TextValue() != "berserk" {
		t.Errorf("title filter: got %+v", prov.filters[0])
	}
	if prov.filters[2].Sort == nil || prov.filters[2].Sort.Index != 5 || !prov.filters[2].Sort.Ascending {
		t.Errorf("sort filter: got %+v", prov.filters[2])
	}
}

func TestBuildFilters(t *testing.T) {
	defs := mangadex.New(mangadex.Options{}).Filters()
	romance, _ := mangadex.TagID("Romance")
	horror, _ := mangadex.TagID("Horror")

	filters, err := buildFilters(defs, searchOptions{
		Author:      "Oda",
		Tags:        []string{"romance"},
		ExcludeTags: []string{"HORROR"},
		Languages:   []string{"ko"},
		Available:   true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []struct {
		kind  core.FilterKind
		id    string
		state int
	}{
		{core.FilterAuthor, "", -2},
		{core.FilterToggle, "originalLanguage=ko", core.StateIncluded},
		{core.FilterToggle, "", core.StateIncluded},
		{core.FilterTag, romance, core.StateIncluded},
		{core.FilterTag, horror, core.StateExcluded},
	}
	if len(filters) != len(want) {
		t.Fatalf("filters: got %d, want %d", len(filters), len(want))
	}
	for i, w := range want {
		f := filters[i]
		if f.Kind != w.kind || f.ID != w.id {
			t.Errorf("filter %d: got %s %q, want %s %q", i, f.Kind, f.ID, w.kind, w.id)
		}
		if state, ok := f.IntValue(); w.state != -2 && (!ok || state != w.state) {
			t.Errorf("filter %d: got state %d, want %d", i, state, w.state)
		}
	}

	for _, opts := range []searchOptions{
		{Tags: []string{"Not A Tag"}},
		{Sort: "popularity"},
		{Languages: []string{"xx"}},
	} {
		if _, err := buildFilters(defs, opts); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("%+v: got %v, want invalid input", opts, err)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	prov := &stubProvider{}
	out, err := run(t, prov, "info", "stub:abc")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if prov.chapters {
		t.Errorf("chapters fetched without --chapters")
	}
	if !strings.Contains(out, "Details of abc") {
		t.Errorf("output: got %q", out)
	}

	out, err = run(t, prov, "info", "abc", "--chapters", "--json")
	if err != nil {
		t.Fatalf("info --chapters: %v", err)
	}
	if !prov.chapters || !strings.Contains(out, `"chapters"`) {
		t.Errorf("chapters missing from %q", out)
	}

	if _, err := run(t, prov, "info", "elsewhere:abc"); !errors.IsNotFound(err) {
		t.Errorf("unknown provider: got %v, want not found", err)
	}
}

func TestPagesAndResolveCommands(t *testing.T) {
	prov := &stubProvider{}
	out, err := run(t, prov, "pages", "c1")
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if !strings.Contains(out, "https://img.test/2.png") {
		t.Errorf("pages output: got %q", out)
	}

	if _, err := run(t, prov, "resolve", "https://elsewhere.test/x"); !errors.IsUnsupportedLink(err) {
		t.Errorf("resolve: got %v, want unsupported link", err)
	}
}

func TestFiltersAndProvidersCommands(t *testing.T) {
	out, err := run(t, &stubProvider{}, "filters", "--table")
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if !strings.Contains(out, "Original language") {
		t.Errorf("filters output: got %q", out)
	}

	out, err = run(t, &stubProvider{}, "providers", "--json")
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if !strings.Contains(out, `"id": "stub"`) {
		t.Errorf("providers output: got %q", out)
	}
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer
	jsonOutput = true
	defer func() { jsonOutput = false }()

	reportError(&out, &errors.UnsupportedLinkError{URL: "https://x.test", Reason: "foreign host"})
	if !strings.Contains(out.String(), `"status": "error"`) {
		t.Errorf("got %q", out.String())
	}
}
