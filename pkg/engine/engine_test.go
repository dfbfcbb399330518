package engine

import (
	"context"
	"strings"
	"testing"

	"Folio/pkg/config"
	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/prefs"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeProvider struct {
	id          string
	initErr     error
	initialized bool
}

func (p *fakeProvider) ID() string          { return p.id }
func (p *fakeProvider) Name() string        { return strings.ToUpper(p.id) }
func (p *fakeProvider) Description() string { return "fake" }
func (p *fakeProvider) SiteURL() string     { return "https://" + p.id + ".test" }

func (p *fakeProvider) Initialize(ctx context.Context) error {
	p.initialized = true
	return p.initErr
}

func (p *fakeProvider) Listings() []core.Listing         { return nil }
func (p *fakeProvider) Filters() []core.FilterDefinition { return nil }

func (p *fakeProvider) GetMangaList(ctx context.Context, filters []core.Filter, page int) (*core.MangaPage, error) {
	return &core.MangaPage{}, nil
}

func (p *fakeProvider) GetMangaListing(ctx context.Context, listing core.Listing, page int) (*core.MangaPage, error) {
	return &core.MangaPage{}, nil
}

func (p *fakeProvider) GetMangaDetails(ctx context.Context, id string) (*core.Manga, error) {
	return &core.Manga{ID: id}, nil
}

func (p *fakeProvider) GetChapterList(ctx context.Context, mangaID string) ([]core.Chapter, error) {
	return nil, nil
}

func (p *fakeProvider) GetPageList(ctx context.Context, chapterID string) ([]core.Page, error) {
	return nil, nil
}

func (p *fakeProvider) HandleURL(ctx context.Context, url string) (*core.DeepLink, error) {
	return nil, &errors.UnsupportedLinkError{URL: url}
}

func TestEngine(t *testing.T) {
	Convey("Given an engine built from the default configuration", t, func() {
		store := prefs.NewMemoryStore()
		e, err := NewWithServices(config.Default(), logger.Nop(), store, nil)
		So(err, ShouldBeNil)

		Convey("It shares one limiter with its HTTP service", func() {
			So(e.Network, ShouldNotBeNil)
			So(e.Network.Limiter, ShouldEqual, e.Limiter)
			requests, period := e.Limiter.Budget()
			So(requests, ShouldEqual, 3)
			So(period.Seconds(), ShouldEqual, 1)
		})

		Convey("Providers are registered once and listed by id", func() {
			So(e.RegisterProvider(&fakeProvider{id: "zeta"}), ShouldBeNil)
			So(e.RegisterProvider(&fakeProvider{id: "alpha"}), ShouldBeNil)
			So(e.RegisterProvider(&fakeProvider{id: "alpha"}), ShouldNotBeNil)
			So(e.RegisterProvider(&fakeProvider{}), ShouldNotBeNil)
			So(e.RegisterProvider(nil), ShouldNotBeNil)

			So(e.ProviderCount(), ShouldEqual, 2)
			So(e.ProviderExists("zeta"), ShouldBeTrue)

			all := e.AllProviders()
			So(all[0].ID(), ShouldEqual, "alpha")
			So(all[1].ID(), ShouldEqual, "zeta")
		})

		Convey("Unknown providers are not found and name the alternatives", func() {
			So(e.RegisterProvider(&fakeProvider{id: "alpha"}), ShouldBeNil)

			_, err := e.GetProvider("beta")
			So(errors.IsNotFound(err), ShouldBeTrue)
			So(errors.GetContext(err)["available_providers"], ShouldResemble, []string{"alpha"})
		})

		Convey("A failing provider does not stop the others from initializing", func() {
			failing := &fakeProvider{id: "broken", initErr: errors.New("no fetcher")}
			healthy := &fakeProvider{id: "healthy"}
			So(e.RegisterProvider(failing), ShouldBeNil)
			So(e.RegisterProvider(healthy), ShouldBeNil)

			So(e.InitializeProviders(context.Background()), ShouldBeNil)
			So(failing.initialized, ShouldBeTrue)
			So(healthy.initialized, ShouldBeTrue)
		})

		Convey("Debug mode switches the error format", func() {
			err := errors.Track(errors.ErrInvalidInput).WithMessage("bad page").AsValidation().Error()

			e.SetDebugMode(false)
			So(e.DebugMode(), ShouldBeFalse)
			So(e.FormatError(err), ShouldContainSubstring, "bad page")
			So(e.FormatError(nil), ShouldEqual, "")

			e.SetDebugMode(true)
			So(e.DebugMode(), ShouldBeTrue)
			So(e.FormatError(err), ShouldContainSubstring, "chain:")
		})

		Convey("Shutdown closes the preference store", func() {
			So(e.Shutdown(), ShouldBeNil)
		})
	})

	Convey("An invalid configuration is rejected", t, func() {
		cfg := config.Default()
		cfg.RateLimit.Requests = 0
		_, err := New(cfg)
		So(errors.IsConfiguration(err), ShouldBeTrue)
	})
}
