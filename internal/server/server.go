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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"
	"Folio/pkg/provider"
	"Folio/pkg/util"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// RequestIDHeader carries the id of every gateway request
const RequestIDHeader = "X-Request-ID"

// Catalog gives the gateway access to the registered providers
type Catalog interface {
	GetProvider(id string) (provider.Provider, error)
	AllProviders() []provider.Provider
}

// Server exposes provider operations as JSON over HTTP
type Server struct {
	catalog Catalog
	logger  logger.Logger
	router  *mux.Router
	timeout time.Duration
}

// New creates a Server. timeout bounds each request; zero means none.
func New(catalog Catalog, log logger.Logger, timeout time.Duration) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		catalog: catalog,
		logger:  log,
		router:  mux.NewRouter(),
		timeout: timeout,
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler. Request ids and logging cover
// unmatched routes as well.
func (s *Server) Handler() http.Handler {
	return s.requestID(s.logRequests(s.router))
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/filters", s.withProvider(s.handleFilters)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/listings", s.withProvider(s.handleListings)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/listings/{name}", s.withProvider(s.handleListing)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/search", s.withProvider(s.handleSearch)).Methods(http.MethodPost)
	api.HandleFunc("/{provider}/manga/{id}", s.withProvider(s.handleManga)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/manga/{id}/chapters", s.withProvider(s.handleChapters)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/chapters/{id}/pages", s.withProvider(s.handlePages)).Methods(http.MethodGet)
	api.HandleFunc("/{provider}/resolve", s.withProvider(s.handleResolve)).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.Track(errors.ErrNotFound).WithMessagef("no route for %s", r.URL.Path).Error())
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = util.OutputJSON(w, "error", nil, errors.Track(errors.ErrBadRequest).WithMessagef("%s not allowed", r.Method).Error())
	})
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[Server] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Track(err).WithContext("addr", addr).AsNetwork().Error()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type providerHandler func(w http.ResponseWriter, r *http.Request, prov provider.Provider)

// withProvider resolves the {provider} path variable and bounds the request
func (s *Server) withProvider(next providerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prov, err := s.catalog.GetProvider(mux.Vars(r)["provider"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		if s.timeout > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
			defer cancel()
			r = r.WithContext(ctx)
		}
		next(w, r, prov)
	}
}

// providerSummary is the JSON shape of one provider
type providerSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SiteURL     string         `json:"site_url"`
	Listings    []core.Listing `json:"listings"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	summaries := lo.Map(s.catalog.AllProviders(), func(p provider.Provider, _ int) providerSummary {
		return providerSummary{
			ID:          p.ID(),
			Name:        p.Name(),
			Description: p.Description(),
			SiteURL:     p.SiteURL(),
			Listings:    p.Listings(),
		}
	})
	s.writeData(w, summaries)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	s.writeData(w, prov.Filters())
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	s.writeData(w, prov.Listings())
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	page, err := pageParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := prov.GetMangaListing(r.Context(), core.Listing{Name: mux.Vars(r)["name"]}, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, result)
}

// searchRequest is the body of POST /api/{provider}/search
type searchRequest struct {
	Filters []core.Filter `json:"filters"`
	Page    int           `json:"page"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	var body searchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		s.writeError(w, r, errors.Track(errors.ErrInvalidInput).
			WithMessagef("invalid search body: %v", err).
			AsValidation().
			Error())
		return
	}
	if body.Page == 0 {
		body.Page = 1
	}
	if body.Page < 0 {
		s.writeError(w, r, errors.Track(errors.ErrInvalidInput).WithMessage("page must be positive").AsValidation().Error())
		return
	}

	result, err := prov.GetMangaList(r.Context(), body.Filters, body.Page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, result)
}

// mangaResponse is the body of GET /api/{provider}/manga/{id}
type mangaResponse struct {
	Manga    *core.Manga    `json:"manga"`
	Chapters []core.Chapter `json:"chapters,omitempty"`
}

func (s *Server) handleManga(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	id := mux.Vars(r)["id"]
	withChapters, _ := strconv.ParseBool(r.URL.Query().Get("chapters"))

	var response mangaResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		manga, err := prov.GetMangaDetails(ctx, id)
		response.Manga = manga
		return err
	})
	if withChapters {
		g.Go(func() error {
			chapters, err := prov.GetChapterList(ctx, id)
			response.Chapters = chapters
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if withChapters && response.Chapters == nil {
		response.Chapters = []core.Chapter{}
	}
	s.writeData(w, response)
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	chapters, err := prov.GetChapterList(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, chapters)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	pages, err := prov.GetPageList(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, pages)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request, prov provider.Provider) {
	link := r.URL.Query().Get("url")
	if link == "" {
		s.writeError(w, r, errors.Track(errors.ErrInvalidInput).WithMessage("missing url parameter").AsValidation().Error())
		return
	}

	resolved, err := prov.HandleURL(r.Context(), link)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, resolved)
}

func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errors.Track(errors.ErrInvalidInput).
			WithMessagef("invalid page %q", raw).
			AsValidation().
			Error()
	}
	return page, nil
}
