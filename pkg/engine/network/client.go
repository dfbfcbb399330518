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

package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"Folio/pkg/engine/logger"
	"Folio/pkg/errors"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent identifies Folio to remote APIs
const DefaultUserAgent = "Folio/1.0 (+https://github.com/LuMiSxh/Folio)"

// Fetcher performs rate-limited GET requests and decodes JSON bodies.
// Providers depend on this rather than on HTTPService so tests can swap it.
type Fetcher interface {
	GetJSON(ctx context.Context, url string, result interface{}) error
}

// Options configures an HTTPService
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *RateLimiter
	Logger    logger.Logger
	Transport http.RoundTripper
}

// HTTPService issues requests through a shared rate limiter
type HTTPService struct {
	Client    *http.Client
	UserAgent string
	Limiter   *RateLimiter
	Logger    logger.Logger
}

// NewHTTPService creates an HTTPService with a public-suffix aware cookie jar
func NewHTTPService(opts Options) (*HTTPService, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Track(err).WithMessage("Failed to create cookie jar").Error()
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &HTTPService{
		Client: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       jar,
			Transport: opts.Transport,
		},
		UserAgent: opts.UserAgent,
		Limiter:   opts.Limiter,
		Logger:    opts.Logger,
	}, nil
}

// Get performs a single GET request and returns the body of a 2xx response.
// Any failure is reported as a TransportError; nothing is retried.
func (h *HTTPService) Get(ctx context.Context, url string) ([]byte, int, error) {
	if err := h.Limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, h.transportError(&errors.TransportError{URL: url, Err: err})
	}
	req.Header.Set("User-Agent", h.UserAgent)
	req.Header.Set("Accept", "application/json")

	h.Logger.Debug("[HTTP] GET %s", url)

	resp, err := h.Client.Do(req)
	if err != nil {
		h.Logger.Debug("[HTTP] Request failed: %v", err)
		return nil, 0, h.transportError(&errors.TransportError{URL: url, Err: err})
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.Logger.Warn("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, h.transportError(&errors.TransportError{URL: url, StatusCode: resp.StatusCode, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > 0 {
			h.Logger.Debug("[HTTP] Error response body: %s", sample(body))
		}
		return nil, resp.StatusCode, h.transportError(errors.NewStatusError(url, resp.StatusCode))
	}

	h.Logger.Debug("[HTTP] Response received: status %d, %d bytes", resp.StatusCode, len(body))
	return body, resp.StatusCode, nil
}

// GetJSON fetches url and decodes the body into result
func (h *HTTPService) GetJSON(ctx context.Context, url string, result interface{}) error {
	body, status, err := h.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		h.Logger.Debug("[HTTP] Invalid JSON from %s: %s", url, sample(body))
		return h.transportError(&errors.TransportError{
			URL:        url,
			StatusCode: status,
			Err:        fmt.Errorf("invalid JSON: %w", err),
		})
	}

	return nil
}

func (h *HTTPService) transportError(te *errors.TransportError) error {
	return errors.Track(te).
		WithContext("url", te.URL).
		Error()
}

// sample keeps log lines short
func sample(body []byte) string {
	const size = 500
	if len(body) <= size {
		return string(body)
	}
	return string(body[:size]) + "..."
}
