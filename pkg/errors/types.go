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

package errors

import (
	"fmt"
	"net/http"
)

// TransportError reports a failed fetch: the request could not be sent, the
// server answered with a non-2xx status, or the body was not valid JSON.
// It is fatal to the call that issued the request and is never retried.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("transport error: %s returned %d: %v", e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error: %s returned %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("transport error: %s", e.URL)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewStatusError builds a TransportError for a non-2xx response and attaches
// the matching sentinel so callers can use IsNotFound and friends.
func NewStatusError(url string, status int) *TransportError {
	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		sentinel = ErrUnauthorized
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimit
	case status >= 500:
		sentinel = ErrServerError
	default:
		sentinel = ErrBadRequest
	}
	return &TransportError{URL: url, StatusCode: status, Err: sentinel}
}

// MalformedRecordError reports a single record that could not be mapped.
// Collections drop the record and keep going.
type MalformedRecordError struct {
	Kind   string // "manga", "chapter", ...
	ID     string // may be empty when the id itself is missing
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed %s record: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("malformed %s record %s: %s", e.Kind, e.ID, e.Reason)
}

// Malformed is shorthand for building a MalformedRecordError.
func Malformed(kind, id, format string, args ...interface{}) *MalformedRecordError {
	return &MalformedRecordError{Kind: kind, ID: id, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedLinkError is the normal negative result of deep-link resolution.
type UnsupportedLinkError struct {
	URL    string
	Reason string
}

func (e *UnsupportedLinkError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported link: %s", e.URL)
	}
	return fmt.Sprintf("unsupported link %s: %s", e.URL, e.Reason)
}

// ConfigurationError reports a missing or invalid setting.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("configuration error: %s", e.Key)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
