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

import stderrors "errors"

var (
	As     = stderrors.As
	Is     = stderrors.Is
	Unwrap = stderrors.Unwrap
	New    = stderrors.New
)

var (
	ErrNotFound     = stderrors.New("resource not found")
	ErrUnauthorized = stderrors.New("unauthorized")
	ErrBadRequest   = stderrors.New("bad request")
	ErrServerError  = stderrors.New("server error")
	ErrRateLimit    = stderrors.New("rate limit exceeded")
	ErrInvalidInput = stderrors.New("invalid input")
	ErrNetworkIssue = stderrors.New("network connection issue")
)

func IsNotFound(err error) bool    { return Is(err, ErrNotFound) }
func IsRateLimited(err error) bool { return Is(err, ErrRateLimit) }
func IsServerError(err error) bool { return Is(err, ErrServerError) }

// IsTransport reports whether err is (or wraps) a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return As(err, &te)
}

// IsMalformedRecord reports whether err is (or wraps) a MalformedRecordError
func IsMalformedRecord(err error) bool {
	var me *MalformedRecordError
	return As(err, &me)
}

// IsUnsupportedLink reports whether err is (or wraps) an UnsupportedLinkError
func IsUnsupportedLink(err error) bool {
	var ue *UnsupportedLinkError
	return As(err, &ue)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return As(err, &ce)
}
