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
	"runtime"
	"strings"
	"time"
)

// ErrorCategory helps classify different types of errors
type ErrorCategory string

const (
	CategoryNetwork     ErrorCategory = "network"
	CategoryProvider    ErrorCategory = "provider"
	CategoryParser      ErrorCategory = "parsing"
	CategoryValidation  ErrorCategory = "validation"
	CategoryNotFound    ErrorCategory = "not_found"
	CategoryRateLimit   ErrorCategory = "rate_limit"
	CategoryUnsupported ErrorCategory = "unsupported"
	CategoryConfig      ErrorCategory = "configuration"
	CategoryUnknown     ErrorCategory = "unknown"
)

// FunctionCall is one hop of the call chain an error travelled through
type FunctionCall struct {
	Function  string    `json:"function"`
	ShortName string    `json:"short_name"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackedError wraps errors with call-site tracking and context
type TrackedError struct {
	Original    error                  `json:"original_error"`
	CallChain   []FunctionCall         `json:"call_chain"`
	Context     map[string]interface{} `json:"context,omitempty"`
	UserMessage string                 `json:"user_message,omitempty"`
	Category    ErrorCategory          `json:"category"`
}

func (e *TrackedError) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if e.Original != nil {
		return e.Original.Error()
	}
	return "unknown error"
}

func (e *TrackedError) Unwrap() error {
	return e.Original
}

// GetFunctionChain returns the call path as a string
func (e *TrackedError) GetFunctionChain() string {
	names := make([]string, len(e.CallChain))
	for i, call := range e.CallChain {
		names[i] = call.ShortName
	}
	return strings.Join(names, " → ")
}

// ErrorBuilder provides a fluent interface for building tracked errors
type ErrorBuilder struct {
	err *TrackedError
}

// Track wraps any error with call-site tracking and returns a builder.
// Tracking an already tracked error appends the caller to its chain.
func Track(err error) *ErrorBuilder {
	if err == nil {
		return nil
	}

	call := callerFrame()

	var tracked *TrackedError
	if As(err, &tracked) {
		tracked.CallChain = append(tracked.CallChain, call)
		return &ErrorBuilder{err: tracked}
	}

	return &ErrorBuilder{err: &TrackedError{
		Original:  err,
		CallChain: []FunctionCall{call},
		Context:   make(map[string]interface{}),
		Category:  classifyError(err),
	}}
}

// Trackf creates a new formatted error with tracking
func Trackf(format string, args ...interface{}) *ErrorBuilder {
	return Track(fmt.Errorf(format, args...))
}

// WithContext adds context data to the error
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}
	b.err.Context[key] = value
	return b
}

// WithMessage sets a user-friendly message
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}
	b.err.UserMessage = message
	return b
}

// WithMessagef sets a formatted user-friendly message
func (b *ErrorBuilder) WithMessagef(format string, args ...interface{}) *ErrorBuilder {
	return b.WithMessage(fmt.Sprintf(format, args...))
}

// AsCategory sets the error category
func (b *ErrorBuilder) AsCategory(category ErrorCategory) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}
	b.err.Category = category
	return b
}

func (b *ErrorBuilder) AsNetwork() *ErrorBuilder    { return b.AsCategory(CategoryNetwork) }
func (b *ErrorBuilder) AsParser() *ErrorBuilder     { return b.AsCategory(CategoryParser) }
func (b *ErrorBuilder) AsValidation() *ErrorBuilder { return b.AsCategory(CategoryValidation) }
func (b *ErrorBuilder) AsConfig() *ErrorBuilder     { return b.AsCategory(CategoryConfig) }

// AsProvider marks the error as provider-related
func (b *ErrorBuilder) AsProvider(providerID string) *ErrorBuilder {
	return b.AsCategory(CategoryProvider).WithContext("provider_id", providerID)
}

// Error returns the tracked error
func (b *ErrorBuilder) Error() error {
	if b == nil || b.err == nil {
		return nil
	}
	return b.err
}

// GetCategory returns the category of a tracked error, or classifies a plain one
func GetCategory(err error) ErrorCategory {
	var tracked *TrackedError
	if As(err, &tracked) {
		return tracked.Category
	}
	return classifyError(err)
}

// GetContext returns the context map of a tracked error
func GetContext(err error) map[string]interface{} {
	var tracked *TrackedError
	if As(err, &tracked) {
		return tracked.Context
	}
	return map[string]interface{}{}
}

// callerFrame finds the first frame outside this package
func callerFrame() FunctionCall {
	for i := 2; i < 12; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "pkg/errors/") {
			continue
		}

		name := "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			name = fn.Name()
		}
		return FunctionCall{
			Function:  name,
			ShortName: shortFunctionName(name),
			File:      baseName(file),
			Line:      line,
			Timestamp: time.Now(),
		}
	}
	return FunctionCall{Function: "unknown", ShortName: "unknown", File: "unknown", Timestamp: time.Now()}
}

func shortFunctionName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	if idx := strings.Index(fullName, "."); idx != -1 {
		return fullName[idx+1:]
	}
	return fullName
}

func baseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

func classifyError(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsUnsupportedLink(err):
		return CategoryUnsupported
	case IsConfiguration(err):
		return CategoryConfig
	case IsMalformedRecord(err):
		return CategoryParser
	case IsNotFound(err):
		return CategoryNotFound
	case IsRateLimited(err):
		return CategoryRateLimit
	case IsTransport(err):
		return CategoryNetwork
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"dial tcp", "connection refused", "no such host", "connection reset", "tls", "timeout"} {
		if strings.Contains(errStr, pattern) {
			return CategoryNetwork
		}
	}
	for _, pattern := range []string{"json", "unmarshal", "invalid character", "unexpected end"} {
		if strings.Contains(errStr, pattern) {
			return CategoryParser
		}
	}
	return CategoryUnknown
}
