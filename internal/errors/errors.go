// Copyright 2026 GitAR Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package errors implements GitAR's typed error taxonomy: config, auth,
// network, rate_limited, not_found, provider, parse, cache, unsupported,
// cancelled. Every constructed error carries an exit code so the CLI
// layer can map errors to process exit status without a parallel
// switch statement.
package errors

import (
	"errors"
	"fmt"
)

// Category is one of the ten taxonomy buckets.
type Category string

const (
	Config      Category = "config"
	Auth        Category = "auth"
	Network     Category = "network"
	RateLimited Category = "rate_limited"
	NotFound    Category = "not_found"
	Provider    Category = "provider"
	Parse       Category = "parse"
	Cache       Category = "cache"
	Unsupported Category = "unsupported"
	Cancelled   Category = "cancelled"
)

// exitCodes maps each category to its process exit code. NotFound and
// Parse have no dedicated code in the external interface and fall
// through ExitCodeFor's default to 1, alongside Config.
var exitCodes = map[Category]int{
	Config:      1,
	Provider:    2,
	RateLimited: 3,
	Auth:        4,
	Network:     5,
	Cache:       6,
	Cancelled:   7,
	Unsupported: 8,
}

// Error is a typed, chained error with a hint for the human-facing
// one-line message and an underlying cause for the verbose chain.
type Error struct {
	category Category
	message  string
	detail   string
	hint     string
	cause    error
}

// Error satisfies the error interface. It returns the one-line
// human-facing message; callers who want the full chain use Chain().
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap enables errors.Is/errors.As across the cause chain.
func (e *Error) Unwrap() error { return e.cause }

// Category reports which of the ten taxonomy buckets this error belongs to.
func (e *Error) Category() Category { return e.category }

// ExitCode reports the process exit code assigned to this category.
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.category]; ok {
		return code
	}
	return 1
}

// Chain renders the full message/detail/hint/cause chain for --verbose output.
func (e *Error) Chain() string {
	s := e.message
	if e.detail != "" {
		s += "\n  detail: " + e.detail
	}
	if e.hint != "" {
		s += "\n  hint: " + e.hint
	}
	if e.cause != nil {
		s += "\n  cause: " + e.cause.Error()
	}
	return s
}

func newError(cat Category, message, detail, hint string, cause error) *Error {
	return &Error{category: cat, message: message, detail: detail, hint: hint, cause: cause}
}

// NewConfigError reports a missing key, duplicate key, or malformed config value.
func NewConfigError(message, detail, hint string, cause error) *Error {
	return newError(Config, message, detail, hint, cause)
}

// NewAuthError reports a missing token or a 401/403 response from a provider.
func NewAuthError(message, detail, hint string, cause error) *Error {
	return newError(Auth, message, detail, hint, cause)
}

// NewNetworkError reports a transport failure after the retry budget was exhausted.
func NewNetworkError(message, detail, hint string, cause error) *Error {
	return newError(Network, message, detail, hint, cause)
}

// NewRateLimitedError reports remaining<=threshold or an explicit 429.
func NewRateLimitedError(message, detail, hint string, cause error) *Error {
	return newError(RateLimited, message, detail, hint, cause)
}

// NewNotFoundError reports a 404 for a resource the caller named.
func NewNotFoundError(message, detail, hint string, cause error) *Error {
	return newError(NotFound, message, detail, hint, cause)
}

// NewProviderError reports any other non-success HTTP response with a parsed provider message.
func NewProviderError(message, detail, hint string, cause error) *Error {
	return newError(Provider, message, detail, hint, cause)
}

// NewParseError reports a response body that did not match the expected schema.
func NewParseError(message, detail, hint string, cause error) *Error {
	return newError(Parse, message, detail, hint, cause)
}

// NewCacheError reports a corrupt cache entry. Callers recover locally
// by treating the entry as absent.
func NewCacheError(message, detail, hint string, cause error) *Error {
	return newError(Cache, message, detail, hint, cause)
}

// NewUnsupportedError reports an operation unavailable for the selected provider.
func NewUnsupportedError(provider, op string) *Error {
	return newError(Unsupported,
		fmt.Sprintf("%s does not support %s", provider, op),
		"", "choose a provider that implements this operation", nil)
}

// NewCancelledError reports cooperative cancellation.
func NewCancelledError(message string, cause error) *Error {
	return newError(Cancelled, message, "", "", cause)
}

// As is a small helper mirroring errors.As for *Error, used by the CLI
// layer to recover category/exit-code information from an opaque error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// ExitCodeFor returns the exit code for any error: typed errors report
// their own code, everything else is a generic usage error (1).
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := As(err); ok {
		return e.ExitCode()
	}
	return 1
}
