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

// Package engine composes pkg/cache, pkg/httpclient, and pkg/throttle into
// GitAR's cached-request engine: compute the cache key, serve within-TTL
// entries, conditionally revalidate stale ones, or fetch live, updating
// the cache and rate-limit snapshot on every outcome. The three
// collaborators are constructor parameters rather than globals, so tests
// can substitute fakes for any one of them independently.
package engine

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/cache"
	"github.com/gitar-cli/gitar/pkg/httpclient"
	"github.com/gitar-cli/gitar/pkg/throttle"
)

// TTLFunc resolves the configured cache TTL for an API category. A zero
// duration means "no TTL floor, always revalidate".
type TTLFunc func(category string) time.Duration

// Engine is GitAR's cached-request engine.
type Engine struct {
	cache    *cache.Store
	http     *httpclient.Client
	throttle *throttle.Governor
	ttlFor   TTLFunc
	logger   *slog.Logger
	now      func() int64
}

// New builds an Engine from its three collaborators. store may be
// cache.Disabled() to bypass caching entirely when no cache_location is
// configured.
func New(store *cache.Store, client *httpclient.Client, governor *throttle.Governor, ttlFor TTLFunc, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if ttlFor == nil {
		ttlFor = func(string) time.Duration { return 0 }
	}
	return &Engine{
		cache:    store,
		http:     client,
		throttle: governor,
		ttlFor:   ttlFor,
		logger:   logger,
		now:      func() int64 { return time.Now().Unix() },
	}
}

// Fetch executes the cache-first decision procedure: serve a within-TTL
// entry, conditionally revalidate a stale one, or fetch live.
func (e *Engine) Fetch(ctx context.Context, req Request, override throttle.Override) (*Response, error) {
	key := cache.Key(req.Method, req.URL, req.Body, req.AuthDiscriminator)

	var entry *cache.Entry
	if e.cache.Enabled() {
		entry = e.cache.Get(req.Domain, req.Category, key)
	}

	if entry != nil && !req.Refresh {
		ttl := e.ttlFor(req.Category)
		if ttl > 0 && e.now()-entry.StoredAt/1000 < int64(ttl.Seconds()) {
			e.logger.Debug("fetch", "domain", req.Domain, "category", req.Category, "source", "cached")
			return &Response{Status: entry.Status, Headers: entry.Headers, Body: entry.Body, Source: SourceCached}, nil
		}
	}

	headers := cloneHeader(req.Headers)
	if entry != nil && entry.HasValidator() {
		if entry.ETag != "" {
			headers.Set("If-None-Match", entry.ETag)
		}
		if entry.LastModified != "" {
			headers.Set("If-Modified-Since", entry.LastModified)
		}
	}

	if d := e.throttle.Delay(req.Domain, override); d > 0 {
		e.throttle.Sleep(req.Domain, d)
	}

	resp, err := e.http.Execute(ctx, req.Method, req.URL, headers, req.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, gitarerrors.NewCancelledError("request cancelled", ctx.Err())
		}
		return nil, gitarerrors.NewNetworkError("request failed after retries", err.Error(), "check connectivity and retry", err)
	}

	e.throttle.Observe(req.Domain, resp.Headers)

	switch {
	case resp.Status == http.StatusNotModified:
		if entry == nil {
			return nil, gitarerrors.NewProviderError("304 Not Modified with no cached entry", "", "", nil)
		}
		storedAt := e.now() * 1000
		if e.cache.Enabled() {
			if err := e.cache.Touch(req.Domain, req.Category, key, entry, storedAt); err != nil {
				e.logger.Warn("cache touch failed", "domain", req.Domain, "category", req.Category, "error", err)
			}
		}
		e.logger.Debug("fetch", "domain", req.Domain, "category", req.Category, "source", "revalidated")
		return &Response{Status: entry.Status, Headers: entry.Headers, Body: entry.Body, Source: SourceRevalidated}, nil

	case resp.Status >= 200 && resp.Status < 300:
		newEntry := &cache.Entry{
			Status:       resp.Status,
			ETag:         resp.Headers.Get("ETag"),
			LastModified: resp.Headers.Get("Last-Modified"),
			StoredAt:     e.now() * 1000,
			Headers:      resp.Headers,
			Body:         resp.Body,
			TTLCategory:  req.Category,
		}
		if e.cache.Enabled() {
			if err := e.cache.Put(req.Domain, req.Category, key, newEntry); err != nil {
				e.logger.Warn("cache put failed", "domain", req.Domain, "category", req.Category, "error", err)
			}
		}
		e.logger.Debug("fetch", "domain", req.Domain, "category", req.Category, "source", "fresh")
		return &Response{Status: resp.Status, Headers: resp.Headers, Body: resp.Body, Source: SourceFresh}, nil

	default:
		return nil, classifyStatus(resp)
	}
}

func classifyStatus(resp *httpclient.Response) error {
	switch resp.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return gitarerrors.NewAuthError("authentication failed", string(resp.Body), "check api_token", nil)
	case http.StatusNotFound:
		return gitarerrors.NewNotFoundError("resource not found", string(resp.Body), "", nil)
	case http.StatusTooManyRequests:
		return gitarerrors.NewRateLimitedError("rate limited", string(resp.Body), "wait for reset and retry", nil)
	default:
		return gitarerrors.NewProviderError("provider returned an error response", string(resp.Body), "", nil)
	}
}

func cloneHeader(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vs := range h {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out[k] = cp
	}
	return out
}
