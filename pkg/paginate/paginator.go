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

// Package paginate drives GitAR's cursor/link pagination: sequential
// Link-header following, bounded parallel fan-out when a "last" rel is
// present, a --num-pages short-circuit, and a ?page=N fallback for
// endpoints that omit Link headers. Parallel fan-out uses
// golang.org/x/sync/errgroup with SetLimit, the same bounded-concurrency
// primitive a GitHub API proxy cache (kubernetes-test-infra's ghcache,
// via x/sync/semaphore) uses to cap outbound requests, so the first
// worker error cancels the group's context and in-flight HTTP attempts
// observe it at the transport boundary.
package paginate

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/engine"
)

const defaultWorkers = 4

// Fetcher executes one page request against pageURL. Implemented by
// closures over pkg/engine.Engine.Fetch in production, stubbed in tests.
type Fetcher func(ctx context.Context, pageURL string) (*engine.Response, error)

// Options bounds a pagination run.
type Options struct {
	FromPage     int // first page to fetch, default 1
	ToPage       int // last page to fetch, 0 = unbounded
	MaxPages     int // per-category page cap, 0 = unbounded
	Workers      int // parallel fan-out width, default 4
	NumPagesOnly bool

	// OnPage, if set, is invoked once per fetched page (including the
	// first), from whichever goroutine completed that page. Callers
	// driving a progress indicator off fan-out must make it safe for
	// concurrent use.
	OnPage func()
}

func (o Options) notify() {
	if o.OnPage != nil {
		o.OnPage()
	}
}

// Result is a pagination run's output: pages in strictly ascending order,
// or just a page count when Options.NumPagesOnly is set.
type Result struct {
	Pages      []*engine.Response
	TotalPages int
}

func (o Options) normalize() Options {
	if o.FromPage <= 0 {
		o.FromPage = 1
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	return o
}

// upperBound returns the last page this run may fetch, honoring ToPage
// and MaxPages (whichever is tighter), or 0 for "unbounded".
func (o Options) upperBound() int {
	bound := o.ToPage
	if o.MaxPages > 0 {
		capped := o.FromPage + o.MaxPages - 1
		if bound == 0 || capped < bound {
			bound = capped
		}
	}
	return bound
}

// Run executes a pagination pass starting at firstURL. breached reports
// whether the domain's rate-limit threshold has been hit (pkg/throttle's
// Governor.Breached); when true, Run aborts remaining pages with a typed
// rate-limited error instead of fetching them.
func Run(ctx context.Context, firstURL string, fetch Fetcher, opts Options, breached func() bool) (*Result, error) {
	opts = opts.normalize()

	firstPageURL := firstURL
	if opts.FromPage > 1 {
		u, err := withPage(firstURL, opts.FromPage)
		if err != nil {
			return nil, gitarerrors.NewParseError("invalid page URL", err.Error(), "", err)
		}
		firstPageURL = u
	}

	if breached != nil && breached() {
		return nil, gitarerrors.NewRateLimitedError("rate limit threshold reached", "", "wait for reset and retry", nil)
	}

	first, err := fetch(ctx, firstPageURL)
	if err != nil {
		return nil, err
	}
	opts.notify()

	lnk := parseLinkHeader(first.Headers)

	if opts.NumPagesOnly {
		total := opts.FromPage
		if n, ok := pageParam(lnk.last); ok {
			total = n
		}
		return &Result{TotalPages: total}, nil
	}

	if lastPage, ok := pageParam(lnk.last); ok && lastPage > opts.FromPage {
		total := lastPage
		if bound := opts.upperBound(); bound > 0 && bound < total {
			total = bound
		}
		rest, err := fanOut(ctx, fetch, firstURL, opts.FromPage+1, total, opts.Workers, breached, opts.OnPage)
		if err != nil {
			return nil, err
		}
		return &Result{Pages: append([]*engine.Response{first}, rest...)}, nil
	}

	if lnk.next == "" {
		rest, err := sequentialByPageParam(ctx, fetch, firstURL, opts.FromPage+1, opts.upperBound(), breached, opts.OnPage)
		if err != nil {
			return nil, err
		}
		return &Result{Pages: append([]*engine.Response{first}, rest...)}, nil
	}

	pages := []*engine.Response{first}
	current := lnk.next
	page := opts.FromPage + 1
	bound := opts.upperBound()
	for current != "" {
		if bound > 0 && page > bound {
			break
		}
		if breached != nil && breached() {
			return nil, gitarerrors.NewRateLimitedError("rate limit threshold reached mid-pagination", "", "no further pages fetched", nil)
		}
		resp, err := fetch(ctx, current)
		if err != nil {
			return nil, err
		}
		opts.notify()
		pages = append(pages, resp)
		next := parseLinkHeader(resp.Headers)
		current = next.next
		page++
	}
	return &Result{Pages: pages}, nil
}

// fanOut fetches pages [from, to] (inclusive) in parallel, bounded by
// workers concurrent requests, and returns them in ascending page order
// regardless of completion order.
func fanOut(ctx context.Context, fetch Fetcher, baseURL string, from, to, workers int, breached func() bool, onPage func()) ([]*engine.Response, error) {
	if to < from {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	collected := make(map[int]*engine.Response, to-from+1)

	for page := from; page <= to; page++ {
		page := page
		g.Go(func() error {
			if breached != nil && breached() {
				return gitarerrors.NewRateLimitedError("rate limit threshold reached mid-pagination", "", "no further pages fetched", nil)
			}
			pageURL, err := withPage(baseURL, page)
			if err != nil {
				return gitarerrors.NewParseError("invalid page URL", err.Error(), "", err)
			}
			resp, err := fetch(gctx, pageURL)
			if err != nil {
				return err
			}
			mu.Lock()
			collected[page] = resp
			mu.Unlock()
			if onPage != nil {
				onPage()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ordered := make([]*engine.Response, 0, len(collected))
	pages := make([]int, 0, len(collected))
	for p := range collected {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	for _, p := range pages {
		ordered = append(ordered, collected[p])
	}
	return ordered, nil
}

// sequentialByPageParam is the ?page=N fallback for endpoints that omit
// Link headers entirely, terminated by an empty body.
func sequentialByPageParam(ctx context.Context, fetch Fetcher, baseURL string, from, bound int, breached func() bool, onPage func()) ([]*engine.Response, error) {
	var pages []*engine.Response
	for page := from; bound == 0 || page <= bound; page++ {
		if breached != nil && breached() {
			return nil, gitarerrors.NewRateLimitedError("rate limit threshold reached mid-pagination", "", "no further pages fetched", nil)
		}
		pageURL, err := withPage(baseURL, page)
		if err != nil {
			return nil, gitarerrors.NewParseError("invalid page URL", err.Error(), "", err)
		}
		resp, err := fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		if len(resp.Body) == 0 {
			break
		}
		pages = append(pages, resp)
		if onPage != nil {
			onPage()
		}
	}
	return pages, nil
}
