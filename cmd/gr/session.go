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

package main

import (
	"context"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/internal/config"
	"github.com/gitar-cli/gitar/pkg/cache"
	"github.com/gitar-cli/gitar/pkg/engine"
	"github.com/gitar-cli/gitar/pkg/httpclient"
	"github.com/gitar-cli/gitar/pkg/paginate"
	"github.com/gitar-cli/gitar/pkg/provider"
	"github.com/gitar-cli/gitar/pkg/throttle"
)

// session bundles the resolved configuration and live collaborators a
// verb-group file needs to build and drive a provider operation.
type session struct {
	domain   *config.Domain
	provider provider.Provider
	engine   *engine.Engine
	governor *throttle.Governor
	refresh  bool
	verbose  int
}

// newSession loads configuration, resolves host/group/project, and wires
// a cache/http/throttle/engine stack plus the matching provider adapter.
// project may be empty for operations that don't scope to a repository
// (my, tr, us).
func newSession(globals GlobalFlags, project string) (*session, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	group, name := splitProject(project)
	d, err := cfg.Resolve(globals.Host, group, name)
	if err != nil {
		return nil, err
	}
	if d.Provider != "gitlab" && d.Provider != "github" {
		return nil, gitarerrors.NewConfigError(
			"unknown provider for domain",
			d.Key+".provider = "+d.Provider,
			`set provider = "gitlab" or provider = "github"`,
			nil,
		)
	}
	if d.Token == "" {
		return nil, gitarerrors.NewAuthError(
			"no API token configured",
			d.Key,
			"set api_token in gitar.toml or export "+strings.ToUpper(d.Key)+"_API_TOKEN",
			nil,
		)
	}

	store := cache.Disabled()
	if d.CacheLocation != "" {
		store = cache.New(d.CacheLocation, globals.logger)
	}
	client := httpclient.New(httpclient.Options{Logger: globals.logger})
	governor := throttle.New(d.RateLimitThreshold)
	eng := engine.New(store, client, governor, d.TTLFor, globals.logger)

	var p provider.Provider
	switch d.Provider {
	case "gitlab":
		p = provider.NewGitLab(d.Key, d.APIBase, d.Token)
	case "github":
		p = provider.NewGitHub(d.Key, d.APIBase, d.Token)
	}

	return &session{domain: d, provider: p, engine: eng, governor: governor, refresh: globals.Refresh, verbose: globals.Verbose}, nil
}

// splitProject divides "group/subgroup/project" into its group prefix
// and leaf project name, the shape config.Resolve's override lookup
// expects. A bare project name (no slash) yields an empty group.
func splitProject(project string) (group, name string) {
	i := strings.LastIndex(project, "/")
	if i < 0 {
		return "", project
	}
	return project[:i], project[i+1:]
}

// runOp drives a single-object provider operation through the engine.
func runOp[T any](ctx context.Context, s *session, op provider.Op[T], override throttle.Override) (T, error) {
	op.Req.Refresh = s.refresh
	resp, err := s.engine.Fetch(ctx, op.Req, override)
	if err != nil {
		var zero T
		return zero, err
	}
	return op.Parse(resp.Body)
}

// runList drives a collection provider operation through the paginator,
// reusing the adapter's request (method, headers, domain, category) for
// every page and only swapping in the page's URL.
func runList[T any](ctx context.Context, s *session, op provider.ListOp[T], opts paginate.Options, override throttle.Override) ([]T, int, error) {
	base := op.Req
	fetch := func(ctx context.Context, pageURL string) (*engine.Response, error) {
		req := base
		req.URL = pageURL
		req.Refresh = s.refresh
		return s.engine.Fetch(ctx, req, override)
	}
	// Breached must key off the same domain identifier Observe records
	// under (the config key, e.g. "gitlab_com"), not the hostname —
	// engine.Fetch calls Observe(req.Domain, ...) where req.Domain is the
	// provider adapter's domainKey, set from config.Domain.Key.
	breached := func() bool { return s.governor.Breached(s.domain.Key) }

	if s.verbose > 0 && !opts.NumPagesOnly {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("fetching pages"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		opts.OnPage = func() { _ = bar.Add(1) }
		defer bar.Finish()
	}

	result, err := paginate.Run(ctx, base.URL, fetch, opts, breached)
	if err != nil {
		return nil, 0, err
	}
	if opts.NumPagesOnly {
		return nil, result.TotalPages, nil
	}

	var out []T
	for _, page := range result.Pages {
		items, err := op.Parse(page.Body)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, items...)
	}
	return out, result.TotalPages, nil
}
