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
	"strconv"

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// runTr dispatches `gr tr <language>`, a host-scoped query with no
// project argument. GitLab has no trending-repositories endpoint, so
// the GitLab adapter reports this unsupported.
func runTr(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("tr", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("tr requires a language", "", "gr tr <language>", nil)
	}
	lang := fs.Arg(0)

	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	op, err := s.provider.ListTrendingByLanguage(lang)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	repos, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("single_page")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"name", "path", "language", "stars", "description"}}
	for _, r := range repos {
		t.Rows = append(t.Rows, []string{r.Name, r.Path, r.Language, strconv.FormatInt(r.Stars, 10), r.Description})
	}
	return renderTable(lf.format, t)
}
