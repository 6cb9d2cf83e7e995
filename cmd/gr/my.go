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
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// runMy dispatches `gr my <merge-requests|projects|starred>`, the
// authenticated user's own view across every repo on the domain rather
// than a single project.
func runMy(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("my requires a subcommand", "", "merge-requests, projects, starred", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "merge-requests":
		return myMergeRequests(ctx, rest, globals)
	case "projects":
		return myProjects(ctx, rest, globals)
	case "starred":
		return myStarred(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown my subcommand", sub, "merge-requests, projects, starred", nil)
	}
}

func myMergeRequests(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("my merge-requests", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	op, err := s.provider.MyMergeRequests()
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	mrs, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("merge_request")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}
	return renderTable(lf.format, mrTable(mrs))
}

func myProjects(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("my projects", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	op, err := s.provider.MyProjects()
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	projects, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("project")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}
	t := table{Headers: []string{"id", "namespace", "name", "path"}}
	for _, p := range projects {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(p.ID, 10), p.Namespace, p.Name, p.Path})
	}
	return renderTable(lf.format, t)
}

func myStarred(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("my starred", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	op, err := s.provider.MyStarred()
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	projects, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("project")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}
	t := table{Headers: []string{"id", "namespace", "name", "path"}}
	for _, p := range projects {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(p.ID, 10), p.Namespace, p.Name, p.Path})
	}
	return renderTable(lf.format, t)
}
