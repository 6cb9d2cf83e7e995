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

// runPj dispatches `gr pj <get|members|tags>`.
func runPj(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("pj requires a subcommand", "", "get, members, tags", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "get":
		return pjGet(ctx, rest, globals)
	case "members":
		return pjMembers(ctx, rest, globals)
	case "tags":
		return pjTags(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown pj subcommand", sub, "get, members, tags", nil)
	}
}

func pjGet(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pj get", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pj get requires a project", "", "gr pj get <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.GetProject(project)
	if err != nil {
		return err
	}
	p, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"id", "namespace", "name", "path", "default_branch", "private"}}
	t.Rows = append(t.Rows, []string{
		strconv.FormatInt(p.ID, 10), p.Namespace, p.Name, p.Path, p.DefaultBranch, strconv.FormatBool(p.Private),
	})
	return renderTable(*format, t)
}

func pjMembers(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pj members", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pj members requires a project", "", "gr pj members <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListMembers(project)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	members, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("project")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"id", "username"}}
	for _, m := range members {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(m.ID, 10), m.Username})
	}
	return renderTable(lf.format, t)
}

// pjTags lists a project's tagged releases. Git hosts expose repository
// tags and release tags as overlapping but distinct sets; GitAR only
// fetches releases, so this reports the subset that has a release
// attached rather than every lightweight tag in the repository.
func pjTags(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pj tags", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pj tags requires a project", "", "gr pj tags <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListReleases(project)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	releases, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("release")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"tag", "name", "created_at"}}
	for _, r := range releases {
		t.Rows = append(t.Rows, []string{r.Tag, r.Name, r.CreatedAt.Format("2006-01-02")})
	}
	return renderTable(lf.format, t)
}
