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

// runDk dispatches `gr dk <list|tags|image>` against a project's
// container registry.
func runDk(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("dk requires a subcommand", "", "list, tags, image", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return dkList(ctx, rest, globals)
	case "tags":
		return dkTags(ctx, rest, globals)
	case "image":
		return dkImage(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown dk subcommand", sub, "list, tags, image", nil)
	}
}

func dkList(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("dk list", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("dk list requires a project", "", "gr dk list <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListContainerRepos(project)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	repos, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("container_registry")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"name", "path"}}
	for _, r := range repos {
		t.Rows = append(t.Rows, []string{r.Name, r.Path})
	}
	return renderTable(lf.format, t)
}

func dkTags(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("dk tags", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return gitarerrors.NewConfigError("dk tags requires a project and a repository", "", "gr dk tags <group/project> <repo>", nil)
	}
	project, repo := fs.Arg(0), fs.Arg(1)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListContainerTags(project, repo)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	tags, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("repository_tags")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"name", "digest", "size_bytes", "pushed_at"}}
	for _, tg := range tags {
		t.Rows = append(t.Rows, []string{tg.Name, tg.Digest, strconv.FormatInt(tg.SizeBytes, 10), tg.PushedAt.Format("2006-01-02")})
	}
	return renderTable(lf.format, t)
}

func dkImage(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("dk image", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return gitarerrors.NewConfigError("dk image requires a project, a repository, and a tag", "", "gr dk image <group/project> <repo> <tag>", nil)
	}
	project, repo, tag := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ImageMetadata(project, repo, tag)
	if err != nil {
		return err
	}
	img, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"name", "digest", "size_bytes", "pushed_at"}}
	t.Rows = append(t.Rows, []string{img.Name, img.Digest, strconv.FormatInt(img.SizeBytes, 10), img.PushedAt.Format("2006-01-02")})
	return renderTable(*format, t)
}
