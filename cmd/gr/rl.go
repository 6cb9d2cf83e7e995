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

// runRl dispatches `gr rl <list|assets>`.
func runRl(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("rl requires a subcommand", "", "list, assets", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return rlList(ctx, rest, globals)
	case "assets":
		return rlAssets(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown rl subcommand", sub, "list, assets", nil)
	}
}

func rlList(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("rl list", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("rl list requires a project", "", "gr rl list <group/project>", nil)
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
	releases, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("release")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}
	t := table{Headers: []string{"tag", "name", "created_at", "assets"}}
	for _, r := range releases {
		t.Rows = append(t.Rows, []string{r.Tag, r.Name, r.CreatedAt.Format("2006-01-02"), strconv.Itoa(len(r.Assets))})
	}
	return renderTable(lf.format, t)
}

func rlAssets(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("rl assets", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return gitarerrors.NewConfigError("rl assets requires a project and a tag", "", "gr rl assets <group/project> <tag>", nil)
	}
	project, tag := fs.Arg(0), fs.Arg(1)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListReleaseAssets(project, tag)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	assets, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("release")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"name", "size_bytes", "download_url"}}
	for _, a := range assets {
		t.Rows = append(t.Rows, []string{a.Name, strconv.FormatInt(a.SizeBytes, 10), a.DownloadURL})
	}
	return renderTable(lf.format, t)
}
