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

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// runBr dispatches `gr br <mr|pj>`. Rather than shelling out to a
// browser, it prints the resolved web URL to stdout so the caller can
// pipe it to whatever opener their environment provides.
func runBr(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("br requires a subcommand", "", "mr, pj", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "mr":
		return brMr(ctx, rest, globals)
	case "pj":
		return brPj(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown br subcommand", sub, "mr, pj", nil)
	}
}

func brMr(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("br mr", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "br mr")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.GetMergeRequest(project, id)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	fmt.Println(mr.WebURL)
	return nil
}

func brPj(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("br pj", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("br pj requires a project", "", "gr br pj <group/project>", nil)
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
	fmt.Println("https://" + s.domain.Host + "/" + p.Path)
	return nil
}
