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

// runUs dispatches `gr us get <username>`. Users are host-scoped, not
// project-scoped, so newSession is called with an empty project.
func runUs(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 || args[0] != "get" {
		return gitarerrors.NewConfigError("us requires get <username>", "", "gr us get <username>", nil)
	}
	fs := flag.NewFlagSet("us get", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("us get requires a username", "", "gr us get <username>", nil)
	}
	username := fs.Arg(0)

	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	op, err := s.provider.GetUser(username)
	if err != nil {
		return err
	}
	u, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"id", "username"}}
	t.Rows = append(t.Rows, []string{strconv.FormatInt(u.ID, 10), u.Username})
	return renderTable(*format, t)
}
