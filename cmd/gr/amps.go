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
	"strings"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// runAmps dispatches `gr amps <list|exec>`. Amps are named external
// commands kept in the domain's [<domain>.amps] table (name -> command line);
// running arbitrary subprocesses is out of scope, so exec prints the
// resolved command line instead of invoking it.
func runAmps(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("amps requires a subcommand", "", "list, exec", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return ampsList(ctx, rest, globals)
	case "exec":
		return ampsExec(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown amps subcommand", sub, "list, exec", nil)
	}
}

func ampsList(ctx context.Context, args []string, globals GlobalFlags) error {
	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	if len(s.domain.Amps) == 0 {
		fmt.Println("no amps configured")
		return nil
	}
	t := table{Headers: []string{"name", "command"}}
	for name, cmd := range s.domain.Amps {
		t.Rows = append(t.Rows, []string{name, cmd})
	}
	return renderTable("plain", t)
}

func ampsExec(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) < 1 {
		return gitarerrors.NewConfigError("amps exec requires a name", "", "gr amps exec <name> [args...]", nil)
	}
	name, extra := args[0], args[1:]

	s, err := newSession(globals, "")
	if err != nil {
		return err
	}
	cmd, ok := s.domain.Amps[name]
	if !ok {
		return gitarerrors.NewConfigError("unknown amp", name, "run gr amps list to see configured amps", nil)
	}
	line := strings.TrimSpace(cmd + " " + strings.Join(extra, " "))
	fmt.Println(line)
	return nil
}
