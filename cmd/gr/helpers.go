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
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/throttle"
)

// noOverride is the zero-value throttle override used by every
// single-object operation; only list verbs expose --throttle/--throttle-range.
var noOverride throttle.Override

// requireProjectAndID parses "<project> <id>" positional arguments shared
// by every get/close/merge/approve-style verb.
func requireProjectAndID(fs *flag.FlagSet, usage string) (project string, id int64, err error) {
	if fs.NArg() < 2 {
		return "", 0, gitarerrors.NewConfigError(usage+" requires a project and an id", "", "gr "+usage+" <group/project> <id>", nil)
	}
	project = fs.Arg(0)
	id, err = strconv.ParseInt(fs.Arg(1), 10, 64)
	if err != nil {
		return "", 0, gitarerrors.NewConfigError("invalid id", fs.Arg(1), "", err)
	}
	return project, id, nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// readFileArg reads path, or stdin when path is "-".
func readFileArg(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", gitarerrors.NewConfigError("reading stdin", "", "", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", gitarerrors.NewConfigError("reading file", path, "", err)
	}
	return string(data), nil
}
