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

package config

import (
	"os"
	"strings"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// Resolve looks up host (a raw hostname like "gitlab.com" or an
// already-canonicalized config key), fills in the API token from the
// environment when the config file didn't set one, and — when group
// and project are both non-empty — replaces MrDefaults wholesale with
// the matching project override, never merging the two field by field.
func (c *Config) Resolve(host, group, project string) (*Domain, error) {
	key := canonicalize(host)
	d, ok := c.Domains[key]
	if !ok {
		return nil, gitarerrors.NewConfigError(
			"unknown domain",
			host,
			"add a "+key+".toml file or a ["+key+"] table to gitar.toml",
			nil,
		)
	}
	resolved := *d
	if resolved.Token == "" {
		resolved.Token = os.Getenv(envTokenName(key))
	}
	if group != "" && project != "" {
		overrideKey := key + "/" + group + "/" + project
		if override, ok := c.ProjectOverrides[overrideKey]; ok {
			resolved.MrDefaults = override
		}
	}
	return &resolved, nil
}

// envTokenName derives the fallback environment variable for an
// already-canonicalized domain key, e.g. "gitlab_com" -> "GITLAB_COM_API_TOKEN".
func envTokenName(domainKey string) string {
	return strings.ToUpper(domainKey) + "_API_TOKEN"
}
