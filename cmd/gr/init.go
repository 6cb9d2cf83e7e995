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
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/pelletier/go-toml/v2"

	"github.com/gitar-cli/gitar/internal/config"
	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/internal/ui"
)

type initFlags struct {
	force          bool
	nonInteractive bool
	host           string
	provider       string
	token          string
	cacheLocation  string
}

// runInit writes a starter domain table into gitar.toml, either
// interactively prompting for the provider/token/cache settings or,
// with -y, filling in sensible defaults.
func runInit(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "overwrite an existing domain table")
	fs.BoolVarP(&f.nonInteractive, "yes", "y", false, "non-interactive mode, use defaults")
	fs.StringVar(&f.host, "host", globals.Host, "domain to configure, e.g. gitlab.com")
	fs.StringVar(&f.provider, "provider", "gitlab", "provider: gitlab or github")
	fs.StringVar(&f.token, "token", "", "API token (left blank, falls back to <DOMAIN>_API_TOKEN at runtime)")
	fs.StringVar(&f.cacheLocation, "cache-location", "", "on-disk cache directory (defaults to <config dir>/cache)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return gitarerrors.NewConfigError("cannot create config directory", dir, "check directory permissions", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	key := strings.NewReplacer(".", "_", "/", "_").Replace(f.host)
	if _, exists := cfg.Domains[key]; exists && !f.force {
		return gitarerrors.NewConfigError("domain already configured", key, "use --force to overwrite", nil)
	}

	if f.cacheLocation == "" {
		f.cacheLocation = filepath.Join(dir, "cache")
	}

	reader := bufio.NewReader(os.Stdin)
	if !f.nonInteractive {
		ui.Header("GitAR Configuration")
		f.host = prompt(reader, "Host", f.host)
		f.provider = prompt(reader, "Provider (gitlab, github)", f.provider)
		f.token = prompt(reader, "API token (optional, can also be set via environment)", f.token)
		f.cacheLocation = prompt(reader, "Cache directory", f.cacheLocation)
	}

	path := filepath.Join(dir, "gitar.toml")
	if err := writeDomainTable(path, key, f); err != nil {
		return err
	}
	ui.Successf("wrote %s", path)
	fmt.Println()
	ui.SubHeader("Next steps:")
	fmt.Printf("  1. Set %s if you left the token blank\n", ui.DimText(strings.ToUpper(key)+"_API_TOKEN"))
	fmt.Printf("  2. Run '%s' to confirm the domain resolves\n", ui.Cyan.Sprint("gr pj get <group/project>"))
	return nil
}

// writeDomainTable reads any existing gitar.toml, replaces its key
// table (if present), and rewrites the whole file — mirroring the
// shadow-not-merge rule config.Resolve applies to project overrides.
func writeDomainTable(path, key string, f initFlags) error {
	root := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &root); err != nil {
			return gitarerrors.NewConfigError("malformed existing config", path, "fix syntax before running init again", err)
		}
	}
	root[key] = map[string]any{
		"provider":             f.provider,
		"api_token":            f.token,
		"cache_location":       f.cacheLocation,
		"rate_limit_threshold": 10,
	}
	out, err := toml.Marshal(root)
	if err != nil {
		return gitarerrors.NewConfigError("cannot encode config", "", "", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return gitarerrors.NewConfigError("cannot write config file", path, "check directory permissions", err)
	}
	return nil
}

func prompt(reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}
