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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

const mainConfigFile = "gitar.toml"

// Dir resolves the configuration directory: $XDG_CONFIG_HOME/gitar,
// falling back to $HOME/.config/gitar.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitar"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", gitarerrors.NewConfigError(
			"cannot determine home directory",
			err.Error(),
			"set XDG_CONFIG_HOME or HOME",
			err,
		)
	}
	return filepath.Join(home, ".config", "gitar"), nil
}

// canonicalize turns a hostname into the underscore form used for
// sibling filenames and environment variable names: dots and slashes
// become underscores.
func canonicalize(s string) string {
	r := strings.NewReplacer(".", "_", "/", "_")
	return r.Replace(s)
}

// Load reads gitar.toml plus its sibling <domain>.toml and
// <domain>_<group>_<project>.toml files from dir and merges them into
// a Config. A missing directory or missing main file is not an error —
// callers fall back entirely to environment variables at Resolve time.
//
// Per-domain sibling files are unwrapped: github_com.toml's own
// top-level keys ARE github.com's domain table, the same fields
// gitar.toml would nest under a [github_com] header. Project override
// files are matched by the longest known domain key prefix, so a
// domain must be named in gitar.toml (or have its own <domain>.toml)
// before its per-project override files can be recognized.
func Load(dir string) (*Config, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return &Config{Domains: map[string]*Domain{}, ProjectOverrides: map[string]MrDefaults{}}, nil
	}
	if err != nil {
		return nil, gitarerrors.NewConfigError("cannot read config directory", err.Error(), "", err)
	}

	var tomlFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			tomlFiles = append(tomlFiles, e.Name())
		}
	}
	sort.Strings(tomlFiles)

	mergedRaw := map[string]any{} // domainKey -> domain table
	var seen []fileKeys
	knownDomains := map[string]bool{}

	mainPath := filepath.Join(dir, mainConfigFile)
	if _, err := os.Stat(mainPath); err == nil {
		raw, keys, err := decodeFile(mainPath)
		if err != nil {
			return nil, err
		}
		if err := checkDuplicates(seen, fileKeys{path: mainPath, keys: keys}); err != nil {
			return nil, err
		}
		seen = append(seen, fileKeys{path: mainPath, keys: keys})
		for k := range raw {
			knownDomains[k] = true
		}
		mergeInto(mergedRaw, raw)
	}

	var remaining []string
	for _, name := range tomlFiles {
		if name == mainConfigFile {
			continue
		}
		remaining = append(remaining, name)
	}

	// First, any file whose whole stem is already a known domain is an
	// unwrapped per-domain sibling: fold its top level directly under
	// that domain key so project-override matching below sees every
	// domain gitar.toml or a sibling file has introduced.
	var unclassified []string
	for _, name := range remaining {
		stem := strings.TrimSuffix(name, ".toml")
		if knownDomains[stem] {
			if err := mergeDomainFile(mergedRaw, &seen, dir, name, stem); err != nil {
				return nil, err
			}
			continue
		}
		unclassified = append(unclassified, name)
	}

	overrides := map[string]MrDefaults{}
	for _, name := range unclassified {
		stem := strings.TrimSuffix(name, ".toml")
		domainKey, group, project, isOverride := splitProjectOverride(stem, knownDomains)
		if isOverride {
			raw, _, err := decodeFile(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			overrides[domainKey+"/"+group+"/"+project] = decodeMrDefaults(raw["mr_defaults"])
			continue
		}
		// Not a recognized override and not a previously known domain:
		// treat the whole stem as introducing a new domain.
		knownDomains[stem] = true
		if err := mergeDomainFile(mergedRaw, &seen, dir, name, stem); err != nil {
			return nil, err
		}
	}

	domains, err := decodeDomains(mergedRaw)
	if err != nil {
		return nil, err
	}
	return &Config{Domains: domains, ProjectOverrides: overrides}, nil
}

// splitProjectOverride reports whether stem matches
// "<domainKey>_<group>_<project>" for some already-known domain key,
// preferring the longest matching prefix.
func splitProjectOverride(stem string, knownDomains map[string]bool) (domainKey, group, project string, ok bool) {
	best := ""
	for d := range knownDomains {
		if strings.HasPrefix(stem, d+"_") && len(d) > len(best) {
			best = d
		}
	}
	if best == "" {
		return "", "", "", false
	}
	rest := strings.TrimPrefix(stem, best+"_")
	parts := strings.Split(rest, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	return best, parts[0], parts[1], true
}

// mergeDomainFile decodes a <domain>.toml sibling and folds its
// top-level keys into mergedRaw[domainKey], duplicate-key-checked
// against every file already processed.
func mergeDomainFile(mergedRaw map[string]any, seen *[]fileKeys, dir, name, domainKey string) error {
	path := filepath.Join(dir, name)
	raw, rawKeys, err := decodeFile(path)
	if err != nil {
		return err
	}
	prefixed := make([]string, len(rawKeys))
	for i, k := range rawKeys {
		prefixed[i] = domainKey + "." + k
	}
	if err := checkDuplicates(*seen, fileKeys{path: path, keys: prefixed}); err != nil {
		return err
	}
	*seen = append(*seen, fileKeys{path: path, keys: prefixed})

	existing, _ := mergedRaw[domainKey].(map[string]any)
	if existing == nil {
		existing = map[string]any{}
	}
	mergeInto(existing, raw)
	mergedRaw[domainKey] = existing
	return nil
}

func decodeFile(path string) (map[string]any, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, gitarerrors.NewConfigError("cannot read config file", err.Error(), fmt.Sprintf("check %s", path), err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, gitarerrors.NewConfigError("malformed config file", err.Error(), fmt.Sprintf("fix syntax in %s", path), err)
	}
	return raw, leafKeys("", raw), nil
}

type fileKeys struct {
	path string
	keys []string
}

// leafKeys walks a decoded TOML table and returns every fully-qualified
// dotted leaf path, so two files setting the same key can be detected
// regardless of which table it's nested under.
func leafKeys(prefix string, v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		if prefix == "" {
			return nil
		}
		return []string{prefix}
	}
	var out []string
	for k, sub := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		out = append(out, leafKeys(path, sub)...)
	}
	return out
}

// checkDuplicates reports a fatal config error when candidate sets any
// key already set by a previously loaded file. Project override files
// are excluded from this check entirely — they shadow, never merge.
func checkDuplicates(seen []fileKeys, candidate fileKeys) error {
	for _, prior := range seen {
		for _, k := range candidate.keys {
			for _, pk := range prior.keys {
				if k == pk {
					return gitarerrors.NewConfigError(
						"duplicate configuration key",
						fmt.Sprintf("key %q set in both %s and %s", k, prior.path, candidate.path),
						"remove the key from one of the two files",
						nil,
					)
				}
			}
		}
	}
	return nil
}

// mergeInto merges src's top-level tables into dst in place.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		existing, ok := dst[k]
		if !ok {
			dst[k] = v
			continue
		}
		existingMap, eok := existing.(map[string]any)
		srcMap, sok := v.(map[string]any)
		if eok && sok {
			mergeInto(existingMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

func decodeDomains(raw map[string]any) (map[string]*Domain, error) {
	out := map[string]*Domain{}
	for key, v := range raw {
		tbl, ok := v.(map[string]any)
		if !ok {
			continue
		}
		host := stringOf(tbl["host"])
		if host == "" {
			host = strings.ReplaceAll(key, "_", ".")
		}
		d := &Domain{
			Key:                 key,
			Host:                host,
			Provider:            stringOf(tbl["provider"]),
			APIBase:             stringOf(tbl["api_base"]),
			Token:               stringOf(tbl["api_token"]),
			CacheLocation:       stringOf(tbl["cache_location"]),
			RateLimitThreshold:  intOf(tbl["rate_limit_threshold"], defaultRateLimitThreshold),
			ThrottleMs:          intOf(tbl["throttle_ms"], defaultThrottleMs),
			ThrottleRangeLowMs:  0,
			ThrottleRangeHighMs: 0,
			TTL:                 map[string]time.Duration{},
			MaxPages:            map[string]int{},
		}
		if rng, ok := tbl["throttle_range_ms"].([]any); ok && len(rng) == 2 {
			d.ThrottleRangeLowMs = intOf(rng[0], 0)
			d.ThrottleRangeHighMs = intOf(rng[1], 0)
		}
		if ttl, ok := tbl["ttl"].(map[string]any); ok {
			for cat, dur := range ttl {
				parsed, err := time.ParseDuration(stringOf(dur))
				if err != nil {
					return nil, gitarerrors.NewConfigError(
						"invalid ttl value",
						fmt.Sprintf("%s.ttl.%s = %v", key, cat, dur),
						"use a Go duration string like \"5m\" or \"30s\"",
						err,
					)
				}
				d.TTL[cat] = parsed
			}
		}
		if mp, ok := tbl["max_pages"].(map[string]any); ok {
			for cat, n := range mp {
				d.MaxPages[cat] = intOf(n, 0)
			}
		}
		d.MrDefaults = decodeMrDefaults(tbl["mr_defaults"])
		if amps, ok := tbl["amps"].(map[string]any); ok {
			d.Amps = make(map[string]string, len(amps))
			for name, cmd := range amps {
				d.Amps[name] = stringOf(cmd)
			}
		}
		out[key] = d
	}
	return out, nil
}

func decodeMrDefaults(v any) MrDefaults {
	tbl, ok := v.(map[string]any)
	if !ok {
		return MrDefaults{}
	}
	return MrDefaults{
		State:    stringOf(tbl["state"]),
		Author:   stringOf(tbl["author"]),
		Assignee: stringOf(tbl["assignee"]),
	}
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func intOf(v any, fallback int) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return fallback
	}
}
