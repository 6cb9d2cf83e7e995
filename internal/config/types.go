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

// Package config resolves GitAR's TOML configuration: a main file plus
// per-domain and per-project sibling files, merged with duplicate-key
// detection, falling back to environment variables for tokens and
// disabling the cache when no location is configured.
package config

import "time"

const (
	defaultRateLimitThreshold = 10
	defaultThrottleMs         = 0
)

// defaultTTL is used for any category the config doesn't name explicitly.
var defaultTTL = map[string]time.Duration{
	"merge_request":      2 * time.Minute,
	"project":            1 * time.Hour,
	"pipeline":           30 * time.Second,
	"release":            1 * time.Hour,
	"container_registry": 10 * time.Minute,
	"repository_tags":    10 * time.Minute,
	"single_page":        5 * time.Minute,
}

var defaultMaxPages = map[string]int{
	"merge_request":      0,
	"pipeline":           0,
	"repository_tags":    10,
	"container_registry": 10,
}

// MrDefaults carries default list filters for `gr mr`, either set
// domain-wide or shadowed per project.
type MrDefaults struct {
	State    string
	Author   string
	Assignee string
}

// Domain is one domain's merged configuration table, keyed by its
// canonicalized name (e.g. "gitlab_com").
type Domain struct {
	Key                 string
	Host                string // actual hostname, e.g. "gitlab.com"
	Provider            string // "gitlab" or "github"
	APIBase             string
	Token               string
	CacheLocation       string
	RateLimitThreshold  int
	ThrottleMs          int
	ThrottleRangeLowMs  int
	ThrottleRangeHighMs int
	TTL                 map[string]time.Duration
	MaxPages            map[string]int
	MrDefaults          MrDefaults
	Amps                map[string]string
}

// Config is the fully merged, not-yet-resolved configuration: every
// domain table plus the raw project override tables keyed by
// "<domain>/<group>/<project>", applied at Resolve time rather than
// merge time.
type Config struct {
	Domains          map[string]*Domain
	ProjectOverrides map[string]MrDefaults
}

// TTLFor returns d's TTL for category, falling back to the package
// default when the domain doesn't name one.
func (d *Domain) TTLFor(category string) time.Duration {
	if d.TTL != nil {
		if v, ok := d.TTL[category]; ok {
			return v
		}
	}
	return defaultTTL[category]
}

// MaxPagesFor returns d's page cap for category, falling back to the
// package default (0 meaning unbounded) when the domain doesn't name one.
func (d *Domain) MaxPagesFor(category string) int {
	if d.MaxPages != nil {
		if v, ok := d.MaxPages[category]; ok {
			return v
		}
	}
	return defaultMaxPages[category]
}
