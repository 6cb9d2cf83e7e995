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

package provider

import (
	"time"

	"github.com/gitar-cli/gitar/pkg/domain"
)

// parseTime normalizes a provider timestamp to RFC3339 UTC. Empty or
// malformed input returns the zero time rather than an error —
// timestamps are advisory display fields, not identifiers.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// gitlabState maps GitLab's opened/closed/merged/locked vocabulary onto
// the domain-neutral MrState.
func gitlabState(s string) domain.MrState {
	switch s {
	case "merged":
		return domain.MrMerged
	case "closed", "locked":
		return domain.MrClosed
	default:
		return domain.MrOpen
	}
}

// githubPRState infers merged-state from merged_at rather than trusting
// state=closed alone: a merged PR still reports state=closed, so
// merged_at is the only reliable signal.
func githubPRState(state string, mergedAt *string) domain.MrState {
	if mergedAt != nil && *mergedAt != "" {
		return domain.MrMerged
	}
	if state == "closed" {
		return domain.MrClosed
	}
	return domain.MrOpen
}
