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

package domain

import "time"

// CreateMrInput is the provider-neutral payload for mr create.
type CreateMrInput struct {
	Title       string
	Description string
	Source      string
	Target      string
	Draft       bool
	Assignees   []string
}

// UpdateMrPatch carries only the fields a caller wants changed; a nil
// pointer or an empty Assignees slice means "leave unchanged".
type UpdateMrPatch struct {
	Title       *string
	Description *string
	Target      *string
	Assignees   []string
}

// PipelineFilter narrows a pipeline list the way MrFilter narrows an MR
// list.
type PipelineFilter struct {
	Ref           string
	Status        string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	SortAscending bool
}

// LintResult is the outcome of validating a CI pipeline definition.
type LintResult struct {
	Valid  bool
	Errors []string
}

// TrendingRepo is a single entry in a trending-repositories listing
// (GitHub-only capability).
type TrendingRepo struct {
	Name        string
	Path        string
	Description string
	Language    string
	Stars       int64
	Provider    Provider
}
