// Copyright 2026 GitAR Authors
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

import (
	"sort"
	"time"
)

// MrFilter is the value object callers use to scope a merge-request
// list operation.
type MrFilter struct {
	State         MrState
	Author        string
	Assignee      string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	SortAscending bool
}

// SortMergeRequests orders mrs by creation time in the filter's sort
// direction, tying on ascending id.
func SortMergeRequests(mrs []MergeRequest, f MrFilter) {
	sort.SliceStable(mrs, func(i, j int) bool {
		a, b := mrs[i].CreatedAt, mrs[j].CreatedAt
		if !a.Equal(b) {
			if f.SortAscending {
				return a.Before(b)
			}
			return a.After(b)
		}
		return mrs[i].ID < mrs[j].ID
	})
}

// Matches reports whether mr satisfies every non-zero field of f. Empty
// fields are wildcards. Intended for adapters whose provider API lacks
// server-side filtering for a given dimension.
func (f MrFilter) Matches(mr MergeRequest) bool {
	if f.State != "" && mr.State != f.State {
		return false
	}
	if f.Author != "" && mr.Author.Username != f.Author {
		return false
	}
	if f.Assignee != "" && !hasAssignee(mr.Assignees, f.Assignee) {
		return false
	}
	if !f.CreatedAfter.IsZero() && mr.CreatedAt.Before(f.CreatedAfter) {
		return false
	}
	if !f.CreatedBefore.IsZero() && mr.CreatedAt.After(f.CreatedBefore) {
		return false
	}
	return true
}

func hasAssignee(assignees []User, username string) bool {
	for _, a := range assignees {
		if a.Username == username {
			return true
		}
	}
	return false
}
