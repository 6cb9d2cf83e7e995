// Copyright 2026 GitAR Authors
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitar-cli/gitar/pkg/domain"
)

// TestMergeRequestNormalizationParity feeds equivalent GitLab and GitHub
// wire payloads for "the same" merge request through each adapter's
// toDomain and asserts the resulting domain.MergeRequest fields line up
// field for field despite the different wire vocabularies (iid vs
// number, web_url vs html_url, state vs merged_at).
func TestMergeRequestNormalizationParity(t *testing.T) {
	gl := glMergeRequest{
		IID:          42,
		Title:        "Add feature",
		Description:  "does the thing",
		SourceBranch: "feature-branch",
		TargetBranch: "main",
		Author:       glUser{Username: "alice", ID: 1},
		State:        "merged",
		Draft:        false,
		Labels:       []string{"bug"},
		CreatedAt:    "2026-01-01T00:00:00Z",
		UpdatedAt:    "2026-01-02T00:00:00Z",
		WebURL:       "https://gitlab.com/g/p/-/merge_requests/42",
	}

	mergedAt := "2026-01-02T00:00:00Z"
	gh := ghPullRequest{
		Number: 42,
		Title:  "Add feature",
		Body:   "does the thing",
		User:   ghUser{Login: "alice", ID: 1},
		State:  "closed",
		Draft:  false,
		Labels: []ghLabel{{Name: "bug"}},
		Head:   struct {
			Ref string `json:"ref"`
		}{Ref: "feature-branch"},
		Base: struct {
			Ref string `json:"ref"`
		}{Ref: "main"},
		CreatedAt: "2026-01-01T00:00:00Z",
		UpdatedAt: "2026-01-02T00:00:00Z",
		HTMLURL:   "https://github.com/o/r/pull/42",
		MergedAt:  &mergedAt,
	}

	glMr := gl.toDomain()
	ghMr := gh.toDomain()

	assert.Equal(t, glMr.ID, ghMr.ID)
	assert.Equal(t, glMr.Title, ghMr.Title)
	assert.Equal(t, glMr.Description, ghMr.Description)
	assert.Equal(t, glMr.Source, ghMr.Source)
	assert.Equal(t, glMr.Target, ghMr.Target)
	assert.Equal(t, glMr.Author.Username, ghMr.Author.Username)
	assert.Equal(t, glMr.Labels, ghMr.Labels)
	assert.Equal(t, glMr.CreatedAt, ghMr.CreatedAt)
	assert.Equal(t, glMr.UpdatedAt, ghMr.UpdatedAt)

	assert.Equal(t, domain.MrMerged, glMr.State)
	assert.Equal(t, domain.MrMerged, ghMr.State, "a merged PR reports state=closed; merged_at must still resolve it to merged")

	assert.Equal(t, domain.ProviderGitLab, glMr.Provider)
	assert.Equal(t, domain.ProviderGitHub, ghMr.Provider)
}

func TestGithubPRStateClosedWithoutMergedAtIsClosedNotMerged(t *testing.T) {
	assert.Equal(t, domain.MrClosed, githubPRState("closed", nil))
	assert.Equal(t, domain.MrOpen, githubPRState("open", nil))
}

func TestGitlabStateLockedMapsToClosed(t *testing.T) {
	assert.Equal(t, domain.MrClosed, gitlabState("locked"))
	assert.Equal(t, domain.MrOpen, gitlabState("opened"))
}

func TestParseTimeInvalidInputReturnsZeroValue(t *testing.T) {
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("not-a-timestamp").IsZero())
	assert.False(t, parseTime("2026-01-01T00:00:00Z").IsZero())
}
