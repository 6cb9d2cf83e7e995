package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gitar-cli/gitar/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRequestRoundTrip(t *testing.T) {
	mr := domain.MergeRequest{
		ID:        42,
		Title:     "Add feature",
		Source:    "feature/x",
		Target:    "main",
		Author:    domain.User{Username: "alice", ID: 1, Provider: domain.ProviderGitLab},
		Assignees: []domain.User{{Username: "bob", ID: 2}},
		State:     domain.MrMerged,
		Labels:    []string{"bug", "urgent"},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		WebURL:    "https://gitlab.com/g/p/-/merge_requests/42",
		Provider:  domain.ProviderGitLab,
	}

	b, err := json.Marshal(mr)
	require.NoError(t, err)

	var got domain.MergeRequest
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, mr, got)
}

func TestSortMergeRequestsTiebreakAscendingID(t *testing.T) {
	mrs := []domain.MergeRequest{
		{ID: 3, CreatedAt: time.Unix(100, 0)},
		{ID: 1, CreatedAt: time.Unix(100, 0)},
		{ID: 2, CreatedAt: time.Unix(100, 0)},
	}
	domain.SortMergeRequests(mrs, domain.MrFilter{SortAscending: true})
	assert.Equal(t, []int64{1, 2, 3}, ids(mrs))

	domain.SortMergeRequests(mrs, domain.MrFilter{SortAscending: false})
	assert.Equal(t, []int64{1, 2, 3}, ids(mrs))
}

func TestMrFilterMatches(t *testing.T) {
	mr := domain.MergeRequest{
		ID:        1,
		State:     domain.MrOpen,
		Author:    domain.User{Username: "alice"},
		Assignees: []domain.User{{Username: "bob"}},
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, domain.MrFilter{}.Matches(mr))
	assert.True(t, domain.MrFilter{State: domain.MrOpen}.Matches(mr))
	assert.False(t, domain.MrFilter{State: domain.MrClosed}.Matches(mr))
	assert.True(t, domain.MrFilter{Assignee: "bob"}.Matches(mr))
	assert.False(t, domain.MrFilter{Assignee: "carol"}.Matches(mr))
	assert.False(t, domain.MrFilter{CreatedAfter: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)}.Matches(mr))
}

func ids(mrs []domain.MergeRequest) []int64 {
	out := make([]int64, len(mrs))
	for i, mr := range mrs {
		out[i] = mr.ID
	}
	return out
}
