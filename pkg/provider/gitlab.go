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
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/domain"
)

// GitLab implements Provider against the GitLab REST API v4.
type GitLab struct {
	base
}

// NewGitLab builds a GitLab adapter. domainKey is the resolved config
// domain (usually "gitlab.com"), apiBase defaults to the public API root
// when empty (self-managed instances pass their own).
func NewGitLab(domainKey, apiBase, token string) *GitLab {
	if apiBase == "" {
		apiBase = "https://gitlab.com/api/v4"
	}
	return &GitLab{base{domainKey: domainKey, apiBase: apiBase, token: token}}
}

func (g *GitLab) Name() domain.Provider { return domain.ProviderGitLab }

func (g *GitLab) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + g.token}
}

func (g *GitLab) projectURL(project, suffix string) string {
	return fmt.Sprintf("%s/projects/%s%s", g.apiBase, url.PathEscape(project), suffix)
}

type glUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u glUser) toDomain() domain.User {
	return domain.User{ID: u.ID, Username: u.Username, Provider: domain.ProviderGitLab}
}

type glMergeRequest struct {
	IID          int64    `json:"iid"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	SourceBranch string   `json:"source_branch"`
	TargetBranch string   `json:"target_branch"`
	Author       glUser   `json:"author"`
	Assignees    []glUser `json:"assignees"`
	State        string   `json:"state"`
	Draft        bool     `json:"draft"`
	Labels       []string `json:"labels"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
	WebURL       string   `json:"web_url"`
}

func (m glMergeRequest) toDomain() domain.MergeRequest {
	assignees := make([]domain.User, 0, len(m.Assignees))
	for _, a := range m.Assignees {
		assignees = append(assignees, a.toDomain())
	}
	return domain.MergeRequest{
		ID:          m.IID,
		Title:       m.Title,
		Description: m.Description,
		Source:      m.SourceBranch,
		Target:      m.TargetBranch,
		Author:      m.Author.toDomain(),
		Assignees:   assignees,
		State:       gitlabState(m.State),
		Draft:       m.Draft,
		Labels:      m.Labels,
		CreatedAt:   parseTime(m.CreatedAt),
		UpdatedAt:   parseTime(m.UpdatedAt),
		WebURL:      m.WebURL,
		Provider:    domain.ProviderGitLab,
	}
}

func parseMrList(body []byte) ([]domain.MergeRequest, error) {
	var wire []glMergeRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, gitarerrors.NewParseError("malformed merge request list", err.Error(), "", err)
	}
	out := make([]domain.MergeRequest, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func parseMr(body []byte) (domain.MergeRequest, error) {
	var wire glMergeRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.MergeRequest{}, gitarerrors.NewParseError("malformed merge request", err.Error(), "", err)
	}
	return wire.toDomain(), nil
}

func (g *GitLab) ListMergeRequests(project string, filter domain.MrFilter) (ListOp[domain.MergeRequest], error) {
	q := url.Values{}
	if filter.State != "" {
		q.Set("state", string(toGitlabStateFilter(filter.State)))
	}
	if filter.Author != "" {
		q.Set("author_username", filter.Author)
	}
	if filter.Assignee != "" {
		q.Set("assignee_username", filter.Assignee)
	}
	if !filter.CreatedAfter.IsZero() {
		q.Set("created_after", filter.CreatedAfter.Format("2006-01-02"))
	}
	if !filter.CreatedBefore.IsZero() {
		q.Set("created_before", filter.CreatedBefore.Format("2006-01-02"))
	}
	q.Set("per_page", "50")
	u := g.projectURL(project, "/merge_requests") + "?" + q.Encode()
	return ListOp[domain.MergeRequest]{
		Req:   g.newRequest("GET", u, CategoryMergeRequest, nil, g.authHeaders()),
		Parse: parseMrList,
	}, nil
}

func toGitlabStateFilter(s domain.MrState) domain.MrState {
	if s == domain.MrMerged {
		return "merged"
	}
	if s == domain.MrClosed {
		return "closed"
	}
	return "opened"
}

func (g *GitLab) CreateMergeRequest(project string, in domain.CreateMrInput) (Op[domain.MergeRequest], error) {
	payload := map[string]any{
		"title":         in.Title,
		"description":   in.Description,
		"source_branch": in.Source,
		"target_branch": in.Target,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Op[domain.MergeRequest]{}, gitarerrors.NewParseError("failed to encode create-mr request", err.Error(), "", err)
	}
	headers := g.authHeaders()
	headers["Content-Type"] = "application/json"
	u := g.projectURL(project, "/merge_requests")
	return Op[domain.MergeRequest]{
		Req:   g.newRequest("POST", u, CategoryMergeRequest, body, headers),
		Parse: parseMr,
	}, nil
}

func (g *GitLab) GetMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(id, 10))
	return Op[domain.MergeRequest]{Req: g.newRequest("GET", u, CategoryMergeRequest, nil, g.authHeaders()), Parse: parseMr}, nil
}

func (g *GitLab) UpdateMergeRequest(project string, id int64, patch domain.UpdateMrPatch) (Op[domain.MergeRequest], error) {
	payload := map[string]any{}
	if patch.Title != nil {
		payload["title"] = *patch.Title
	}
	if patch.Description != nil {
		payload["description"] = *patch.Description
	}
	if patch.Target != nil {
		payload["target_branch"] = *patch.Target
	}
	if len(patch.Assignees) > 0 {
		payload["assignee_usernames"] = patch.Assignees
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Op[domain.MergeRequest]{}, gitarerrors.NewParseError("failed to encode mr patch", err.Error(), "", err)
	}
	headers := g.authHeaders()
	headers["Content-Type"] = "application/json"
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(id, 10))
	return Op[domain.MergeRequest]{Req: g.newRequest("PUT", u, CategoryMergeRequest, body, headers), Parse: parseMr}, nil
}

func (g *GitLab) CloseMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	body, _ := json.Marshal(map[string]any{"state_event": "close"})
	headers := g.authHeaders()
	headers["Content-Type"] = "application/json"
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(id, 10))
	return Op[domain.MergeRequest]{Req: g.newRequest("PUT", u, CategoryMergeRequest, body, headers), Parse: parseMr}, nil
}

func (g *GitLab) MergeMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(id, 10)+"/merge")
	return Op[domain.MergeRequest]{Req: g.newRequest("PUT", u, CategoryMergeRequest, nil, g.authHeaders()), Parse: parseMr}, nil
}

func (g *GitLab) ApproveMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(id, 10)+"/approve")
	return Op[domain.MergeRequest]{Req: g.newRequest("POST", u, CategoryMergeRequest, nil, g.authHeaders()), Parse: parseMr}, nil
}

type glNote struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	Author    glUser `json:"author"`
	CreatedAt string `json:"created_at"`
}

func (n glNote) toDomain() domain.Comment {
	return domain.Comment{ID: n.ID, Author: n.Author.toDomain(), Body: n.Body, CreatedAt: parseTime(n.CreatedAt)}
}

func (g *GitLab) ListComments(project string, mrID int64) (ListOp[domain.Comment], error) {
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(mrID, 10)+"/notes")
	return ListOp[domain.Comment]{
		Req: g.newRequest("GET", u, CategoryMergeRequest, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Comment, error) {
			var wire []glNote
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed comment list", err.Error(), "", err)
			}
			out := make([]domain.Comment, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) CreateComment(project string, mrID int64, body string) (Op[domain.Comment], error) {
	payload, _ := json.Marshal(map[string]any{"body": body})
	headers := g.authHeaders()
	headers["Content-Type"] = "application/json"
	u := g.projectURL(project, "/merge_requests/"+strconv.FormatInt(mrID, 10)+"/notes")
	return Op[domain.Comment]{
		Req: g.newRequest("POST", u, CategoryMergeRequest, payload, headers),
		Parse: func(b []byte) (domain.Comment, error) {
			var wire glNote
			if err := json.Unmarshal(b, &wire); err != nil {
				return domain.Comment{}, gitarerrors.NewParseError("malformed comment", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

type glPipeline struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Ref       string `json:"ref"`
	SHA       string `json:"sha"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	WebURL    string `json:"web_url"`
	Duration  int64  `json:"duration"`
}

func (p glPipeline) toDomain() domain.Pipeline {
	return domain.Pipeline{
		ID:        p.ID,
		Status:    p.Status,
		Ref:       p.Ref,
		SHA:       p.SHA,
		Duration:  secondsToDuration(p.Duration),
		CreatedAt: parseTime(p.CreatedAt),
		UpdatedAt: parseTime(p.UpdatedAt),
		WebURL:    p.WebURL,
		Provider:  domain.ProviderGitLab,
	}
}

func (g *GitLab) ListPipelines(project string, filter domain.PipelineFilter) (ListOp[domain.Pipeline], error) {
	q := url.Values{}
	if filter.Ref != "" {
		q.Set("ref", filter.Ref)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	q.Set("per_page", "50")
	u := g.projectURL(project, "/pipelines") + "?" + q.Encode()
	return ListOp[domain.Pipeline]{
		Req: g.newRequest("GET", u, CategoryPipeline, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Pipeline, error) {
			var wire []glPipeline
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed pipeline list", err.Error(), "", err)
			}
			out := make([]domain.Pipeline, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) GetPipeline(project string, id int64) (Op[domain.Pipeline], error) {
	u := g.projectURL(project, "/pipelines/"+strconv.FormatInt(id, 10))
	return Op[domain.Pipeline]{
		Req: g.newRequest("GET", u, CategoryPipeline, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.Pipeline, error) {
			var wire glPipeline
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Pipeline{}, gitarerrors.NewParseError("malformed pipeline", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (g *GitLab) LintPipeline(project string, yaml string) (Op[domain.LintResult], error) {
	payload, _ := json.Marshal(map[string]any{"content": yaml})
	headers := g.authHeaders()
	headers["Content-Type"] = "application/json"
	u := g.projectURL(project, "/ci/lint")
	return Op[domain.LintResult]{
		Req: g.newRequest("POST", u, CategorySinglePage, payload, headers),
		Parse: func(body []byte) (domain.LintResult, error) {
			var wire struct {
				Valid  bool     `json:"valid"`
				Errors []string `json:"errors"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.LintResult{}, gitarerrors.NewParseError("malformed lint result", err.Error(), "", err)
			}
			return domain.LintResult{Valid: wire.Valid, Errors: wire.Errors}, nil
		},
	}, nil
}

type glRunner struct {
	ID      int64    `json:"id"`
	Name    string   `json:"description"`
	Status  string   `json:"status"`
	Paused  bool     `json:"paused"`
	TagList []string `json:"tag_list"`
}

func (r glRunner) toDomain() domain.Runner {
	return domain.Runner{
		ID:       r.ID,
		Name:     r.Name,
		Status:   r.Status,
		Online:   r.Status == "online",
		Paused:   r.Paused,
		Tags:     r.TagList,
		Provider: domain.ProviderGitLab,
	}
}

func (g *GitLab) ListRunners(project, status string) (ListOp[domain.Runner], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	u := g.projectURL(project, "/runners") + "?" + q.Encode()
	return ListOp[domain.Runner]{
		Req: g.newRequest("GET", u, CategoryPipeline, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Runner, error) {
			var wire []glRunner
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed runner list", err.Error(), "", err)
			}
			out := make([]domain.Runner, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) GetRunner(project string, id int64) (Op[domain.Runner], error) {
	u := fmt.Sprintf("%s/runners/%d", g.apiBase, id)
	return Op[domain.Runner]{
		Req: g.newRequest("GET", u, CategoryPipeline, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.Runner, error) {
			var wire glRunner
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Runner{}, gitarerrors.NewParseError("malformed runner", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (g *GitLab) MergedCI(project, ref string) (Op[domain.Pipeline], error) {
	q := url.Values{"ref": {ref}, "status": {"success"}, "per_page": {"1"}}
	u := g.projectURL(project, "/pipelines") + "?" + q.Encode()
	return Op[domain.Pipeline]{
		Req: g.newRequest("GET", u, CategoryPipeline, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.Pipeline, error) {
			var wire []glPipeline
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Pipeline{}, gitarerrors.NewParseError("malformed pipeline list", err.Error(), "", err)
			}
			if len(wire) == 0 {
				return domain.Pipeline{}, gitarerrors.NewNotFoundError("no merged pipeline found for ref", ref, "", nil)
			}
			return wire[0].toDomain(), nil
		},
	}, nil
}

type glProject struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Path              string `json:"path"`
	PathWithNamespace string `json:"path_with_namespace"`
	Description       string `json:"description"`
	Visibility        string `json:"visibility"`
	DefaultBranch     string `json:"default_branch"`
}

func (p glProject) toDomain() domain.Project {
	return domain.Project{
		ID:            p.ID,
		Namespace:     p.PathWithNamespace,
		Name:          p.Name,
		Path:          p.Path,
		Description:   p.Description,
		Private:       p.Visibility == "private",
		DefaultBranch: p.DefaultBranch,
		Provider:      domain.ProviderGitLab,
	}
}

func (g *GitLab) GetProject(path string) (Op[domain.Project], error) {
	u := g.projectURL(path, "")
	return Op[domain.Project]{
		Req: g.newRequest("GET", u, CategoryProject, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.Project, error) {
			var wire glProject
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Project{}, gitarerrors.NewParseError("malformed project", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (g *GitLab) ListMembers(project string) (ListOp[domain.User], error) {
	u := g.projectURL(project, "/members/all")
	return ListOp[domain.User]{
		Req: g.newRequest("GET", u, CategoryProject, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.User, error) {
			var wire []glUser
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed member list", err.Error(), "", err)
			}
			out := make([]domain.User, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

type glRelease struct {
	TagName   string `json:"tag_name"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Assets    struct {
		Links []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"links"`
	} `json:"assets"`
}

func (r glRelease) toDomain() domain.Release {
	assets := make([]domain.ReleaseAsset, 0, len(r.Assets.Links))
	for _, l := range r.Assets.Links {
		assets = append(assets, domain.ReleaseAsset{Name: l.Name, DownloadURL: l.URL})
	}
	return domain.Release{
		Tag:       r.TagName,
		Name:      r.Name,
		CreatedAt: parseTime(r.CreatedAt),
		Assets:    assets,
		Provider:  domain.ProviderGitLab,
	}
}

func (g *GitLab) ListReleases(project string) (ListOp[domain.Release], error) {
	u := g.projectURL(project, "/releases")
	return ListOp[domain.Release]{
		Req: g.newRequest("GET", u, CategoryRelease, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Release, error) {
			var wire []glRelease
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed release list", err.Error(), "", err)
			}
			out := make([]domain.Release, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) ListReleaseAssets(project, tag string) (ListOp[domain.ReleaseAsset], error) {
	u := g.projectURL(project, "/releases/"+url.PathEscape(tag))
	return ListOp[domain.ReleaseAsset]{
		Req: g.newRequest("GET", u, CategoryRelease, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.ReleaseAsset, error) {
			var wire glRelease
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed release", err.Error(), "", err)
			}
			return wire.toDomain().Assets, nil
		},
	}, nil
}

type glRegistryRepo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func (g *GitLab) ListContainerRepos(project string) (ListOp[domain.ContainerRepo], error) {
	u := g.projectURL(project, "/registry/repositories")
	return ListOp[domain.ContainerRepo]{
		Req: g.newRequest("GET", u, CategoryContainerRegistry, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.ContainerRepo, error) {
			var wire []glRegistryRepo
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed registry repo list", err.Error(), "", err)
			}
			out := make([]domain.ContainerRepo, 0, len(wire))
			for _, w := range wire {
				out = append(out, domain.ContainerRepo{Name: w.Name, Path: w.Path, Provider: domain.ProviderGitLab})
			}
			return out, nil
		},
	}, nil
}

type glRegistryTag struct {
	Name     string `json:"name"`
	Digest   string `json:"digest"`
	TotalSize int64 `json:"total_size"`
}

func (g *GitLab) ListContainerTags(project, repo string) (ListOp[domain.ContainerTag], error) {
	u := fmt.Sprintf("%s/registry/repositories/%s/tags", g.projectURL(project, ""), url.PathEscape(repo))
	return ListOp[domain.ContainerTag]{
		Req: g.newRequest("GET", u, CategoryRepositoryTags, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.ContainerTag, error) {
			var wire []glRegistryTag
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed registry tag list", err.Error(), "", err)
			}
			out := make([]domain.ContainerTag, 0, len(wire))
			for _, w := range wire {
				out = append(out, domain.ContainerTag{Name: w.Name, Digest: w.Digest, SizeBytes: w.TotalSize, Provider: domain.ProviderGitLab})
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) ImageMetadata(project, repo, tag string) (Op[domain.ContainerTag], error) {
	u := fmt.Sprintf("%s/registry/repositories/%s/tags/%s", g.projectURL(project, ""), url.PathEscape(repo), url.PathEscape(tag))
	return Op[domain.ContainerTag]{
		Req: g.newRequest("GET", u, CategoryRepositoryTags, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.ContainerTag, error) {
			var wire glRegistryTag
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.ContainerTag{}, gitarerrors.NewParseError("malformed registry tag", err.Error(), "", err)
			}
			return domain.ContainerTag{Name: wire.Name, Digest: wire.Digest, SizeBytes: wire.TotalSize, Provider: domain.ProviderGitLab}, nil
		},
	}, nil
}

func (g *GitLab) MyMergeRequests() (ListOp[domain.MergeRequest], error) {
	u := g.apiBase + "/merge_requests?scope=assigned_to_me&per_page=50"
	return ListOp[domain.MergeRequest]{Req: g.newRequest("GET", u, CategoryMergeRequest, nil, g.authHeaders()), Parse: parseMrList}, nil
}

func (g *GitLab) MyProjects() (ListOp[domain.Project], error) {
	u := g.apiBase + "/projects?membership=true&per_page=50"
	return ListOp[domain.Project]{
		Req: g.newRequest("GET", u, CategoryProject, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Project, error) {
			var wire []glProject
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed project list", err.Error(), "", err)
			}
			out := make([]domain.Project, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) MyStarred() (ListOp[domain.Project], error) {
	u := g.apiBase + "/projects?starred=true&per_page=50"
	return ListOp[domain.Project]{
		Req: g.newRequest("GET", u, CategoryProject, nil, g.authHeaders()),
		Parse: func(body []byte) ([]domain.Project, error) {
			var wire []glProject
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed project list", err.Error(), "", err)
			}
			out := make([]domain.Project, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (g *GitLab) GetUser(username string) (Op[domain.User], error) {
	u := g.apiBase + "/users?username=" + url.QueryEscape(username)
	return Op[domain.User]{
		Req: g.newRequest("GET", u, CategorySinglePage, nil, g.authHeaders()),
		Parse: func(body []byte) (domain.User, error) {
			var wire []glUser
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.User{}, gitarerrors.NewParseError("malformed user", err.Error(), "", err)
			}
			if len(wire) == 0 {
				return domain.User{}, gitarerrors.NewNotFoundError("user not found", username, "", nil)
			}
			return wire[0].toDomain(), nil
		},
	}, nil
}

func (g *GitLab) ListTrendingByLanguage(lang string) (ListOp[domain.TrendingRepo], error) {
	return ListOp[domain.TrendingRepo]{}, unsupported(domain.ProviderGitLab, "trending")
}

func secondsToDuration(s int64) time.Duration { return time.Duration(s) * time.Second }
