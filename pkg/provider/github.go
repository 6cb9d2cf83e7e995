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

// GitHub implements Provider against the GitHub REST API.
type GitHub struct {
	base
}

// NewGitHub builds a GitHub adapter. apiBase defaults to the public API
// root (GitHub Enterprise Server installs pass their own).
func NewGitHub(domainKey, apiBase, token string) *GitHub {
	if apiBase == "" {
		apiBase = "https://api.github.com"
	}
	return &GitHub{base{domainKey: domainKey, apiBase: apiBase, token: token}}
}

func (h *GitHub) Name() domain.Provider { return domain.ProviderGitHub }

// authHeaders sets the GitHub REST media type alongside the bearer token.
func (h *GitHub) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + h.token,
		"Accept":        "application/vnd.github+json",
	}
}

func (h *GitHub) repoURL(project, suffix string) string {
	return fmt.Sprintf("%s/repos/%s%s", h.apiBase, project, suffix)
}

type ghUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

func (u ghUser) toDomain() domain.User {
	return domain.User{ID: u.ID, Username: u.Login, Provider: domain.ProviderGitHub}
}

type ghLabel struct {
	Name string `json:"name"`
}

type ghPullRequest struct {
	Number int64  `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Head   struct {
		Ref string `json:"ref"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	User      ghUser    `json:"user"`
	Assignees []ghUser  `json:"assignees"`
	State     string    `json:"state"`
	Draft     bool      `json:"draft"`
	Labels    []ghLabel `json:"labels"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	HTMLURL   string    `json:"html_url"`
	MergedAt  *string   `json:"merged_at"`
}

func (p ghPullRequest) toDomain() domain.MergeRequest {
	assignees := make([]domain.User, 0, len(p.Assignees))
	for _, a := range p.Assignees {
		assignees = append(assignees, a.toDomain())
	}
	labels := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		labels = append(labels, l.Name)
	}
	return domain.MergeRequest{
		ID:          p.Number,
		Title:       p.Title,
		Description: p.Body,
		Source:      p.Head.Ref,
		Target:      p.Base.Ref,
		Author:      p.User.toDomain(),
		Assignees:   assignees,
		State:       githubPRState(p.State, p.MergedAt),
		Draft:       p.Draft,
		Labels:      labels,
		CreatedAt:   parseTime(p.CreatedAt),
		UpdatedAt:   parseTime(p.UpdatedAt),
		WebURL:      p.HTMLURL,
		Provider:    domain.ProviderGitHub,
	}
}

func parsePrList(body []byte) ([]domain.MergeRequest, error) {
	var wire []ghPullRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, gitarerrors.NewParseError("malformed pull request list", err.Error(), "", err)
	}
	out := make([]domain.MergeRequest, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func parsePr(body []byte) (domain.MergeRequest, error) {
	var wire ghPullRequest
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.MergeRequest{}, gitarerrors.NewParseError("malformed pull request", err.Error(), "", err)
	}
	return wire.toDomain(), nil
}

func (h *GitHub) ListMergeRequests(project string, filter domain.MrFilter) (ListOp[domain.MergeRequest], error) {
	q := url.Values{}
	q.Set("state", toGithubStateFilter(filter.State))
	if filter.Author != "" {
		q.Set("creator", filter.Author)
	}
	q.Set("per_page", "50")
	u := h.repoURL(project, "/pulls") + "?" + q.Encode()
	return ListOp[domain.MergeRequest]{Req: h.newRequest("GET", u, CategoryMergeRequest, nil, h.authHeaders()), Parse: parsePrList}, nil
}

func toGithubStateFilter(s domain.MrState) string {
	if s == domain.MrClosed || s == domain.MrMerged {
		return "closed"
	}
	if s == "" {
		return "all"
	}
	return "open"
}

func (h *GitHub) CreateMergeRequest(project string, in domain.CreateMrInput) (Op[domain.MergeRequest], error) {
	payload := map[string]any{
		"title": in.Title,
		"body":  in.Description,
		"head":  in.Source,
		"base":  in.Target,
		"draft": in.Draft,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Op[domain.MergeRequest]{}, gitarerrors.NewParseError("failed to encode create-pr request", err.Error(), "", err)
	}
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	u := h.repoURL(project, "/pulls")
	return Op[domain.MergeRequest]{Req: h.newRequest("POST", u, CategoryMergeRequest, body, headers), Parse: parsePr}, nil
}

func (h *GitHub) GetMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	u := h.repoURL(project, "/pulls/"+strconv.FormatInt(id, 10))
	return Op[domain.MergeRequest]{Req: h.newRequest("GET", u, CategoryMergeRequest, nil, h.authHeaders()), Parse: parsePr}, nil
}

func (h *GitHub) UpdateMergeRequest(project string, id int64, patch domain.UpdateMrPatch) (Op[domain.MergeRequest], error) {
	payload := map[string]any{}
	if patch.Title != nil {
		payload["title"] = *patch.Title
	}
	if patch.Description != nil {
		payload["body"] = *patch.Description
	}
	if patch.Target != nil {
		payload["base"] = *patch.Target
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Op[domain.MergeRequest]{}, gitarerrors.NewParseError("failed to encode pr patch", err.Error(), "", err)
	}
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	u := h.repoURL(project, "/pulls/"+strconv.FormatInt(id, 10))
	op := Op[domain.MergeRequest]{Req: h.newRequest("PATCH", u, CategoryMergeRequest, body, headers), Parse: parsePr}
	if len(patch.Assignees) > 0 {
		// Assignees live on a distinct GitHub endpoint; UpdateMergeRequest
		// only patches the PR resource itself.
		return op, gitarerrors.NewUnsupportedError(string(domain.ProviderGitHub), "update assignees via UpdateMergeRequest (use a dedicated assignees call)")
	}
	return op, nil
}

func (h *GitHub) CloseMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	payload, _ := json.Marshal(map[string]any{"state": "closed"})
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	u := h.repoURL(project, "/pulls/"+strconv.FormatInt(id, 10))
	return Op[domain.MergeRequest]{Req: h.newRequest("PATCH", u, CategoryMergeRequest, payload, headers), Parse: parsePr}, nil
}

// ghMergeResult is the body GitHub's merge endpoint returns — a
// merge-status object, not the pull request itself.
type ghMergeResult struct {
	SHA    string `json:"sha"`
	Merged bool   `json:"merged"`
}

func (h *GitHub) MergeMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	u := h.repoURL(project, "/pulls/"+strconv.FormatInt(id, 10)+"/merge")
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	return Op[domain.MergeRequest]{
		Req: h.newRequest("PUT", u, CategoryMergeRequest, []byte("{}"), headers),
		Parse: func(b []byte) (domain.MergeRequest, error) {
			var res ghMergeResult
			if err := json.Unmarshal(b, &res); err != nil {
				return domain.MergeRequest{}, gitarerrors.NewParseError("malformed merge result", err.Error(), "", err)
			}
			state := domain.MrClosed
			if res.Merged {
				state = domain.MrMerged
			}
			return domain.MergeRequest{ID: id, State: state, Provider: domain.ProviderGitHub}, nil
		},
	}, nil
}

// ghReview is the body GitHub's review endpoint returns — a review
// object, not the pull request itself.
type ghReview struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
}

func (h *GitHub) ApproveMergeRequest(project string, id int64) (Op[domain.MergeRequest], error) {
	payload, _ := json.Marshal(map[string]any{"event": "APPROVE"})
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	u := h.repoURL(project, "/pulls/"+strconv.FormatInt(id, 10)+"/reviews")
	return Op[domain.MergeRequest]{
		Req: h.newRequest("POST", u, CategoryMergeRequest, payload, headers),
		Parse: func(b []byte) (domain.MergeRequest, error) {
			var rev ghReview
			if err := json.Unmarshal(b, &rev); err != nil {
				return domain.MergeRequest{}, gitarerrors.NewParseError("malformed review result", err.Error(), "", err)
			}
			return domain.MergeRequest{ID: id, Provider: domain.ProviderGitHub}, nil
		},
	}, nil
}

type ghComment struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	User      ghUser `json:"user"`
	CreatedAt string `json:"created_at"`
}

func (c ghComment) toDomain() domain.Comment {
	return domain.Comment{ID: c.ID, Author: c.User.toDomain(), Body: c.Body, CreatedAt: parseTime(c.CreatedAt)}
}

func (h *GitHub) ListComments(project string, mrID int64) (ListOp[domain.Comment], error) {
	u := h.repoURL(project, "/issues/"+strconv.FormatInt(mrID, 10)+"/comments")
	return ListOp[domain.Comment]{
		Req: h.newRequest("GET", u, CategoryMergeRequest, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Comment, error) {
			var wire []ghComment
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

func (h *GitHub) CreateComment(project string, mrID int64, body string) (Op[domain.Comment], error) {
	payload, _ := json.Marshal(map[string]any{"body": body})
	headers := h.authHeaders()
	headers["Content-Type"] = "application/json"
	u := h.repoURL(project, "/issues/"+strconv.FormatInt(mrID, 10)+"/comments")
	return Op[domain.Comment]{
		Req: h.newRequest("POST", u, CategoryMergeRequest, payload, headers),
		Parse: func(b []byte) (domain.Comment, error) {
			var wire ghComment
			if err := json.Unmarshal(b, &wire); err != nil {
				return domain.Comment{}, gitarerrors.NewParseError("malformed comment", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

type ghWorkflowRun struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	Conclusion   string `json:"conclusion"`
	HeadBranch   string `json:"head_branch"`
	HeadSHA      string `json:"head_sha"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	HTMLURL      string `json:"html_url"`
	RunStartedAt string `json:"run_started_at"`
}

func (r ghWorkflowRun) toDomain() domain.Pipeline {
	status := r.Status
	if r.Conclusion != "" {
		status = r.Conclusion
	}
	started := parseTime(r.RunStartedAt)
	updated := parseTime(r.UpdatedAt)
	var dur time.Duration
	if !started.IsZero() && !updated.IsZero() && updated.After(started) {
		dur = updated.Sub(started)
	}
	return domain.Pipeline{
		ID:        r.ID,
		Status:    status,
		Ref:       r.HeadBranch,
		SHA:       r.HeadSHA,
		Duration:  dur,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: updated,
		WebURL:    r.HTMLURL,
		Provider:  domain.ProviderGitHub,
	}
}

func (h *GitHub) ListPipelines(project string, filter domain.PipelineFilter) (ListOp[domain.Pipeline], error) {
	q := url.Values{}
	if filter.Ref != "" {
		q.Set("branch", filter.Ref)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	q.Set("per_page", "50")
	u := h.repoURL(project, "/actions/runs") + "?" + q.Encode()
	return ListOp[domain.Pipeline]{
		Req: h.newRequest("GET", u, CategoryPipeline, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Pipeline, error) {
			var wire struct {
				WorkflowRuns []ghWorkflowRun `json:"workflow_runs"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed workflow run list", err.Error(), "", err)
			}
			out := make([]domain.Pipeline, 0, len(wire.WorkflowRuns))
			for _, w := range wire.WorkflowRuns {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) GetPipeline(project string, id int64) (Op[domain.Pipeline], error) {
	u := h.repoURL(project, "/actions/runs/"+strconv.FormatInt(id, 10))
	return Op[domain.Pipeline]{
		Req: h.newRequest("GET", u, CategoryPipeline, nil, h.authHeaders()),
		Parse: func(body []byte) (domain.Pipeline, error) {
			var wire ghWorkflowRun
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Pipeline{}, gitarerrors.NewParseError("malformed workflow run", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (h *GitHub) LintPipeline(project string, yaml string) (Op[domain.LintResult], error) {
	return Op[domain.LintResult]{}, unsupported(domain.ProviderGitHub, "lint")
}

type ghRunner struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Busy   bool   `json:"busy"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

func (r ghRunner) toDomain() domain.Runner {
	tags := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		tags = append(tags, l.Name)
	}
	return domain.Runner{
		ID:       r.ID,
		Name:     r.Name,
		Status:   r.Status,
		Online:   r.Status == "online",
		Paused:   false,
		Tags:     tags,
		Provider: domain.ProviderGitHub,
	}
}

func (h *GitHub) ListRunners(project, status string) (ListOp[domain.Runner], error) {
	u := h.repoURL(project, "/actions/runners")
	return ListOp[domain.Runner]{
		Req: h.newRequest("GET", u, CategoryPipeline, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Runner, error) {
			var wire struct {
				Runners []ghRunner `json:"runners"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed runner list", err.Error(), "", err)
			}
			out := make([]domain.Runner, 0, len(wire.Runners))
			for _, w := range wire.Runners {
				if status != "" && w.Status != status {
					continue
				}
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) GetRunner(project string, id int64) (Op[domain.Runner], error) {
	u := h.repoURL(project, "/actions/runners/"+strconv.FormatInt(id, 10))
	return Op[domain.Runner]{
		Req: h.newRequest("GET", u, CategoryPipeline, nil, h.authHeaders()),
		Parse: func(body []byte) (domain.Runner, error) {
			var wire ghRunner
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Runner{}, gitarerrors.NewParseError("malformed runner", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (h *GitHub) MergedCI(project, ref string) (Op[domain.Pipeline], error) {
	q := url.Values{"branch": {ref}, "status": {"success"}, "per_page": {"1"}}
	u := h.repoURL(project, "/actions/runs") + "?" + q.Encode()
	return Op[domain.Pipeline]{
		Req: h.newRequest("GET", u, CategoryPipeline, nil, h.authHeaders()),
		Parse: func(body []byte) (domain.Pipeline, error) {
			var wire struct {
				WorkflowRuns []ghWorkflowRun `json:"workflow_runs"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Pipeline{}, gitarerrors.NewParseError("malformed workflow run list", err.Error(), "", err)
			}
			if len(wire.WorkflowRuns) == 0 {
				return domain.Pipeline{}, gitarerrors.NewNotFoundError("no merged run found for ref", ref, "", nil)
			}
			return wire.WorkflowRuns[0].toDomain(), nil
		},
	}, nil
}

type ghRepo struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	StargazersCount int64 `json:"stargazers_count"`
	HTMLURL       string `json:"html_url"`
}

func (r ghRepo) toDomain() domain.Project {
	return domain.Project{
		ID:            r.ID,
		Namespace:     r.FullName,
		Name:          r.Name,
		Path:          r.Name,
		Description:   r.Description,
		Private:       r.Private,
		DefaultBranch: r.DefaultBranch,
		Provider:      domain.ProviderGitHub,
	}
}

func (r ghRepo) toTrending() domain.TrendingRepo {
	return domain.TrendingRepo{
		Name:        r.FullName,
		Path:        r.HTMLURL,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.StargazersCount,
		Provider:    domain.ProviderGitHub,
	}
}

func (h *GitHub) GetProject(path string) (Op[domain.Project], error) {
	u := h.repoURL(path, "")
	return Op[domain.Project]{
		Req: h.newRequest("GET", u, CategoryProject, nil, h.authHeaders()),
		Parse: func(body []byte) (domain.Project, error) {
			var wire ghRepo
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.Project{}, gitarerrors.NewParseError("malformed repository", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

func (h *GitHub) ListMembers(project string) (ListOp[domain.User], error) {
	u := h.repoURL(project, "/collaborators")
	return ListOp[domain.User]{
		Req: h.newRequest("GET", u, CategoryProject, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.User, error) {
			var wire []ghUser
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed collaborator list", err.Error(), "", err)
			}
			out := make([]domain.User, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

type ghReleaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

type ghRelease struct {
	TagName   string           `json:"tag_name"`
	Name      string           `json:"name"`
	CreatedAt string           `json:"created_at"`
	Assets    []ghReleaseAsset `json:"assets"`
}

func (r ghRelease) toDomain() domain.Release {
	assets := make([]domain.ReleaseAsset, 0, len(r.Assets))
	for _, a := range r.Assets {
		assets = append(assets, domain.ReleaseAsset{Name: a.Name, DownloadURL: a.BrowserDownloadURL, SizeBytes: a.Size})
	}
	return domain.Release{Tag: r.TagName, Name: r.Name, CreatedAt: parseTime(r.CreatedAt), Assets: assets, Provider: domain.ProviderGitHub}
}

func (h *GitHub) ListReleases(project string) (ListOp[domain.Release], error) {
	u := h.repoURL(project, "/releases")
	return ListOp[domain.Release]{
		Req: h.newRequest("GET", u, CategoryRelease, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Release, error) {
			var wire []ghRelease
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

func (h *GitHub) ListReleaseAssets(project, tag string) (ListOp[domain.ReleaseAsset], error) {
	u := h.repoURL(project, "/releases/tags/"+url.PathEscape(tag))
	return ListOp[domain.ReleaseAsset]{
		Req: h.newRequest("GET", u, CategoryRelease, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.ReleaseAsset, error) {
			var wire ghRelease
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed release", err.Error(), "", err)
			}
			return wire.toDomain().Assets, nil
		},
	}, nil
}

type ghPackage struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *GitHub) ListContainerRepos(project string) (ListOp[domain.ContainerRepo], error) {
	owner := ownerOf(project)
	u := fmt.Sprintf("%s/orgs/%s/packages?package_type=container", h.apiBase, owner)
	return ListOp[domain.ContainerRepo]{
		Req: h.newRequest("GET", u, CategoryContainerRegistry, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.ContainerRepo, error) {
			var wire []ghPackage
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed package list", err.Error(), "", err)
			}
			out := make([]domain.ContainerRepo, 0, len(wire))
			for _, w := range wire {
				out = append(out, domain.ContainerRepo{Name: w.Name, Path: owner + "/" + w.Name, Provider: domain.ProviderGitHub})
			}
			return out, nil
		},
	}, nil
}

type ghPackageVersion struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Metadata  struct {
		Container struct {
			Tags []string `json:"tags"`
		} `json:"container"`
	} `json:"metadata"`
}

func (h *GitHub) ListContainerTags(project, repo string) (ListOp[domain.ContainerTag], error) {
	owner := ownerOf(project)
	u := fmt.Sprintf("%s/orgs/%s/packages/container/%s/versions", h.apiBase, owner, url.PathEscape(repo))
	return ListOp[domain.ContainerTag]{
		Req: h.newRequest("GET", u, CategoryRepositoryTags, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.ContainerTag, error) {
			var wire []ghPackageVersion
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed package version list", err.Error(), "", err)
			}
			out := make([]domain.ContainerTag, 0)
			for _, w := range wire {
				for _, tag := range w.Metadata.Container.Tags {
					out = append(out, domain.ContainerTag{Name: tag, PushedAt: parseTime(w.CreatedAt), Provider: domain.ProviderGitHub})
				}
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) ImageMetadata(project, repo, tag string) (Op[domain.ContainerTag], error) {
	tagsOp, err := h.ListContainerTags(project, repo)
	if err != nil {
		return Op[domain.ContainerTag]{}, err
	}
	return Op[domain.ContainerTag]{
		Req: tagsOp.Req,
		Parse: func(body []byte) (domain.ContainerTag, error) {
			tags, err := tagsOp.Parse(body)
			if err != nil {
				return domain.ContainerTag{}, err
			}
			for _, t := range tags {
				if t.Name == tag {
					return t, nil
				}
			}
			return domain.ContainerTag{}, gitarerrors.NewNotFoundError("image tag not found", tag, "", nil)
		},
	}, nil
}

func (h *GitHub) MyMergeRequests() (ListOp[domain.MergeRequest], error) {
	u := h.apiBase + "/search/issues?q=" + url.QueryEscape("is:pr assignee:@me is:open")
	return ListOp[domain.MergeRequest]{
		Req: h.newRequest("GET", u, CategoryMergeRequest, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.MergeRequest, error) {
			var wire struct {
				Items []ghPullRequest `json:"items"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed search result", err.Error(), "", err)
			}
			out := make([]domain.MergeRequest, 0, len(wire.Items))
			for _, w := range wire.Items {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) MyProjects() (ListOp[domain.Project], error) {
	u := h.apiBase + "/user/repos?affiliation=owner,collaborator&per_page=50"
	return ListOp[domain.Project]{
		Req: h.newRequest("GET", u, CategoryProject, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Project, error) {
			var wire []ghRepo
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed repository list", err.Error(), "", err)
			}
			out := make([]domain.Project, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) MyStarred() (ListOp[domain.Project], error) {
	u := h.apiBase + "/user/starred?per_page=50"
	return ListOp[domain.Project]{
		Req: h.newRequest("GET", u, CategoryProject, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.Project, error) {
			var wire []ghRepo
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed starred repository list", err.Error(), "", err)
			}
			out := make([]domain.Project, 0, len(wire))
			for _, w := range wire {
				out = append(out, w.toDomain())
			}
			return out, nil
		},
	}, nil
}

func (h *GitHub) GetUser(username string) (Op[domain.User], error) {
	u := h.apiBase + "/users/" + url.PathEscape(username)
	return Op[domain.User]{
		Req: h.newRequest("GET", u, CategorySinglePage, nil, h.authHeaders()),
		Parse: func(body []byte) (domain.User, error) {
			var wire ghUser
			if err := json.Unmarshal(body, &wire); err != nil {
				return domain.User{}, gitarerrors.NewParseError("malformed user", err.Error(), "", err)
			}
			return wire.toDomain(), nil
		},
	}, nil
}

// ListTrendingByLanguage proxies GitHub's search API (no official
// trending endpoint exists), sorting by stars as the closest available
// approximation.
func (h *GitHub) ListTrendingByLanguage(lang string) (ListOp[domain.TrendingRepo], error) {
	q := "sort=stars&order=desc"
	if lang != "" {
		q = "q=" + url.QueryEscape("language:"+lang) + "&" + q
	} else {
		q = "q=stars:>1&" + q
	}
	u := h.apiBase + "/search/repositories?" + q
	return ListOp[domain.TrendingRepo]{
		Req: h.newRequest("GET", u, CategorySinglePage, nil, h.authHeaders()),
		Parse: func(body []byte) ([]domain.TrendingRepo, error) {
			var wire struct {
				Items []ghRepo `json:"items"`
			}
			if err := json.Unmarshal(body, &wire); err != nil {
				return nil, gitarerrors.NewParseError("malformed search result", err.Error(), "", err)
			}
			out := make([]domain.TrendingRepo, 0, len(wire.Items))
			for _, w := range wire.Items {
				out = append(out, w.toTrending())
			}
			return out, nil
		},
	}, nil
}

func ownerOf(project string) string {
	for i := 0; i < len(project); i++ {
		if project[i] == '/' {
			return project[:i]
		}
	}
	return project
}
