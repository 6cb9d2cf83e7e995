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

// Package provider maps GitAR's provider-neutral operations onto the
// GitLab and GitHub REST dialects. Adapters build raw request
// descriptors and hand them to pkg/engine.Engine.Fetch — they never
// instantiate an SDK's own HTTP client, which would bypass the
// cache/throttle pipeline pkg/engine and pkg/paginate exist to enforce.
package provider

import (
	"crypto/sha256"
	"encoding/hex"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/domain"
	"github.com/gitar-cli/gitar/pkg/engine"
)

// API categories, used to select TTL/max-pages policy and cache
// subdirectory.
const (
	CategoryMergeRequest      = "merge_request"
	CategoryProject           = "project"
	CategoryPipeline          = "pipeline"
	CategoryRelease           = "release"
	CategoryContainerRegistry = "container_registry"
	CategoryRepositoryTags    = "repository_tags"
	CategorySinglePage        = "single_page"
)

// Op is a single-object operation: a request descriptor plus the parser
// that turns its response body into T.
type Op[T any] struct {
	Req   engine.Request
	Parse func([]byte) (T, error)
}

// ListOp is a collection operation driven through pkg/paginate; Parse is
// applied to every page's body and the results are concatenated by the
// caller in page order.
type ListOp[T any] struct {
	Req   engine.Request
	Parse func([]byte) ([]T, error)
}

// Provider is the capability set a code-hosting backend implements.
// Operations unavailable on a given provider return
// internal/errors.NewUnsupportedError instead of a zero value.
type Provider interface {
	Name() domain.Provider

	ListMergeRequests(project string, filter domain.MrFilter) (ListOp[domain.MergeRequest], error)
	CreateMergeRequest(project string, in domain.CreateMrInput) (Op[domain.MergeRequest], error)
	GetMergeRequest(project string, id int64) (Op[domain.MergeRequest], error)
	UpdateMergeRequest(project string, id int64, patch domain.UpdateMrPatch) (Op[domain.MergeRequest], error)
	CloseMergeRequest(project string, id int64) (Op[domain.MergeRequest], error)
	MergeMergeRequest(project string, id int64) (Op[domain.MergeRequest], error)
	ApproveMergeRequest(project string, id int64) (Op[domain.MergeRequest], error)
	ListComments(project string, mrID int64) (ListOp[domain.Comment], error)
	CreateComment(project string, mrID int64, body string) (Op[domain.Comment], error)

	ListPipelines(project string, filter domain.PipelineFilter) (ListOp[domain.Pipeline], error)
	GetPipeline(project string, id int64) (Op[domain.Pipeline], error)
	LintPipeline(project string, yaml string) (Op[domain.LintResult], error)
	ListRunners(project, status string) (ListOp[domain.Runner], error)
	GetRunner(project string, id int64) (Op[domain.Runner], error)
	MergedCI(project, ref string) (Op[domain.Pipeline], error)

	GetProject(path string) (Op[domain.Project], error)
	ListMembers(project string) (ListOp[domain.User], error)

	ListReleases(project string) (ListOp[domain.Release], error)
	ListReleaseAssets(project, tag string) (ListOp[domain.ReleaseAsset], error)

	ListContainerRepos(project string) (ListOp[domain.ContainerRepo], error)
	ListContainerTags(project, repo string) (ListOp[domain.ContainerTag], error)
	ImageMetadata(project, repo, tag string) (Op[domain.ContainerTag], error)

	MyMergeRequests() (ListOp[domain.MergeRequest], error)
	MyProjects() (ListOp[domain.Project], error)
	MyStarred() (ListOp[domain.Project], error)
	GetUser(username string) (Op[domain.User], error)

	ListTrendingByLanguage(lang string) (ListOp[domain.TrendingRepo], error)
}

// base carries the fields every adapter needs to build an engine.Request:
// the config domain key (cache/throttle namespace), the API host, and the
// bearer token. Embedded by both concrete adapters.
type base struct {
	domainKey string
	apiBase   string
	token     string
}

func (b base) authDiscriminator() string {
	sum := sha256.Sum256([]byte(b.token))
	return "token:" + hex.EncodeToString(sum[:])[:16]
}

func (b base) newRequest(method, url, category string, body []byte, extraHeaders map[string]string) engine.Request {
	req := engine.Request{
		Method:            method,
		URL:               url,
		Domain:            b.domainKey,
		Category:          category,
		AuthDiscriminator: b.authDiscriminator(),
		Body:              body,
	}
	req.Headers = make(map[string][]string)
	for k, v := range extraHeaders {
		req.Headers[k] = []string{v}
	}
	return req
}

func unsupported(providerName domain.Provider, op string) error {
	return gitarerrors.NewUnsupportedError(string(providerName), op)
}
