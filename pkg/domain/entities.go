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

// Package domain holds the provider-neutral entities and filters that
// flow between callers and provider adapters. Pure data: no I/O, no
// provider-specific behavior.
package domain

import "time"

// Provider names a code-hosting backend an entity was sourced from.
// Recorded for display only — it never participates in equality checks
// that matter to callers beyond provenance.
type Provider string

const (
	ProviderGitLab Provider = "gitlab"
	ProviderGitHub Provider = "github"
)

// MrState is the provider-neutral merge/pull request state.
type MrState string

const (
	MrOpen   MrState = "open"
	MrClosed MrState = "closed"
	MrMerged MrState = "merged"
)

// User is a provider-neutral account reference.
type User struct {
	Username string
	ID       int64
	Provider Provider
}

// Comment is a single discussion comment on a merge/pull request.
type Comment struct {
	ID        int64
	Author    User
	Body      string
	CreatedAt time.Time
}

// MergeRequest is the provider-neutral merge/pull request entity.
type MergeRequest struct {
	ID          int64
	Title       string
	Description string
	Source      string
	Target      string
	Author      User
	Assignees   []User
	State       MrState
	Draft       bool
	Labels      []string
	Comments    []Comment
	CreatedAt   time.Time
	UpdatedAt   time.Time
	WebURL      string
	Provider    Provider
}

// Pipeline is the provider-neutral CI pipeline/workflow-run entity.
type Pipeline struct {
	ID        int64
	Status    string
	Ref       string
	SHA       string
	Duration  time.Duration
	CreatedAt time.Time
	UpdatedAt time.Time
	WebURL    string
	Provider  Provider
}

// Project is the provider-neutral repository entity.
type Project struct {
	ID            int64
	Namespace     string
	Name          string
	Path          string
	Description   string
	Private       bool
	DefaultBranch string
	Members       []User
	Provider      Provider
}

// ReleaseAsset is a single downloadable artifact attached to a release.
type ReleaseAsset struct {
	Name        string
	DownloadURL string
	SizeBytes   int64
}

// Release is the provider-neutral release entity.
type Release struct {
	ID        int64
	Tag       string
	Name      string
	CreatedAt time.Time
	Assets    []ReleaseAsset
	Provider  Provider
}

// ContainerRepo is a container registry repository.
type ContainerRepo struct {
	Name     string
	Path     string
	Provider Provider
}

// ContainerTag is a single tag within a ContainerRepo.
type ContainerTag struct {
	Name      string
	Digest    string
	SizeBytes int64
	PushedAt  time.Time
	Provider  Provider
}

// Runner is a CI runner/agent registered against a project or group.
type Runner struct {
	ID       int64
	Name     string
	Status   string
	Online   bool
	Paused   bool
	Tags     []string
	Provider Provider
}
