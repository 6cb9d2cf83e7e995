// Copyright 2026 GitAR Authors
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitar-cli/gitar/internal/config"
	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMergesMainAndDomainFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gitar.toml", `
[gitlab_com]
provider = "gitlab"
api_base = "https://gitlab.com/api/v4"
`)
	writeFile(t, dir, "gitlab_com.toml", `
[mr_defaults]
state = "opened"
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Contains(t, cfg.Domains, "gitlab_com")
	d := cfg.Domains["gitlab_com"]
	assert.Equal(t, "gitlab", d.Provider)
	assert.Equal(t, "gitlab.com", d.Host)
	assert.Equal(t, "opened", d.MrDefaults.State)
}

func TestLoadDuplicateKeyAcrossFilesIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gitar.toml", `
[github_com]
api_token = "from-main"
`)
	writeFile(t, dir, "github_com.toml", `
api_token = "from-sibling"
`)

	_, err := config.Load(dir)
	require.Error(t, err)
	gerr, ok := gitarerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gitarerrors.Config, gerr.Category())
	assert.Contains(t, gerr.Error(), "duplicate configuration key")
	assert.Contains(t, gerr.Chain(), "github_com.api_token")
}

func TestLoadMissingDirectoryReturnsEmptyConfig(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Domains)
	assert.Empty(t, cfg.ProjectOverrides)
}

func TestLoadProjectOverrideIsKeptSeparateFromDomainFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gitar.toml", `
[gitlab_com]
provider = "gitlab"

[gitlab_com.mr_defaults]
state = "opened"
author = "alice"
`)
	writeFile(t, dir, "gitlab_com_myteam_myproj.toml", `
[mr_defaults]
state = "merged"
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	override, ok := cfg.ProjectOverrides["gitlab_com/myteam/myproj"]
	require.True(t, ok)
	assert.Equal(t, "merged", override.State)
	assert.Empty(t, override.Author, "project override replaces the whole table rather than merging fields")
}

func TestResolveShadowsDomainDefaultsWithProjectOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gitar.toml", `
[gitlab_com]
provider = "gitlab"

[gitlab_com.mr_defaults]
state = "opened"
author = "alice"
`)
	writeFile(t, dir, "gitlab_com_myteam_myproj.toml", `
[mr_defaults]
state = "merged"
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	resolved, err := cfg.Resolve("gitlab.com", "myteam", "myproj")
	require.NoError(t, err)
	assert.Equal(t, "merged", resolved.MrDefaults.State)
	assert.Empty(t, resolved.MrDefaults.Author, "override replaces the domain table wholesale, not field by field")

	unscoped, err := cfg.Resolve("gitlab.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, "opened", unscoped.MrDefaults.State)
	assert.Equal(t, "alice", unscoped.MrDefaults.Author)
}

func TestResolveFallsBackToEnvironmentToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gitar.toml", `
[gitlab_com]
provider = "gitlab"
`)
	t.Setenv("GITLAB_COM_API_TOKEN", "secret-token")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	resolved, err := cfg.Resolve("gitlab.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", resolved.Token)
}

func TestResolveUnknownDomainIsConfigError(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	_, err = cfg.Resolve("example.com", "", "")
	require.Error(t, err)
	gerr, ok := gitarerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, gitarerrors.Config, gerr.Category())
}
