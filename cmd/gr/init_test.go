package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDomainTableCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitar.toml")
	f := initFlags{provider: "gitlab", token: "secret", cacheLocation: "/tmp/cache"}

	if err := writeDomainTable(path, "gitlab_com", f); err != nil {
		t.Fatalf("writeDomainTable() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "[gitlab_com]") {
		t.Fatalf("writeDomainTable() output missing [gitlab_com] table:\n%s", body)
	}
	if !strings.Contains(body, `provider = 'gitlab'`) && !strings.Contains(body, `provider = "gitlab"`) {
		t.Fatalf("writeDomainTable() output missing provider value:\n%s", body)
	}
}

func TestWriteDomainTablePreservesOtherDomains(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitar.toml")
	if err := os.WriteFile(path, []byte("[github_com]\nprovider = \"github\"\n"), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	f := initFlags{provider: "gitlab", cacheLocation: "/tmp/cache"}
	if err := writeDomainTable(path, "gitlab_com", f); err != nil {
		t.Fatalf("writeDomainTable() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "github_com") || !strings.Contains(body, "gitlab_com") {
		t.Fatalf("writeDomainTable() dropped an existing domain table:\n%s", body)
	}
}

func TestWriteDomainTableRejectsMalformedExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitar.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	if err := writeDomainTable(path, "gitlab_com", initFlags{provider: "gitlab"}); err == nil {
		t.Fatal("writeDomainTable() error = nil, want error for malformed existing file")
	}
}

func TestPromptReturnsDefaultOnEmptyInput(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n"))
	got := prompt(r, "Host", "gitlab.com")
	if got != "gitlab.com" {
		t.Fatalf("prompt() = %q, want default %q", got, "gitlab.com")
	}
}

func TestPromptReturnsTrimmedInput(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  github.com  \n"))
	got := prompt(r, "Host", "gitlab.com")
	if got != "github.com" {
		t.Fatalf("prompt() = %q, want %q", got, "github.com")
	}
}
