package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileArgReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.txt")
	if err := os.WriteFile(path, []byte("hello gitar\n"), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	got, err := readFileArg(path)
	if err != nil {
		t.Fatalf("readFileArg() error = %v", err)
	}
	if got != "hello gitar\n" {
		t.Fatalf("readFileArg() = %q, want %q", got, "hello gitar\n")
	}
}

func TestReadFileArgMissingFile(t *testing.T) {
	if _, err := readFileArg("/nonexistent/path/body.txt"); err == nil {
		t.Fatal("readFileArg() error = nil, want error for missing file")
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("set", "fallback"); got != "set" {
		t.Fatalf("orDefault() = %q, want %q", got, "set")
	}
	if got := orDefault("", "fallback"); got != "fallback" {
		t.Fatalf("orDefault() = %q, want %q", got, "fallback")
	}
}
