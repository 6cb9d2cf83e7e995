package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it. renderTable writes straight to os.Stdout,
// the same indirection its callers rely on for terminal output.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fnErr := fn()
	w.Close()

	var sb strings.Builder
	sc := bufio.NewReader(r)
	io.Copy(&sb, sc)
	return sb.String(), fnErr
}

func testTable() table {
	return table{
		Headers: []string{"id", "title"},
		Rows: [][]string{
			{"1", "first"},
			{"2", "second"},
		},
	}
}

func TestRenderTableCSV(t *testing.T) {
	out, err := captureStdout(t, func() error { return renderTable("csv", testTable()) })
	if err != nil {
		t.Fatalf("renderTable() error = %v", err)
	}
	if !strings.Contains(out, "id,title") || !strings.Contains(out, "1,first") {
		t.Fatalf("renderTable(csv) output = %q, missing expected rows", out)
	}
}

func TestRenderTablePipe(t *testing.T) {
	out, err := captureStdout(t, func() error { return renderTable("pipe", testTable()) })
	if err != nil {
		t.Fatalf("renderTable() error = %v", err)
	}
	if !strings.Contains(out, "id|title") || !strings.Contains(out, "2|second") {
		t.Fatalf("renderTable(pipe) output = %q, missing expected rows", out)
	}
}

func TestRenderTablePlainDefaultsOnEmptyFormat(t *testing.T) {
	out, err := captureStdout(t, func() error { return renderTable("", testTable()) })
	if err != nil {
		t.Fatalf("renderTable() error = %v", err)
	}
	if !strings.Contains(out, "id") || !strings.Contains(out, "first") {
		t.Fatalf("renderTable(\"\") output = %q, missing expected content", out)
	}
}

func TestRenderTableTOML(t *testing.T) {
	out, err := captureStdout(t, func() error { return renderTable("toml", testTable()) })
	if err != nil {
		t.Fatalf("renderTable() error = %v", err)
	}
	if !strings.Contains(out, "[[item]]") || !strings.Contains(out, "id = '1'") {
		t.Fatalf("renderTable(toml) output = %q, missing expected TOML array of tables", out)
	}
}

func TestRenderTableUnknownFormat(t *testing.T) {
	if err := renderTable("xml", testTable()); err == nil {
		t.Fatal("renderTable(xml) error = nil, want error for unsupported format")
	}
}
