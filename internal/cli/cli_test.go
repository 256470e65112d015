package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/api"
	"inkwell/internal/store"
)

// runCLI executes the command tree in-process with captured output.
func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// startTestServer serves the REST API over a fresh store. Client commands
// reach it with --base-url, so no config or environment is involved.
func startTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.New(st, nil).Router())
	t.Cleanup(srv.Close)
	return srv, st
}

func TestRootHelp_ListsCommands(t *testing.T) {
	out, errOut, err := runCLI(t, []string{"--help"})
	if err != nil {
		t.Fatalf("help: %v\nstderr:\n%s", err, errOut)
	}
	for _, want := range []string{"serve", "prompts", "projects", "backup", "restore", "mcp", "docs"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("help output missing %q:\n%s", want, string(out))
		}
	}
}

func TestFormatTable_ProjectsList(t *testing.T) {
	srv, _ := startTestServer(t)

	out, errOut, err := runCLI(t, []string{"--base-url", srv.URL, "--format", "table", "projects", "list"})
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, errOut)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + Default row:\n%s", len(lines), string(out))
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Default") {
		t.Errorf("row = %q, want the Default project", lines[1])
	}
}
