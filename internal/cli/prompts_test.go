package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"inkwell/internal/model"
)

func TestPromptsLifecycle(t *testing.T) {
	srv, _ := startTestServer(t)
	base := []string{"--base-url", srv.URL}

	out, errOut, err := runCLI(t, append(base, "prompts", "create", "--name", "Greeting", "--content", "Hello there"))
	if err != nil {
		t.Fatalf("create: %v\nstderr:\n%s", err, errOut)
	}
	var greeting model.Prompt
	if err := json.Unmarshal(out, &greeting); err != nil {
		t.Fatalf("unmarshal create output: %v\nstdout:\n%s", err, string(out))
	}
	if !strings.HasPrefix(greeting.ID, "prm-") {
		t.Errorf("prompt id = %q, want prm- prefix", greeting.ID)
	}
	if greeting.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", greeting.Status)
	}
	if greeting.ProjectName != model.DefaultProjectName {
		t.Errorf("project = %q, want Default", greeting.ProjectName)
	}

	// No name: the server derives one from the content.
	out, _, err = runCLI(t, append(base, "prompts", "create",
		"--content", "Explain quantum computing to a five year old in simple terms"))
	if err != nil {
		t.Fatalf("create derived: %v", err)
	}
	var derived model.Prompt
	if err := json.Unmarshal(out, &derived); err != nil {
		t.Fatalf("unmarshal derived output: %v", err)
	}
	if derived.Name != "Explain quantum computing to a five" {
		t.Errorf("derived name = %q", derived.Name)
	}

	out, _, err = runCLI(t, append(base, "prompts", "get", greeting.ID, "--content"))
	if err != nil {
		t.Fatalf("get --content: %v", err)
	}
	if string(out) != "Hello there\n" {
		t.Errorf("content output = %q, want %q", string(out), "Hello there\n")
	}

	out, errOut, err = runCLI(t, append(base, "prompts", "set-status", greeting.ID, "--status", "archived"))
	if err != nil {
		t.Fatalf("set-status: %v\nstderr:\n%s", err, errOut)
	}
	var archived model.Prompt
	if err := json.Unmarshal(out, &archived); err != nil {
		t.Fatalf("unmarshal set-status output: %v", err)
	}
	if archived.Status != model.StatusArchived {
		t.Errorf("status after set-status = %q", archived.Status)
	}

	out, _, err = runCLI(t, append(base, "prompts", "list", "--status", "draft"))
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	var drafts []model.Prompt
	if err := json.Unmarshal(out, &drafts); err != nil {
		t.Fatalf("unmarshal drafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != derived.ID {
		t.Fatalf("draft filter returned %+v, want only %s", drafts, derived.ID)
	}

	if _, errOut, err := runCLI(t, append(base, "prompts", "delete", greeting.ID)); err != nil {
		t.Fatalf("delete: %v\nstderr:\n%s", err, errOut)
	}
	out, _, err = runCLI(t, append(base, "prompts", "list"))
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	var left []model.Prompt
	if err := json.Unmarshal(out, &left); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(left) != 1 || left[0].ID != derived.ID {
		t.Fatalf("after delete got %+v, want only %s", left, derived.ID)
	}
}

func TestPromptsSetStatus_RejectsUnknown(t *testing.T) {
	srv, _ := startTestServer(t)

	_, errOut, err := runCLI(t, []string{"--base-url", srv.URL, "prompts", "set-status", "prm-whatever", "--status", "bogus"})
	if err == nil {
		t.Fatal("set-status bogus succeeded, want error")
	}
	if !strings.Contains(string(errOut), "invalid status") {
		t.Errorf("stderr = %q, want invalid status message", string(errOut))
	}
}

func TestPromptsMove_ReordersWithinProject(t *testing.T) {
	srv, _ := startTestServer(t)
	base := []string{"--base-url", srv.URL}

	var ids []string
	for _, content := range []string{"first", "second", "third"} {
		out, _, err := runCLI(t, append(base, "prompts", "create", "--name", content, "--content", content))
		if err != nil {
			t.Fatalf("create %s: %v", content, err)
		}
		var p model.Prompt
		if err := json.Unmarshal(out, &p); err != nil {
			t.Fatalf("unmarshal create output: %v", err)
		}
		ids = append(ids, p.ID)
	}

	if _, errOut, err := runCLI(t, append(base, "prompts", "move", ids[2], "0")); err != nil {
		t.Fatalf("move: %v\nstderr:\n%s", err, errOut)
	}
	if got := listPromptIDs(t, srv.URL); !equalStrings(got, []string{ids[2], ids[0], ids[1]}) {
		t.Errorf("order after move = %v, want %v", got, []string{ids[2], ids[0], ids[1]})
	}

	// Positions past the end clamp to the last slot.
	if _, errOut, err := runCLI(t, append(base, "prompts", "move", ids[2], "99")); err != nil {
		t.Fatalf("move clamp: %v\nstderr:\n%s", err, errOut)
	}
	if got := listPromptIDs(t, srv.URL); !equalStrings(got, []string{ids[0], ids[1], ids[2]}) {
		t.Errorf("order after clamped move = %v, want %v", got, []string{ids[0], ids[1], ids[2]})
	}
}

// Moving inside one project must not disturb the slots other projects'
// prompts occupy in the global order.
func TestPromptsMove_LeavesOtherProjectsInPlace(t *testing.T) {
	srv, _ := startTestServer(t)
	base := []string{"--base-url", srv.URL}

	out, _, err := runCLI(t, append(base, "projects", "create", "--name", "Work"))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	var work model.Project
	if err := json.Unmarshal(out, &work); err != nil {
		t.Fatalf("unmarshal project: %v", err)
	}

	create := func(name string, projectID string) string {
		t.Helper()
		args := append(base, "prompts", "create", "--name", name, "--content", name)
		if projectID != "" {
			args = append(args, "--project", projectID)
		}
		out, _, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		var p model.Prompt
		if err := json.Unmarshal(out, &p); err != nil {
			t.Fatalf("unmarshal create output: %v", err)
		}
		return p.ID
	}

	d1 := create("d1", "")
	w1 := create("w1", work.ID)
	d2 := create("d2", "")
	w2 := create("w2", work.ID)

	if _, errOut, err := runCLI(t, append(base, "prompts", "move", d2, "0")); err != nil {
		t.Fatalf("move: %v\nstderr:\n%s", err, errOut)
	}

	got := listPromptIDs(t, srv.URL)
	want := []string{d2, w1, d1, w2}
	if !equalStrings(got, want) {
		t.Errorf("global order = %v, want %v", got, want)
	}
}

func listPromptIDs(t *testing.T, baseURL string) []string {
	t.Helper()
	out, errOut, err := runCLI(t, []string{"--base-url", baseURL, "prompts", "list"})
	if err != nil {
		t.Fatalf("list: %v\nstderr:\n%s", err, errOut)
	}
	var prompts []model.Prompt
	if err := json.Unmarshal(out, &prompts); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	ids := make([]string, len(prompts))
	for i, p := range prompts {
		ids[i] = p.ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
