package apiclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"inkwell/internal/api"
	"inkwell/internal/model"
	"inkwell/internal/store"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.New(st, nil).Router())
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClientHealth(t *testing.T) {
	c := testClient(t)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestClientPromptFlow(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	p, err := c.CreatePrompt(ctx, PromptDraft{Content: "Summarize the following meeting notes"})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if p.Name != "Summarize the following meeting notes" {
		t.Fatalf("derived name: %q", p.Name)
	}

	content := "revised"
	p, err = c.UpdatePrompt(ctx, p.ID, PromptPatch{Content: &content})
	if err != nil {
		t.Fatalf("UpdatePrompt: %v", err)
	}
	if p.Content != "revised" {
		t.Fatalf("content: %q", p.Content)
	}

	prompts, err := c.ListPrompts(ctx, PromptQuery{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(prompts))
	}

	second, err := c.CreatePrompt(ctx, PromptDraft{Content: "another"})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if err := c.ReorderPrompts(ctx, []string{second.ID, p.ID}); err != nil {
		t.Fatalf("ReorderPrompts: %v", err)
	}
	prompts, err = c.ListPrompts(ctx, PromptQuery{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	if prompts[0].ID != second.ID {
		t.Fatalf("reorder not applied: %+v", prompts)
	}

	if err := c.DeletePrompt(ctx, p.ID); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}
}

func TestClientProjectFlowAndErrors(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	proj, err := c.CreateProject(ctx, "Research")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := c.UpdateWhiteboard(ctx, proj.ID, "## plan"); err != nil {
		t.Fatalf("UpdateWhiteboard: %v", err)
	}
	got, err := c.GetProject(ctx, proj.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Whiteboard != "## plan" {
		t.Fatalf("whiteboard: %q", got.Whiteboard)
	}

	_, err = c.GetPrompt(ctx, "prompt-missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "Prompt not found" {
		t.Fatalf("detail: %v", err)
	}
	if msg := FailureMessage("Loading prompt", err); msg != "Loading prompt failed: Prompt not found" {
		t.Fatalf("FailureMessage: %q", msg)
	}

	_, err = c.CreateProject(ctx, "Research")
	if err == nil || err.Error() != "A project with this name already exists" {
		t.Fatalf("duplicate project error: %v", err)
	}
}

func TestClientSettings(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()

	if err := c.SetSetting(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	s, err := c.GetSetting(ctx, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if s != (model.Setting{Key: "theme", Value: "dark"}) {
		t.Fatalf("setting: %+v", s)
	}
}
