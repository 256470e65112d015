package store

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/model"
)

func TestCreatePromptDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePrompt(ctx, PromptCreate{Content: "Explain quantum computing to a five year old"})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if p.Name != "Explain quantum computing to a five" {
		t.Fatalf("derived name: got %q", p.Name)
	}
	if p.Status != model.StatusDraft {
		t.Fatalf("status: expected %q, got %q", model.StatusDraft, p.Status)
	}
	if p.ProjectName != model.DefaultProjectName {
		t.Fatalf("expected assignment to Default, got %q", p.ProjectName)
	}
	if p.Order != 0 {
		t.Fatalf("first prompt position: expected 0, got %d", p.Order)
	}

	empty, err := s.CreatePrompt(ctx, PromptCreate{})
	if err != nil {
		t.Fatalf("CreatePrompt(empty): %v", err)
	}
	if empty.Name != model.PlaceholderName {
		t.Fatalf("empty prompt name: expected %q, got %q", model.PlaceholderName, empty.Name)
	}
	if empty.Order != 1 {
		t.Fatalf("second prompt position: expected 1, got %d", empty.Order)
	}
}

func TestCreatePromptExplicit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	proj, err := s.CreateProject(ctx, "Writing", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	p, err := s.CreatePrompt(ctx, PromptCreate{
		Name:      "Opener",
		Status:    model.StatusArchived,
		Content:   "Write a cold open",
		ProjectID: &proj.ID,
	})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if p.Name != "Opener" || p.Status != model.StatusArchived || p.ProjectName != "Writing" {
		t.Fatalf("unexpected prompt: %+v", p)
	}

	if _, err := s.CreatePrompt(ctx, PromptCreate{Status: "published"}); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("bad status: expected ErrBadStatus, got %v", err)
	}
	missing := "proj-missing1"
	if _, err := s.CreatePrompt(ctx, PromptCreate{ProjectID: &missing}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing project: expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePromptPartial(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePrompt(ctx, PromptCreate{Name: "Keep", Content: "original body"})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	content := "revised body"
	got, err := s.UpdatePrompt(ctx, p.ID, PromptUpdate{Content: &content})
	if err != nil {
		t.Fatalf("UpdatePrompt(content): %v", err)
	}
	if got.Name != "Keep" || got.Content != "revised body" {
		t.Fatalf("content update clobbered fields: %+v", got)
	}

	status := model.StatusArchived
	got, err = s.UpdatePrompt(ctx, p.ID, PromptUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdatePrompt(status): %v", err)
	}
	if got.Status != model.StatusArchived {
		t.Fatalf("status: expected %q, got %q", model.StatusArchived, got.Status)
	}

	bad := model.Status("published")
	if _, err := s.UpdatePrompt(ctx, p.ID, PromptUpdate{Status: &bad}); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("bad status: expected ErrBadStatus, got %v", err)
	}

	// Clearing the name re-derives it from content.
	blank := ""
	got, err = s.UpdatePrompt(ctx, p.ID, PromptUpdate{Name: &blank})
	if err != nil {
		t.Fatalf("UpdatePrompt(blank name): %v", err)
	}
	if got.Name != "revised body" {
		t.Fatalf("re-derived name: expected %q, got %q", "revised body", got.Name)
	}

	proj, err := s.CreateProject(ctx, "Moved", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	got, err = s.UpdatePrompt(ctx, p.ID, PromptUpdate{ProjectID: &proj.ID})
	if err != nil {
		t.Fatalf("UpdatePrompt(project): %v", err)
	}
	if got.ProjectName != "Moved" {
		t.Fatalf("move: expected project %q, got %q", "Moved", got.ProjectName)
	}

	if _, err := s.UpdatePrompt(ctx, "prompt-missing", PromptUpdate{Content: &content}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing prompt: expected ErrNotFound, got %v", err)
	}
}

func TestListPromptsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	proj, err := s.CreateProject(ctx, "Filtered", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.CreatePrompt(ctx, PromptCreate{Name: "in default", Content: "a"}); err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if _, err := s.CreatePrompt(ctx, PromptCreate{Name: "in project", Content: "b", ProjectID: &proj.ID}); err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if _, err := s.CreatePrompt(ctx, PromptCreate{Name: "archived", Content: "c", Status: model.StatusArchived, ProjectID: &proj.ID}); err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	all, err := s.ListPrompts(ctx, PromptFilter{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Order > all[i].Order {
			t.Fatalf("list not ordered by position: %d before %d", all[i-1].Order, all[i].Order)
		}
	}

	byProject, err := s.ListPrompts(ctx, PromptFilter{ProjectID: proj.ID})
	if err != nil {
		t.Fatalf("ListPrompts(project): %v", err)
	}
	if len(byProject) != 2 {
		t.Fatalf("project filter: expected 2 prompts, got %d", len(byProject))
	}

	status := model.StatusArchived
	archived, err := s.ListPrompts(ctx, PromptFilter{ProjectID: proj.ID, Status: status})
	if err != nil {
		t.Fatalf("ListPrompts(status): %v", err)
	}
	if len(archived) != 1 || archived[0].Name != "archived" {
		t.Fatalf("status filter: got %+v", archived)
	}
}

func TestReorderPrompts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		p, err := s.CreatePrompt(ctx, PromptCreate{Name: name, Content: name})
		if err != nil {
			t.Fatalf("CreatePrompt(%s): %v", name, err)
		}
		ids = append(ids, p.ID)
	}

	if err := s.ReorderPrompts(ctx, []string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("ReorderPrompts: %v", err)
	}
	got, err := s.ListPrompts(ctx, PromptFilter{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	want := []string{"third", "first", "second"}
	for i, p := range got {
		if p.Name != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], p.Name)
		}
		if p.Order != i {
			t.Fatalf("position %d: expected order %d, got %d", i, i, p.Order)
		}
	}

	// An unknown id fails the whole batch and leaves positions untouched.
	err = s.ReorderPrompts(ctx, []string{ids[0], "prompt-missing", ids[1]})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("reorder with unknown id: expected ErrNotFound, got %v", err)
	}
	got, err = s.ListPrompts(ctx, PromptFilter{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Fatalf("after failed reorder, position %d: expected %q, got %q", i, want[i], p.Name)
		}
	}
}

func TestDeletePrompt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePrompt(ctx, PromptCreate{Content: "short lived"})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if err := s.DeletePrompt(ctx, p.ID); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}
	if _, err := s.GetPrompt(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPrompt(deleted): expected ErrNotFound, got %v", err)
	}
	if err := s.DeletePrompt(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeletePrompt(again): expected ErrNotFound, got %v", err)
	}
}
