package store

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/model"
)

func TestProjectLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	proj, err := s.CreateProject(ctx, "Research", "scratch notes")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if proj.Name != "Research" || proj.Whiteboard != "scratch notes" {
		t.Fatalf("unexpected project: %+v", proj)
	}
	if proj.CreatedAt.IsZero() || proj.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set: %+v", proj)
	}

	got, err := s.GetProject(ctx, proj.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "Research" {
		t.Fatalf("GetProject: expected %q, got %q", "Research", got.Name)
	}

	name := "Research Notes"
	updated, err := s.UpdateProject(ctx, proj.ID, ProjectUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.Name != "Research Notes" {
		t.Fatalf("rename: expected %q, got %q", "Research Notes", updated.Name)
	}

	text := "## agenda"
	updated, err = s.UpdateProject(ctx, proj.ID, ProjectUpdate{Whiteboard: &text})
	if err != nil {
		t.Fatalf("UpdateProject(whiteboard): %v", err)
	}
	if updated.Whiteboard != "## agenda" || updated.Name != "Research Notes" {
		t.Fatalf("whiteboard update clobbered fields: %+v", updated)
	}

	if err := s.DeleteProject(ctx, proj.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.GetProject(ctx, proj.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProject(deleted): expected ErrNotFound, got %v", err)
	}
}

func TestProjectNameValidation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateProject(ctx, "   ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank name: expected ErrEmptyName, got %v", err)
	}
	if _, err := s.CreateProject(ctx, model.DefaultProjectName, ""); !errors.Is(err, ErrProjectExists) {
		t.Fatalf("duplicate name: expected ErrProjectExists, got %v", err)
	}

	a, err := s.CreateProject(ctx, "Alpha", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := s.CreateProject(ctx, "Beta", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	name := "Beta"
	if _, err := s.UpdateProject(ctx, a.ID, ProjectUpdate{Name: &name}); !errors.Is(err, ErrProjectExists) {
		t.Fatalf("rename onto taken name: expected ErrProjectExists, got %v", err)
	}
	// Renaming to its own current name is a no-op, not a collision.
	name = "Alpha"
	if _, err := s.UpdateProject(ctx, a.ID, ProjectUpdate{Name: &name}); err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
}

func TestDefaultProjectProtected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def, err := s.DefaultProject(ctx)
	if err != nil {
		t.Fatalf("DefaultProject: %v", err)
	}

	if err := s.DeleteProject(ctx, def.ID); !errors.Is(err, ErrDefaultProject) {
		t.Fatalf("delete Default: expected ErrDefaultProject, got %v", err)
	}
	name := "Inbox"
	if _, err := s.UpdateProject(ctx, def.ID, ProjectUpdate{Name: &name}); !errors.Is(err, ErrDefaultProject) {
		t.Fatalf("rename Default: expected ErrDefaultProject, got %v", err)
	}

	// The whiteboard is still editable.
	text := "shared scratchpad"
	updated, err := s.UpdateWhiteboard(ctx, def.ID, text)
	if err != nil {
		t.Fatalf("UpdateWhiteboard(Default): %v", err)
	}
	if updated.Whiteboard != "shared scratchpad" {
		t.Fatalf("whiteboard: expected %q, got %q", "shared scratchpad", updated.Whiteboard)
	}
}

func TestDeleteProjectReassignsPrompts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	proj, err := s.CreateProject(ctx, "Doomed", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	p, err := s.CreatePrompt(ctx, PromptCreate{Content: "orphan me", ProjectID: &proj.ID})
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	if err := s.DeleteProject(ctx, proj.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	def, err := s.DefaultProject(ctx)
	if err != nil {
		t.Fatalf("DefaultProject: %v", err)
	}
	moved, err := s.GetPrompt(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if moved.ProjectID == nil || *moved.ProjectID != def.ID {
		t.Fatalf("expected prompt reassigned to Default, got %+v", moved.ProjectID)
	}
	if moved.ProjectName != model.DefaultProjectName {
		t.Fatalf("expected project_name %q, got %q", model.DefaultProjectName, moved.ProjectName)
	}
}
