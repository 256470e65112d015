package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"inkwell/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "inkwell.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenEnsuresDefaultProject(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	projects, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != model.DefaultProjectName {
		t.Fatalf("expected only the Default project, got %+v", projects)
	}

	def, err := s.DefaultProject(ctx)
	if err != nil {
		t.Fatalf("DefaultProject: %v", err)
	}
	if def.ID != projects[0].ID {
		t.Fatalf("DefaultProject id mismatch: %q vs %q", def.ID, projects[0].ID)
	}
}

func TestSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetSetting(ctx, "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSetting(missing): expected ErrNotFound, got %v", err)
	}
	if err := s.SetSetting(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting(ctx, "theme", "light"); err != nil {
		t.Fatalf("SetSetting(overwrite): %v", err)
	}
	v, err := s.GetSetting(ctx, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "light" {
		t.Fatalf("GetSetting: expected %q, got %q", "light", v)
	}
}
