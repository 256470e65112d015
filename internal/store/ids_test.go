package store

import (
	"context"
	"strings"
	"testing"
)

func TestNewRandomID_PrefixAndLength(t *testing.T) {
	for _, prefix := range []string{"proj", "prm"} {
		id, err := newRandomID(prefix)
		if err != nil {
			t.Fatalf("newRandomID(%q): %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix+"-") {
			t.Fatalf("expected %s prefix, got %q", prefix, id)
		}
		suffix := strings.TrimPrefix(id, prefix+"-")
		if got, want := len(suffix), 8; got != want {
			t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Fatalf("expected lowercase suffix, got %q", suffix)
		}
	}
}

func TestNewRandomID_NoPadding(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := newRandomID("prm")
		if err != nil {
			t.Fatalf("newRandomID: %v", err)
		}
		if strings.Contains(id, "=") {
			t.Fatalf("unexpected padding in %q", id)
		}
	}
}

func TestNewID_AvoidsExistingRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, err := s.newID(ctx, "prm")
		if err != nil {
			t.Fatalf("newID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
