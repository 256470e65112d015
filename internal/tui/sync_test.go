package tui

import (
	"testing"
	"time"
)

func TestSyncChecker_DirtyEditorIsNeverOverwritten(t *testing.T) {
	var c syncChecker
	gen := c.Reset("server v1")
	now := time.Now()

	if c.ShouldApply(gen, "server v2", true, now) {
		t.Fatalf("fetched value applied over unsaved local changes")
	}
	// Even much later, with no recent typing.
	if c.ShouldApply(gen, "server v2", true, now.Add(time.Minute)) {
		t.Fatalf("dirty guard lapsed over time")
	}
	// Once the local changes are saved, the next differing poll applies.
	if !c.ShouldApply(gen, "server v2", false, now.Add(time.Minute)) {
		t.Fatalf("clean editor rejected a new server value")
	}
}

func TestSyncChecker_TypingGuard(t *testing.T) {
	var c syncChecker
	gen := c.Reset("v1")
	base := time.Now()

	c.NoteEdit(base)
	if c.ShouldApply(gen, "v2", false, base.Add(500*time.Millisecond)) {
		t.Fatalf("applied while typing 500ms ago")
	}
	if !c.ShouldApply(gen, "v2", false, base.Add(1500*time.Millisecond)) {
		t.Fatalf("held back though typing stopped 1.5s ago")
	}
}

func TestSyncChecker_OnlyNewValuesApply(t *testing.T) {
	var c syncChecker
	gen := c.Reset("v1")
	now := time.Now()

	if c.ShouldApply(gen, "v1", false, now) {
		t.Fatalf("re-applied the value already on screen")
	}

	if !c.ShouldApply(gen, "v2", false, now) {
		t.Fatalf("new value rejected")
	}
	c.Applied("v2")
	if c.ShouldApply(gen, "v2", false, now) {
		t.Fatalf("applied the same value twice")
	}

	// A local save counts as applied too: polling back our own write is
	// not an update.
	c.Applied("local v3")
	if c.ShouldApply(gen, "local v3", false, now) {
		t.Fatalf("poll echoing our own save was applied")
	}
}

func TestSyncChecker_ProjectSwitchInvalidatesPolls(t *testing.T) {
	var c syncChecker
	oldGen := c.Reset("project A board")
	newGen := c.Reset("project B board")
	now := time.Now()

	if oldGen == newGen {
		t.Fatalf("Reset did not advance the poll generation")
	}
	// A poll issued for project A lands after the switch.
	if c.ShouldApply(oldGen, "project A board v2", false, now) {
		t.Fatalf("stale poll for the previous project was applied")
	}
	if !c.ShouldApply(newGen, "project B board v2", false, now) {
		t.Fatalf("current project's poll rejected")
	}

	// Typing history from the old project does not linger.
	c.NoteEdit(now)
	c.Reset("project C board")
	if got := c.Gen(); got != newGen+1 {
		t.Fatalf("gen = %d, want %d", got, newGen+1)
	}
	if !c.ShouldApply(c.Gen(), "fresh", false, now.Add(10*time.Millisecond)) {
		t.Fatalf("typing guard carried across a project switch")
	}
}
