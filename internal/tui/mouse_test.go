package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// Geometry at 100x30: projects pane columns 0-19, gap, prompts pane 22-54,
// gap, editor pane 57+. Prompt rows start at y=5 (header, spacer, pane
// title, then the list's two-row filter strip); project rows at y=3.

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func wheel(x, y int, up bool) tea.MouseMsg {
	b := tea.MouseButtonWheelDown
	if up {
		b = tea.MouseButtonWheelUp
	}
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: b}
}

func TestMouse_PaneAt(t *testing.T) {
	m := newTestApp(t)

	cases := []struct {
		x    int
		want pane
		ok   bool
	}{
		{0, paneProjects, true},
		{19, paneProjects, true},
		{20, 0, false}, // gap
		{22, panePrompts, true},
		{54, panePrompts, true},
		{55, 0, false}, // gap
		{57, paneEditor, true},
		{99, paneEditor, true},
		{-1, 0, false},
	}
	for _, tc := range cases {
		got, ok := m.paneAt(tc.x)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("paneAt(%d) = (%v,%v), want (%v,%v)", tc.x, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMouse_ClickSelectsThenOpens(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)

	// First click on Beta's row selects it and moves focus.
	m2, cmd := stepCmd(t, m, leftPress(30, 6))
	m = m2
	if cmd != nil {
		t.Fatalf("selecting click issued a command")
	}
	if m.pane != panePrompts {
		t.Fatalf("pane after click = %v, want prompts", m.pane)
	}
	if got := m.promptsList.Index(); got != 1 {
		t.Fatalf("selected row = %d, want 1", got)
	}

	// Clicking the selected row again opens it.
	openSeqBefore := m.openSeq
	m2, cmd = stepCmd(t, m, leftPress(30, 6))
	m = m2
	if cmd == nil {
		t.Fatalf("click on the selected row did not open it")
	}
	if m.openSeq != openSeqBefore+1 {
		t.Fatalf("openSeq = %d, want %d", m.openSeq, openSeqBefore+1)
	}
}

func TestMouse_GripDragReordersAndReleaseDrops(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)

	// Press inside the grip zone of the first row picks it up.
	m = step(t, m, leftPress(22, 5))
	if !m.order.Grabbing() || m.order.Grabbed() != 0 {
		t.Fatalf("grip press did not grab row 0: grabbing=%v grabbed=%d", m.order.Grabbing(), m.order.Grabbed())
	}

	// Dragging down two rows carries the row along.
	m = step(t, m, motion(25, 7))
	if got := m.order.Grabbed(); got != 2 {
		t.Fatalf("grabbed index after drag = %d, want 2", got)
	}
	if got := m.order.IDs(); got[2] != "prm-a0000000" {
		t.Fatalf("mirror after drag = %v, want Alpha carried to the end", got)
	}

	// Release drops and persists.
	m2, cmd := stepCmd(t, m, release(25, 7))
	m = m2
	if cmd == nil {
		t.Fatalf("release did not issue a persist")
	}
	if m.order.Grabbing() {
		t.Fatalf("still carrying after release")
	}

	m = step(t, m, reorderDoneMsg{seq: m.reorderSeq})
	if got := m.order.IDs(); got[2] != "prm-a0000000" {
		t.Fatalf("order after confirm = %v", got)
	}
}

func TestMouse_ClickOnRowBodyDoesNotGrab(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)

	// x=30 is well past the two-column grip zone.
	m = step(t, m, leftPress(30, 5))
	if m.order.Grabbing() {
		t.Fatalf("row-body click started a grab")
	}
}

func TestMouse_PressOutsidePromptsCancelsGrab(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)

	m = step(t, m, leftPress(22, 5))
	m = step(t, m, motion(25, 7))
	if !m.order.Grabbing() {
		t.Fatalf("setup: no grab in progress")
	}

	// A press over the editor pane abandons the carry and restores the
	// confirmed order.
	m2, cmd := stepCmd(t, m, leftPress(70, 10))
	m = m2
	if cmd != nil {
		t.Fatalf("cancelling press issued a command")
	}
	if m.order.Grabbing() {
		t.Fatalf("grab survived a press outside the prompts pane")
	}
	if got := m.order.IDs(); got[0] != "prm-a0000000" {
		t.Fatalf("order after cancel = %v, want the confirmed order", got)
	}
}

func TestMouse_WheelScrollsHoveredList(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)

	m = step(t, m, wheel(30, 6, false))
	if got := m.promptsList.Index(); got != 1 {
		t.Fatalf("prompts index after wheel down = %d, want 1", got)
	}
	m = step(t, m, wheel(30, 6, true))
	if got := m.promptsList.Index(); got != 0 {
		t.Fatalf("prompts index after wheel up = %d, want 0", got)
	}

	// The projects list scrolls independently.
	m = step(t, m, wheel(5, 3, false))
	if got := m.projectsList.Index(); got != 1 {
		t.Fatalf("projects index after wheel down = %d, want 1", got)
	}
	if got := m.promptsList.Index(); got != 0 {
		t.Fatalf("prompts index moved by the projects wheel: %d", got)
	}
}

func TestMouse_IgnoredWhileModalOpen(t *testing.T) {
	m := newTestApp(t)
	m = defaultFixtures(t, m)
	m = step(t, m, key("n")) // new-project modal

	m2, cmd := stepCmd(t, m, leftPress(22, 5))
	m = m2
	if cmd != nil {
		t.Fatalf("mouse press under a modal issued a command")
	}
	if m.order.Grabbing() {
		t.Fatalf("mouse press under a modal started a grab")
	}
	if m.modal != modalNewProject {
		t.Fatalf("modal closed by a mouse press")
	}
}
