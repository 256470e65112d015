// Package tui is the interactive Inkwell client: a three-pane terminal UI
// (projects, prompts, editor/whiteboard) speaking to a running server over
// the REST API.
//
// Editing is autosaved through a debounced controller, prompt rows reorder
// by keyboard or mouse drag with optimistic updates, and the whiteboard
// converges across sessions via a polling sync checker.
package tui

import (
	"inkwell/internal/apiclient"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(client *apiclient.Client) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(client)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
