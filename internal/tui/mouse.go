package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Pointer support. Clicks focus and select, the wheel scrolls the hovered
// list, and a press on a prompt row's grip zone picks the row up for
// drag-reordering. Drags reuse the keyboard grab state, so dropping,
// persisting, and failure rollback behave identically either way.

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modals and the resize overlay are keyboard-only surfaces.
	if m.modal != modalNone || m.resizing {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return m.handleWheel(msg)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return m.handleLeftPress(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.order.Grabbing() {
			m.dragGrabbedTo(msg.Y)
		}
	case tea.MouseActionRelease:
		if m.order.Grabbing() {
			m.dragGrabbedTo(msg.Y)
			return m.dropGrab()
		}
	}
	return m, nil
}

func (m appModel) handleWheel(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p, ok := m.paneAt(msg.X)
	if !ok {
		return m, nil
	}
	var l *list.Model
	switch p {
	case paneProjects:
		l = &m.projectsList
	case panePrompts:
		if m.order.Grabbing() {
			return m, nil
		}
		l = &m.promptsList
	default:
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelUp {
		l.CursorUp()
	} else {
		l.CursorDown()
	}
	return m, nil
}

func (m appModel) handleLeftPress(x, y int) (tea.Model, tea.Cmd) {
	p, ok := m.paneAt(x)
	if !ok {
		return m, nil
	}

	// Pressing outside the prompts pane abandons a carry in progress.
	if m.order.Grabbing() && p != panePrompts {
		m.order.CancelGrab()
		m.refreshPromptItems(false)
	}
	m.pane = p
	m.syncEditorFocus()

	switch p {
	case paneProjects:
		idx, ok := listRowIndex(&m.projectsList, y-(panesTopRow+paneTitleRows))
		if !ok {
			return m, nil
		}
		m.projectsList.Select(idx)
		if it, ok := m.projectsList.SelectedItem().(projectRowItem); ok && it.project.ID != m.selectedProjectID {
			cmd := m.bindProject(it.project)
			m.refreshProjectItems()
			return m, cmd
		}
		return m, nil

	case panePrompts:
		return m.handlePromptPress(x, y)

	case paneEditor:
		if m.editorOpen && !m.showPreview {
			if y == panesTopRow+paneTitleRows {
				m.editorFocus = focusName
			} else {
				m.editorFocus = focusContent
			}
			m.syncEditorFocus()
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) handlePromptPress(x, y int) (tea.Model, tea.Cmd) {
	projW, _, _ := m.paneWidths()
	localX := x - (projW + paneGapW)

	idx, ok := listRowIndex(&m.promptsList, y-(panesTopRow+paneTitleRows+promptFilterStripH))
	if !ok {
		if m.order.Grabbing() {
			m.order.CancelGrab()
			m.refreshPromptItems(false)
		}
		return m, nil
	}

	if m.order.Grabbing() {
		// A second press while carrying drops at the pressed row.
		m.dragGrabbedToIndex(idx)
		return m.dropGrab()
	}

	if localX < gripZoneW {
		// Grip press starts a drag. Reordering needs the unfiltered list so
		// row indexes line up with the order mirror.
		if m.promptsList.FilterState() != list.Unfiltered {
			cmd := m.showFlash("Clear the filter to reorder")
			return m, cmd
		}
		if m.order.Grab(idx) {
			m.refreshPromptItems(false)
			m.promptsList.Select(m.order.Grabbed())
		}
		return m, nil
	}

	// Clicking the already-selected row opens it; otherwise select.
	if idx == m.promptsList.Index() {
		if it, ok := m.promptsList.SelectedItem().(promptRowItem); ok {
			m.openSeq++
			return m, m.openPromptCmd(m.openSeq, it.prompt.ID)
		}
		return m, nil
	}
	m.promptsList.Select(idx)
	return m, nil
}

func (m *appModel) dragGrabbedTo(y int) {
	rowOffset := y - (panesTopRow + paneTitleRows + promptFilterStripH)
	first := m.promptsList.Paginator.Page * m.promptsList.Paginator.PerPage
	m.dragGrabbedToIndex(first + rowOffset)
}

func (m *appModel) dragGrabbedToIndex(idx int) {
	if !m.order.Grabbing() {
		return
	}
	idx = clampIndex(idx, m.order.Len())
	if m.order.MoveGrabbed(idx - m.order.Grabbed()) {
		m.refreshPromptItems(false)
		m.promptsList.Select(m.order.Grabbed())
	}
}

// paneAt maps an x column to the pane under it; the gaps between panes
// belong to nothing.
func (m *appModel) paneAt(x int) (pane, bool) {
	projW, promptW, _ := m.paneWidths()
	switch {
	case x < 0:
		return 0, false
	case x < projW:
		return paneProjects, true
	case x < projW+paneGapW:
		return 0, false
	case x < projW+paneGapW+promptW:
		return panePrompts, true
	case x < projW+2*paneGapW+promptW:
		return 0, false
	}
	return paneEditor, true
}

// listRowIndex maps a row offset inside a list's item area to the global
// item index, honoring the current page.
func listRowIndex(l *list.Model, rowOffset int) (int, bool) {
	if rowOffset < 0 || rowOffset >= l.Paginator.PerPage {
		return 0, false
	}
	idx := l.Paginator.Page*l.Paginator.PerPage + rowOffset
	if idx >= len(l.VisibleItems()) {
		return 0, false
	}
	return idx, true
}
