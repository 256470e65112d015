package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Screen geometry, top to bottom: header row, spacer row, the three panes,
// status bar. Mouse hit-testing in mouse.go leans on these offsets, so they
// live here next to the code that draws them.
const (
	panesTopRow   = 2
	paneTitleRows = 1
	// The prompts list always reserves a filter strip (input line plus the
	// title bar's bottom padding) above its rows.
	promptFilterStripH = 2
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	if m.resizing {
		box := renderModalBox(m.width, "Resizing", fmt.Sprintf("%d x %d", m.width, m.height))
		return placeCentered(m.width, m.height, box)
	}
	base := m.viewMain()
	if m.modal != modalNone {
		return overlayCenter(base, m.renderModal(), m.width, m.height)
	}
	return base
}

func (m appModel) viewMain() string {
	projW, promptW, editW := m.paneWidths()
	contentH := m.contentHeight()

	projects := m.renderPane("Projects", m.projectsList.View(), projW, contentH, m.pane == paneProjects)
	prompts := m.renderPane(m.promptsPaneTitle(), m.promptsList.View(), promptW, contentH, m.pane == panePrompts)
	editor := m.renderPane(m.editorPaneTitle(), m.editorPaneBody(editW), editW, contentH, m.pane == paneEditor)

	gap := normalizePane("", paneGapW, contentH)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, projects, gap, prompts, gap, editor)
	// Tiny terminals can overflow the floor widths; cut rather than wrap.
	panes = normalizePane(panes, m.width, contentH)

	return strings.Join([]string{m.viewHeader(), "", panes, m.viewStatusBar()}, "\n")
}

func (m appModel) renderPane(title, body string, w, h int, focused bool) string {
	st := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	marker := "  "
	if focused {
		st = lipgloss.NewStyle().Bold(true).Foreground(colorFocusBorder)
		marker = glyphBullet() + " "
	}
	head := normalizePane(st.Render(marker+title), w, paneTitleRows)
	return head + "\n" + normalizePane(body, w, h-paneTitleRows)
}

func (m appModel) promptsPaneTitle() string {
	if len(m.prompts) == 0 {
		return "Prompts"
	}
	return fmt.Sprintf("Prompts (%d)", len(m.prompts))
}

func (m appModel) editorPaneTitle() string {
	if m.showPreview {
		return "Preview"
	}
	if m.editorOpen {
		return "Editor"
	}
	return "Whiteboard"
}

func (m appModel) editorPaneBody(w int) string {
	innerW := w - 2
	if innerW < 20 {
		innerW = 20
	}

	if m.showPreview {
		src := m.boardArea.Value()
		if m.editorOpen {
			src = m.contentArea.Value()
		}
		if strings.TrimSpace(src) == "" {
			return styleMuted().Render("Nothing to preview.")
		}
		return renderMarkdown(src, innerW)
	}

	if m.editorOpen {
		nameLine := styleMuted().Render("Name") + " " + renderInputLine(innerW-5, m.nameInput.View())
		return strings.Join([]string{nameLine, m.editorMetaLine(), m.contentArea.View()}, "\n")
	}

	if m.selectedProjectID == "" {
		return styleMuted().Render("No project selected.")
	}
	return m.boardArea.View()
}

func (m appModel) editorMetaLine() string {
	f := m.promptSave.Fields()
	parts := []string{f.Status}
	if p, ok := m.selectedProject(); ok {
		parts = append(parts, p.Name)
	}
	if m.promptSave.EntityID() == "" {
		parts = append(parts, "not saved yet")
	}
	return styleMuted().Render(strings.Join(parts, " "+glyphDot()+" "))
}

func (m appModel) viewHeader() string {
	left := lipgloss.NewStyle().Bold(true).Render("Inkwell")
	if p, ok := m.selectedProject(); ok {
		left += "  " + lipgloss.NewStyle().Foreground(colorChromeMutedFg).Render(p.Name)
	}
	right := styleMuted().Render(m.client.BaseURL())
	return spreadLine(" "+left, right+" ", m.width)
}

func (m appModel) viewStatusBar() string {
	if m.flash != "" {
		st := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
		if m.flashErr {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorFlashErrorFg).Background(colorFlashErrorBg)
		}
		return fitLine(st.Render(" "+m.flash+" "), m.width)
	}
	return spreadLine(" "+m.saveIndicator(), m.keyHints()+" ", m.width)
}

// saveIndicator shows the autosave state of whichever editor the pane
// currently hosts.
func (m appModel) saveIndicator() string {
	c := m.boardSave
	scope := "whiteboard"
	if m.editorOpen {
		c = m.promptSave
		scope = "prompt"
	}
	st := lipgloss.NewStyle().Foreground(colorSavedFg)
	switch {
	case c.Saving():
		st = lipgloss.NewStyle().Foreground(colorSavingFg)
	case c.Dirty():
		st = lipgloss.NewStyle().Foreground(colorDirtyFg)
	}
	return st.Render(glyphDot()+" "+c.statusLabel()) + " " + styleMuted().Render("("+scope+")")
}

func (m appModel) keyHints() string {
	var h string
	switch {
	case m.order.Grabbing():
		h = "j/k: move   enter: drop   esc: cancel"
	case m.pane == paneProjects:
		h = "enter: open   n: new   r: rename   d: delete   tab: panes   q: quit"
	case m.pane == panePrompts:
		h = "enter: edit   n: new   m: move   a: archive   d: delete   /: filter"
	case m.showPreview:
		h = "esc: back   ctrl+s: save"
	case m.editorOpen:
		h = "ctrl+s: save   ctrl+o: preview   tab: name/content   esc: close"
	default:
		h = "ctrl+s: save   ctrl+o: preview   esc: back"
	}
	return styleMuted().Render(h)
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalNewProject:
		return renderInputModal(m.width, "New project", "Name the project.", m.modalInput.View())
	case modalRenameProject:
		return renderInputModal(m.width, "Rename project", "New name for \""+m.confirmTarget.name+"\".", m.modalInput.View())
	case modalConfirmDelete:
		return renderConfirmModal(m.width, m.confirmTarget, m.confirmFocus)
	}
	return ""
}

func renderInputModal(width int, title, blurb, inputView string) string {
	bodyW := modalBodyWidth(width)
	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(blurb),
		"",
		renderInputLine(bodyW, inputView),
		"",
		styleMuted().Width(bodyW).Render("enter: save   esc/ctrl+g: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}

// spreadLine lays left and right at the edges of a width-column line. When
// they collide, right loses.
func spreadLine(left, right string, width int) string {
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	gap := width - lw - rw
	if gap < 1 {
		return fitLine(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}
