package tui

import (
	"strings"

	"inkwell/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// renderConfirmModal draws the delete confirmation for the given target.
// Cancel starts focused so a reflexive enter is harmless.
func renderConfirmModal(width int, target deleteTarget, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	bodyStyle := lipgloss.NewStyle().Width(bodyW)

	title := "Delete prompt"
	body := bodyStyle.Render("Delete \"" + displayTargetName(target) + "\"? This cannot be undone.")
	if target.kind == targetProject {
		title = "Delete project"
		body = bodyStyle.Render("Delete \"" + displayTargetName(target) +
			"\"? Its prompts move to the Default project. This cannot be undone.")
	}

	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y: delete   esc/ctrl+g: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func displayTargetName(target deleteTarget) string {
	if n := strings.TrimSpace(target.name); n != "" {
		return n
	}
	return model.PlaceholderName
}
