package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Modal surfaces are drawn as a titled box floated over the dimmed app view.
// Borders are avoided on purpose: nesting bordered widgets inside a
// background-colored box produces artifacts on some terminals.

const (
	modalMaxW     = 72
	modalMinW     = 24
	modalPaddingX = 2
)

func modalBoxWidth(width int) int {
	w := width - 6
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

// modalBodyWidth is the usable content width inside a modal box for the
// given terminal width.
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 2*modalPaddingX
}

func renderModalBox(width int, title string, content string) string {
	boxW := modalBoxWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Width(boxW).
		Padding(0, modalPaddingX).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Width(boxW).
		Padding(1, modalPaddingX).
		Render(content)

	return header + "\n" + body
}

// dimBackground applies a uniform scrim to an already-rendered view so a
// modal floated on top reads as the only active surface. Inner ANSI styling
// is stripped first; otherwise strongly-colored content shows through the
// scrim.
func dimBackground(s string) string {
	scrim := lipgloss.NewStyle().Foreground(ac("250", "241"))
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = scrim.Render(stripANSIEscapes(ln))
	}
	return strings.Join(lines, "\n")
}

func placeCentered(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

// overlayCenter splices overlay into the middle of base. base is dimmed
// first and normalized to width x height, so the splice arithmetic can trust
// every line to be exactly width columns.
func overlayCenter(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		return overlay
	}
	baseLines := strings.Split(normalizePane(dimBackground(base), width, height), "\n")
	overlayLines := strings.Split(overlay, "\n")

	boxW := 0
	for _, ln := range overlayLines {
		if w := xansi.StringWidth(ln); w > boxW {
			boxW = w
		}
	}
	if boxW > width {
		boxW = width
	}
	top := (height - len(overlayLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - boxW) / 2
	if left < 0 {
		left = 0
	}

	for i, ln := range overlayLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		if w := xansi.StringWidth(ln); w < boxW {
			ln += strings.Repeat(" ", boxW-w)
		}
		// Cut can leave an open escape sequence behind; terminate styling at
		// every seam to stop bleed between layers.
		lhs := xansi.Cut(baseLines[row], 0, left) + "\x1b[0m"
		rhs := xansi.Cut(baseLines[row], left+boxW, width) + "\x1b[0m"
		baseLines[row] = lhs + ln + "\x1b[0m" + rhs
	}
	return strings.Join(baseLines, "\n")
}
