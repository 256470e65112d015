package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s into an exact width x height cell block
// (ANSI-aware). Every pane goes through this before JoinHorizontal; without
// it a single overlong or missing line shifts the whole three-pane layout.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates or pads a single line to exactly width columns.
func fitLine(ln string, width int) string {
	// StringWidth on very long lines is slow; anything this long is wider
	// than any pane, so pre-cut before measuring.
	if width > 0 && len(ln) > 8192 {
		ln = cutWithEllipsis(ln, width)
	}

	w := xansi.StringWidth(ln)
	if w > width {
		ln = cutWithEllipsis(ln, width)
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func cutWithEllipsis(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return xansi.Cut(ln, 0, 1)
	}
	return xansi.Cut(ln, 0, width-1) + "…"
}
