package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactRowDelegate renders one-line rows with a full-width selection bar.
// The default delegate's two-line rows waste half the pane on id noise.
type compactRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	grabbed  lipgloss.Style
}

func newCompactRowDelegate() compactRowDelegate {
	return compactRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		grabbed: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true).
			Italic(true),
	}
}

func (d compactRowDelegate) Height() int                             { return 1 }
func (d compactRowDelegate) Spacing() int                            { return 0 }
func (d compactRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d compactRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	txt := ""
	switch it := item.(type) {
	case promptRowItem:
		if it.grabbed {
			style = d.grabbed
		}
		txt = it.Title()
	case projectRowItem:
		txt = it.Title()
	default:
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(line))
}
