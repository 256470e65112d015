package tui

import (
	"strings"

	"inkwell/internal/model"
)

// gripZoneW is the width of the grab affordance at the left edge of every
// prompt row. Mouse drags must start inside it; clicks elsewhere on the row
// only select.
const gripZoneW = 2

type projectRowItem struct {
	project model.Project
	current bool
}

func (i projectRowItem) FilterValue() string { return i.project.Name }
func (i projectRowItem) Title() string {
	if i.current {
		return i.project.Name + " " + glyphBullet()
	}
	return i.project.Name
}
func (i projectRowItem) Description() string { return i.project.ID }

type promptRowItem struct {
	prompt  model.Prompt
	grabbed bool
}

func promptDisplayName(p model.Prompt) string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return model.PlaceholderName
}

func (i promptRowItem) FilterValue() string { return i.prompt.Name }
func (i promptRowItem) Title() string {
	t := glyphGrip() + " " + promptDisplayName(i.prompt)
	if i.prompt.Status == model.StatusArchived {
		t += " (archived)"
	}
	if i.grabbed {
		t += " (moving)"
	}
	return t
}
func (i promptRowItem) Description() string { return i.prompt.ID }
