package tui

import "inkwell/internal/model"

type pane int

const (
	paneProjects pane = iota
	panePrompts
	paneEditor
)

type editorFocus int

const (
	focusContent editorFocus = iota
	focusName
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewProject
	modalRenameProject
	modalConfirmDelete
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type targetKind int

const (
	targetProject targetKind = iota
	targetPrompt
)

// deleteTarget describes what the open confirm modal would delete.
type deleteTarget struct {
	kind targetKind
	id   string
	name string
}

type saveTarget int

const (
	saveTargetPrompt saveTarget = iota
	saveTargetBoard
)

// Messages carrying a seq (or gen) are only acted on when the counter still
// matches the model's; anything older is a leftover from an abandoned
// cycle and is dropped.

type resizeDoneMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

type saveTickMsg struct {
	target saveTarget
	gen    int
}

type syncPollTickMsg struct{ gen int }

type projectsLoadedMsg struct {
	seq      int
	projects []model.Project
	err      error
}

type promptsLoadedMsg struct {
	seq     int
	prompts []model.Prompt
	err     error
}

type promptOpenedMsg struct {
	seq    int
	prompt model.Prompt
	err    error
}

type promptSavedMsg struct {
	bindGen int
	prompt  model.Prompt
	err     error
}

type boardSavedMsg struct {
	bindGen int
	project model.Project
	err     error
}

type boardFetchedMsg struct {
	gen        int
	whiteboard string
	err        error
}

type reorderDoneMsg struct {
	seq int
	err error
}

type statusToggledMsg struct {
	prompt model.Prompt
	err    error
}

type promptDeletedMsg struct {
	id  string
	err error
}

type projectCreatedMsg struct {
	project model.Project
	err     error
}

type projectRenamedMsg struct {
	project model.Project
	err     error
}

type projectDeletedMsg struct {
	id  string
	err error
}
