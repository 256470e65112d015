package tui

import (
	"inkwell/internal/apiclient"
	"inkwell/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	client *apiclient.Client

	width  int
	height int

	// We treat the very first WindowSizeMsg as "initial sizing" rather
	// than a user-driven resize, so the startup frame doesn't flash the
	// resize overlay.
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	pane pane

	projectsList list.Model
	promptsList  list.Model

	projects          []model.Project
	selectedProjectID string
	prompts           []model.Prompt

	order reorderController

	// editorOpen selects what the editor pane shows: a prompt editor when
	// set, the project whiteboard otherwise. The prompt's id (empty for a
	// not-yet-created one) lives in promptSave.
	editorOpen  bool
	nameInput   textinput.Model
	contentArea textarea.Model
	editorFocus editorFocus
	promptSave  saveController

	boardArea textarea.Model
	boardSave saveController
	board     syncChecker

	showPreview bool

	modal         modalKind
	modalInput    textinput.Model
	confirmTarget deleteTarget
	confirmFocus  confirmModalFocus

	flash    string
	flashErr bool
	flashSeq int

	projectsSeq int
	promptsSeq  int
	openSeq     int
	reorderSeq  int
}

const (
	projectsPaneMinW = 18
	projectsPaneMaxW = 28
	promptsPaneMinW  = 26
	promptsPaneMaxW  = 44
	editorPaneMinW   = 24
	paneGapW         = 2
)

func newAppModel(client *apiclient.Client) appModel {
	m := appModel{
		client: client,
		pane:   paneProjects,
		order:  newReorderController(),
	}

	m.projectsList = newList("Projects", []list.Item{})
	m.projectsList.SetDelegate(newCompactRowDelegate())

	m.promptsList = newList("Prompts", []list.Item{})
	m.promptsList.SetDelegate(newCompactRowDelegate())
	// "/" filtering to scope down long prompt lists.
	m.promptsList.SetFilteringEnabled(true)
	m.promptsList.SetShowFilter(true)

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Name (derived from content if empty)"
	m.nameInput.CharLimit = 200

	m.contentArea = textarea.New()
	m.contentArea.Placeholder = "Write the prompt…"
	m.contentArea.CharLimit = 0
	m.contentArea.ShowLineNumbers = false

	m.boardArea = textarea.New()
	m.boardArea.Placeholder = "Project whiteboard (markdown)…"
	m.boardArea.CharLimit = 0
	m.boardArea.ShowLineNumbers = false

	m.modalInput = textinput.New()
	m.modalInput.Placeholder = "Name"
	m.modalInput.CharLimit = 200
	m.modalInput.Width = 40

	return m
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// The app draws its own chrome; keep the list bare.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// ESC means "back" here, never quit.
	l.KeyMap.Quit.SetKeys("ctrl+q")
	// Emacs-style aliases.
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

func (m *appModel) refreshProjectItems() {
	curID := ""
	if it, ok := m.projectsList.SelectedItem().(projectRowItem); ok {
		curID = it.project.ID
	}
	items := make([]list.Item, 0, len(m.projects))
	for _, p := range m.projects {
		items = append(items, projectRowItem{project: p, current: p.ID == m.selectedProjectID})
	}
	m.projectsList.SetItems(items)
	if curID != "" {
		selectRowByID(&m.projectsList, curID)
	}
}

// refreshPromptItems rebuilds the middle pane from the order controller's
// mirror, so an in-progress grab renders where the row currently sits.
func (m *appModel) refreshPromptItems(keepSelection bool) {
	curID := ""
	if keepSelection {
		if it, ok := m.promptsList.SelectedItem().(promptRowItem); ok {
			curID = it.prompt.ID
		}
	}
	byID := make(map[string]model.Prompt, len(m.prompts))
	for _, p := range m.prompts {
		byID[p.ID] = p
	}
	items := make([]list.Item, 0, len(m.prompts))
	for i, id := range m.order.IDs() {
		p, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, promptRowItem{prompt: p, grabbed: i == m.order.Grabbed()})
	}
	m.promptsList.SetItems(items)
	if curID != "" {
		selectRowByID(&m.promptsList, curID)
	}
}

func selectRowByID(l *list.Model, id string) {
	for i, it := range l.Items() {
		switch row := it.(type) {
		case projectRowItem:
			if row.project.ID == id {
				l.Select(i)
				return
			}
		case promptRowItem:
			if row.prompt.ID == id {
				l.Select(i)
				return
			}
		}
	}
}

func (m *appModel) selectedProject() (model.Project, bool) {
	for _, p := range m.projects {
		if p.ID == m.selectedProjectID {
			return p, true
		}
	}
	return model.Project{}, false
}

func (m *appModel) promptByID(id string) (model.Prompt, bool) {
	for _, p := range m.prompts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Prompt{}, false
}

func promptFields(p model.Prompt) editFields {
	f := editFields{
		Name:    p.Name,
		Status:  string(p.Status),
		Content: p.Content,
	}
	if p.ProjectID != nil {
		f.ProjectID = *p.ProjectID
	}
	return f
}

// editorFields reads the prompt editor widgets into a comparable snapshot.
// Status and project are not edited here, so they ride along from the
// bound baseline.
func (m *appModel) editorFields() editFields {
	f := m.promptSave.Fields()
	f.Name = m.nameInput.Value()
	f.Content = m.contentArea.Value()
	return f
}

func (m *appModel) resizeLayout() {
	projW, promptW, editW := m.paneWidths()
	contentH := m.contentHeight()

	listH := contentH - 1
	if listH < 3 {
		listH = 3
	}
	m.projectsList.SetSize(projW, listH)
	m.promptsList.SetSize(promptW, listH)

	areaW := editW - 2
	if areaW < 20 {
		areaW = 20
	}
	m.contentArea.SetWidth(areaW)
	m.boardArea.SetWidth(areaW)

	// Editor pane chrome: header, name line, status line.
	areaH := contentH - 4
	if areaH < 4 {
		areaH = 4
	}
	m.contentArea.SetHeight(areaH)
	m.boardArea.SetHeight(areaH + 1)
}

func (m *appModel) paneWidths() (projW, promptW, editW int) {
	w := m.width
	if w <= 0 {
		w = 100
	}
	projW = clampRange(w/5, projectsPaneMinW, projectsPaneMaxW)
	promptW = clampRange(w/3, promptsPaneMinW, promptsPaneMaxW)
	editW = w - projW - promptW - 2*paneGapW
	if editW < editorPaneMinW {
		editW = editorPaneMinW
	}
	return projW, promptW, editW
}

func (m *appModel) contentHeight() int {
	// Header, a blank spacer, and the status bar frame the panes.
	h := m.height - 3
	if h < 8 {
		h = 8
	}
	return h
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
