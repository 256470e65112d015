package tui

import (
	"strings"
	"time"

	"inkwell/internal/apiclient"
	"inkwell/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return m.loadProjects(m.projectsSeq)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLayout()
		// Don't show the resize overlay on startup; only after we've seen
		// an initial size.
		if !m.seenWindowSize {
			m.seenWindowSize = true
			m.resizing = false
			return m, nil
		}
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} })

	case resizeDoneMsg:
		// Only the latest resize seq clears the overlay.
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case projectsLoadedMsg:
		return m.onProjectsLoaded(msg)

	case promptsLoadedMsg:
		if msg.seq != m.promptsSeq {
			return m, nil
		}
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Loading prompts", msg.err))
			return m, cmd
		}
		m.prompts = msg.prompts
		ids := make([]string, 0, len(msg.prompts))
		for _, p := range msg.prompts {
			ids = append(ids, p.ID)
		}
		m.order.Sync(ids)
		m.refreshPromptItems(true)
		return m, nil

	case promptOpenedMsg:
		return m.onPromptOpened(msg)

	case saveTickMsg:
		switch msg.target {
		case saveTargetPrompt:
			if req, ok := m.promptSave.TimerFired(msg.gen); ok {
				return m, m.persistPrompt(req)
			}
		case saveTargetBoard:
			if req, ok := m.boardSave.TimerFired(msg.gen); ok {
				return m, m.persistBoard(req)
			}
		}
		return m, nil

	case promptSavedMsg:
		return m.onPromptSaved(msg)

	case boardSavedMsg:
		if !m.boardSave.SaveResult(msg.bindGen, msg.project.ID, editFields{Content: msg.project.Whiteboard}, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Saving whiteboard", msg.err))
			return m, cmd
		}
		// Our own write is the newest server value; the next poll of an
		// unchanged board must not re-apply it.
		m.board.Applied(msg.project.Whiteboard)
		return m, nil

	case syncPollTickMsg:
		if msg.gen != m.board.Gen() || m.selectedProjectID == "" {
			return m, nil
		}
		return m, m.fetchBoard(msg.gen, m.selectedProjectID)

	case boardFetchedMsg:
		if msg.gen != m.board.Gen() {
			return m, nil
		}
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Checking whiteboard", msg.err))
			return m, tea.Batch(cmd, syncTick(msg.gen))
		}
		if m.board.ShouldApply(msg.gen, msg.whiteboard, m.boardSave.Dirty(), time.Now()) {
			m.applyBoardValue(msg.whiteboard)
		}
		return m, syncTick(msg.gen)

	case reorderDoneMsg:
		if msg.seq != m.reorderSeq {
			return m, nil
		}
		if msg.err != nil {
			m.order.Revert()
			m.refreshPromptItems(false)
			cmd := m.showErrorFlash(apiclient.FailureMessage("Reordering prompts", msg.err))
			return m, cmd
		}
		m.order.Confirm()
		m.promptsSeq++
		return m, m.loadPrompts(m.promptsSeq, m.selectedProjectID)

	case statusToggledMsg:
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Updating status", msg.err))
			return m, cmd
		}
		for i := range m.prompts {
			if m.prompts[i].ID == msg.prompt.ID {
				m.prompts[i] = msg.prompt
			}
		}
		m.refreshPromptItems(true)
		if m.editorOpen && m.promptSave.EntityID() == msg.prompt.ID && !m.promptSave.Dirty() {
			m.promptSave.Bind(msg.prompt.ID, promptFields(msg.prompt))
		}
		verb := "archived"
		if msg.prompt.Status == model.StatusDraft {
			verb = "restored"
		}
		cmd := m.showFlash(msg.prompt.Name + " " + verb)
		return m, cmd

	case promptDeletedMsg:
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Deleting prompt", msg.err))
			return m, cmd
		}
		if m.editorOpen && m.promptSave.EntityID() == msg.id {
			m.closeEditor()
		}
		m.promptsSeq++
		cmd := m.showFlash("Prompt deleted")
		return m, tea.Batch(m.loadPrompts(m.promptsSeq, m.selectedProjectID), cmd)

	case projectCreatedMsg:
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Creating project", msg.err))
			return m, cmd
		}
		m.projects = append(m.projects, msg.project)
		cmd := m.bindProject(msg.project)
		m.refreshProjectItems()
		selectRowByID(&m.projectsList, msg.project.ID)
		m.projectsSeq++
		return m, tea.Batch(cmd, m.loadProjects(m.projectsSeq))

	case projectRenamedMsg:
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Renaming project", msg.err))
			return m, cmd
		}
		m.projectsSeq++
		return m, m.loadProjects(m.projectsSeq)

	case projectDeletedMsg:
		if msg.err != nil {
			cmd := m.showErrorFlash(apiclient.FailureMessage("Deleting project", msg.err))
			return m, cmd
		}
		m.projectsSeq++
		cmd := m.showFlash("Project deleted")
		return m, tea.Batch(m.loadProjects(m.projectsSeq), cmd)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		// While the prompt filter is being typed, every key belongs to it.
		if m.pane == panePrompts && m.promptsList.SettingFilter() {
			var cmd tea.Cmd
			m.promptsList, cmd = m.promptsList.Update(msg)
			return m, cmd
		}
		switch m.pane {
		case paneProjects:
			return m.updateProjectsPane(msg)
		case panePrompts:
			return m.updatePromptsPane(msg)
		case paneEditor:
			return m.updateEditorPane(msg)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m appModel) onProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.projectsSeq {
		return m, nil
	}
	if msg.err != nil {
		cmd := m.showErrorFlash(apiclient.FailureMessage("Loading projects", msg.err))
		return m, cmd
	}
	m.projects = msg.projects

	// A fresh start or a vanished selection falls back to the Default
	// project (or the first one).
	if _, ok := m.selectedProject(); !ok {
		var pick model.Project
		found := false
		for _, p := range m.projects {
			if p.Name == model.DefaultProjectName {
				pick, found = p, true
				break
			}
		}
		if !found && len(m.projects) > 0 {
			pick, found = m.projects[0], true
		}
		if found {
			cmd := m.bindProject(pick)
			m.refreshProjectItems()
			selectRowByID(&m.projectsList, pick.ID)
			return m, cmd
		}
	}
	m.refreshProjectItems()
	return m, nil
}

func (m appModel) onPromptOpened(msg promptOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.openSeq {
		return m, nil
	}
	if msg.err != nil {
		if apiclient.IsNotFound(msg.err) {
			// Deleted under us; fall back to the list.
			m.closeEditor()
			m.pane = panePrompts
			m.promptsSeq++
			cmd := m.showFlash("Prompt not found")
			return m, tea.Batch(m.loadPrompts(m.promptsSeq, m.selectedProjectID), cmd)
		}
		cmd := m.showErrorFlash(apiclient.FailureMessage("Loading prompt", msg.err))
		return m, cmd
	}

	p := msg.prompt
	m.editorOpen = true
	m.showPreview = false
	m.nameInput.SetValue(p.Name)
	m.contentArea.SetValue(p.Content)
	m.editorFocus = focusContent
	m.promptSave.Bind(p.ID, promptFields(p))
	m.pane = paneEditor
	m.syncEditorFocus()
	return m, nil
}

func (m appModel) onPromptSaved(msg promptSavedMsg) (tea.Model, tea.Cmd) {
	handled := m.promptSave.SaveResult(msg.bindGen, msg.prompt.ID, promptFields(msg.prompt), msg.err)
	if !handled {
		// A save abandoned by rebinding still changed the server; keep
		// the list truthful.
		if msg.err == nil {
			m.promptsSeq++
			return m, m.loadPrompts(m.promptsSeq, m.selectedProjectID)
		}
		return m, nil
	}
	if msg.err != nil {
		cmd := m.showErrorFlash(apiclient.FailureMessage("Saving prompt", msg.err))
		return m, cmd
	}
	if !m.promptSave.Dirty() {
		// Show the server-derived name without treating it as an edit.
		m.nameInput.SetValue(m.promptSave.Fields().Name)
	}
	m.promptsSeq++
	return m, m.loadPrompts(m.promptsSeq, m.selectedProjectID)
}

func (m appModel) updateProjectsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.pane = panePrompts
		m.syncEditorFocus()
		return m, nil
	case "shift+tab":
		m.pane = paneEditor
		m.syncEditorFocus()
		return m, nil
	case "enter":
		if it, ok := m.projectsList.SelectedItem().(projectRowItem); ok {
			if it.project.ID == m.selectedProjectID {
				m.pane = panePrompts
				m.syncEditorFocus()
				return m, nil
			}
			cmd := m.bindProject(it.project)
			m.refreshProjectItems()
			return m, cmd
		}
		return m, nil
	case "n":
		m.modal = modalNewProject
		m.modalInput.SetValue("")
		m.modalInput.Focus()
		return m, nil
	case "r":
		if it, ok := m.projectsList.SelectedItem().(projectRowItem); ok {
			m.modal = modalRenameProject
			m.confirmTarget = deleteTarget{kind: targetProject, id: it.project.ID, name: it.project.Name}
			m.modalInput.SetValue(it.project.Name)
			m.modalInput.CursorEnd()
			m.modalInput.Focus()
		}
		return m, nil
	case "d":
		if it, ok := m.projectsList.SelectedItem().(projectRowItem); ok {
			m.modal = modalConfirmDelete
			m.confirmTarget = deleteTarget{kind: targetProject, id: it.project.ID, name: it.project.Name}
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.projectsList, cmd = m.projectsList.Update(msg)
	return m, cmd
}

func (m appModel) updatePromptsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.order.Grabbing() {
		return m.updateGrab(msg)
	}

	// ESC first clears an applied filter, then moves focus left.
	if msg.String() == "esc" && m.promptsList.FilterState() != list.Unfiltered {
		var cmd tea.Cmd
		m.promptsList, cmd = m.promptsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.pane = paneEditor
		m.syncEditorFocus()
		return m, nil
	case "shift+tab", "esc", "left", "h":
		m.pane = paneProjects
		m.syncEditorFocus()
		return m, nil
	case "enter":
		if it, ok := m.promptsList.SelectedItem().(promptRowItem); ok {
			m.openSeq++
			return m, m.openPromptCmd(m.openSeq, it.prompt.ID)
		}
		return m, nil
	case "n":
		m.openNewPromptEditor()
		return m, nil
	case "m":
		// Grab for reordering; needs the full, unfiltered list so row
		// indexes line up with the order mirror.
		if m.promptsList.FilterState() != list.Unfiltered {
			cmd := m.showFlash("Clear the filter to reorder")
			return m, cmd
		}
		if m.order.Grab(m.promptsList.Index()) {
			m.refreshPromptItems(false)
			m.promptsList.Select(m.order.Grabbed())
		}
		return m, nil
	case "a":
		if it, ok := m.promptsList.SelectedItem().(promptRowItem); ok {
			return m, m.toggleStatus(it.prompt)
		}
		return m, nil
	case "d":
		if it, ok := m.promptsList.SelectedItem().(promptRowItem); ok {
			m.modal = modalConfirmDelete
			m.confirmTarget = deleteTarget{kind: targetPrompt, id: it.prompt.ID, name: it.prompt.Name}
			m.confirmFocus = confirmFocusCancel
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.promptsList, cmd = m.promptsList.Update(msg)
	return m, cmd
}

// updateGrab handles keys while a prompt row is being carried.
func (m appModel) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "ctrl+n":
		if m.order.MoveGrabbed(1) {
			m.refreshPromptItems(false)
			m.promptsList.Select(m.order.Grabbed())
		}
		return m, nil
	case "k", "up", "ctrl+p":
		if m.order.MoveGrabbed(-1) {
			m.refreshPromptItems(false)
			m.promptsList.Select(m.order.Grabbed())
		}
		return m, nil
	case "enter", "m":
		return m.dropGrab()
	case "esc", "ctrl+g":
		m.order.CancelGrab()
		m.refreshPromptItems(false)
		return m, nil
	}
	// Everything else is swallowed while carrying a row.
	return m, nil
}

func (m appModel) dropGrab() (tea.Model, tea.Cmd) {
	order, ok := m.order.Drop()
	m.refreshPromptItems(true)
	if !ok {
		return m, nil
	}
	m.reorderSeq++
	return m, m.persistOrder(m.reorderSeq, order)
}

func (m appModel) updateEditorPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showPreview {
		switch key {
		case "esc", "ctrl+o", "q":
			m.showPreview = false
			return m, nil
		case "ctrl+s":
			return m.saveActiveEditorNow()
		}
		return m, nil
	}

	switch key {
	case "esc", "ctrl+g":
		if m.editorOpen {
			m.closeEditor()
		}
		m.pane = panePrompts
		m.syncEditorFocus()
		return m, nil
	case "ctrl+s":
		return m.saveActiveEditorNow()
	case "ctrl+o":
		m.showPreview = true
		return m, nil
	case "tab":
		if m.editorOpen {
			if m.editorFocus == focusContent {
				m.editorFocus = focusName
			} else {
				m.editorFocus = focusContent
			}
			m.syncEditorFocus()
			return m, nil
		}
		m.pane = paneProjects
		m.syncEditorFocus()
		return m, nil
	}

	// Everything else edits the focused widget; a changed value feeds the
	// autosave controller.
	if m.editorOpen {
		var cmd tea.Cmd
		if m.editorFocus == focusName {
			before := m.nameInput.Value()
			m.nameInput, cmd = m.nameInput.Update(msg)
			if m.nameInput.Value() == before {
				return m, cmd
			}
		} else {
			before := m.contentArea.Value()
			m.contentArea, cmd = m.contentArea.Update(msg)
			if m.contentArea.Value() == before {
				return m, cmd
			}
		}
		if gen, ok := m.promptSave.Edit(m.editorFields()); ok {
			return m, tea.Batch(cmd, saveTick(saveTargetPrompt, gen))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	before := m.boardArea.Value()
	m.boardArea, cmd = m.boardArea.Update(msg)
	if m.boardArea.Value() == before {
		return m, cmd
	}
	m.board.NoteEdit(time.Now())
	if gen, ok := m.boardSave.Edit(editFields{Content: m.boardArea.Value()}); ok {
		return m, tea.Batch(cmd, saveTick(saveTargetBoard, gen))
	}
	return m, cmd
}

func (m *appModel) saveActiveEditorNow() (tea.Model, tea.Cmd) {
	if m.editorOpen {
		if req, ok := m.promptSave.SaveNow(); ok {
			return *m, m.persistPrompt(req)
		}
		return *m, nil
	}
	if req, ok := m.boardSave.SaveNow(); ok {
		return *m, m.persistBoard(req)
	}
	return *m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewProject, modalRenameProject:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.closeModal()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.modalInput.Value())
			if name == "" {
				cmd := m.showErrorFlash("Project name is required")
				return m, cmd
			}
			kind := m.modal
			target := m.confirmTarget
			m.closeModal()
			if kind == modalNewProject {
				return m, m.createProjectCmd(name)
			}
			return m, m.renameProjectCmd(target.id, name)
		}
		var cmd tea.Cmd
		m.modalInput, cmd = m.modalInput.Update(msg)
		return m, cmd

	case modalConfirmDelete:
		switch msg.String() {
		case "esc", "ctrl+g", "n":
			m.closeModal()
			return m, nil
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "y":
			return m.confirmDelete()
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				return m.confirmDelete()
			}
			m.closeModal()
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	target := m.confirmTarget
	m.closeModal()
	switch target.kind {
	case targetProject:
		return m, m.deleteProjectCmd(target.id)
	case targetPrompt:
		return m, m.deletePromptCmd(target.id)
	}
	return m, nil
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalInput.Blur()
	m.modalInput.SetValue("")
}

// bindProject makes p the selected project: the whiteboard editor and the
// sync cycle rebind to it, any open prompt editor closes, and its prompts
// load. Pending polls and saves for the previous project die by
// generation.
func (m *appModel) bindProject(p model.Project) tea.Cmd {
	m.selectedProjectID = p.ID
	if m.editorOpen {
		m.closeEditor()
	}
	m.boardArea.SetValue(p.Whiteboard)
	m.boardSave.Bind(p.ID, editFields{Content: p.Whiteboard})
	gen := m.board.Reset(p.Whiteboard)
	m.prompts = nil
	m.order.Sync(nil)
	m.refreshPromptItems(false)
	m.promptsSeq++
	return tea.Batch(m.loadPrompts(m.promptsSeq, p.ID), syncTick(gen))
}

// openNewPromptEditor opens an empty editor bound to no entity; the first
// non-empty autosave creates the prompt.
func (m *appModel) openNewPromptEditor() {
	m.editorOpen = true
	m.showPreview = false
	m.nameInput.SetValue("")
	m.contentArea.SetValue("")
	m.editorFocus = focusContent
	m.promptSave.Bind("", editFields{
		Status:    string(model.StatusDraft),
		ProjectID: m.selectedProjectID,
	})
	m.pane = paneEditor
	m.syncEditorFocus()
}

// closeEditor abandons the prompt editor; a pending debounce or in-flight
// save outcome is discarded by the rebind.
func (m *appModel) closeEditor() {
	m.editorOpen = false
	m.showPreview = false
	m.promptSave.Bind("", editFields{})
	m.syncEditorFocus()
}

// applyBoardValue adopts a fetched whiteboard value into the clean editor.
func (m *appModel) applyBoardValue(value string) {
	m.boardArea.SetValue(value)
	m.boardSave.Bind(m.selectedProjectID, editFields{Content: value})
	m.board.Applied(value)
}

func (m *appModel) syncEditorFocus() {
	m.nameInput.Blur()
	m.contentArea.Blur()
	m.boardArea.Blur()
	if m.pane != paneEditor {
		return
	}
	if m.editorOpen {
		if m.editorFocus == focusName {
			m.nameInput.Focus()
		} else {
			m.contentArea.Focus()
		}
		return
	}
	m.boardArea.Focus()
}

func (m *appModel) showFlash(text string) tea.Cmd {
	m.flash = text
	m.flashErr = false
	m.flashSeq++
	return flashTick(m.flashSeq)
}

// showErrorFlash is showFlash with the error treatment in the status bar.
func (m *appModel) showErrorFlash(text string) tea.Cmd {
	cmd := m.showFlash(text)
	m.flashErr = true
	return cmd
}
