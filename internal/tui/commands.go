package tui

import (
	"context"
	"time"

	"inkwell/internal/apiclient"
	"inkwell/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Network work happens in tea.Cmds; each result message carries the seq or
// generation it was issued under so the update loop can spot leftovers.

const flashDuration = 4 * time.Second

func saveTick(target saveTarget, gen int) tea.Cmd {
	return tea.Tick(autosaveDelay, func(time.Time) tea.Msg { return saveTickMsg{target: target, gen: gen} })
}

func syncTick(gen int) tea.Cmd {
	return tea.Tick(syncPollInterval, func(time.Time) tea.Msg { return syncPollTickMsg{gen: gen} })
}

func flashTick(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) loadProjects(seq int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsLoadedMsg{seq: seq, projects: projects, err: err}
	}
}

func (m appModel) loadPrompts(seq int, projectID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		prompts, err := client.ListPrompts(context.Background(), apiclient.PromptQuery{ProjectID: projectID})
		return promptsLoadedMsg{seq: seq, prompts: prompts, err: err}
	}
}

func (m appModel) openPromptCmd(seq int, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.GetPrompt(context.Background(), id)
		return promptOpenedMsg{seq: seq, prompt: p, err: err}
	}
}

// persistPrompt creates or updates depending on whether the controller has
// an id for the entity yet.
func (m appModel) persistPrompt(req saveRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if req.EntityID == "" {
			draft := apiclient.PromptDraft{
				Name:    req.Fields.Name,
				Status:  model.Status(req.Fields.Status),
				Content: req.Fields.Content,
			}
			if req.Fields.ProjectID != "" {
				pid := req.Fields.ProjectID
				draft.ProjectID = &pid
			}
			p, err := client.CreatePrompt(ctx, draft)
			return promptSavedMsg{bindGen: req.BindGen, prompt: p, err: err}
		}
		// A blank name asks the server to re-derive one from content.
		name := req.Fields.Name
		content := req.Fields.Content
		p, err := client.UpdatePrompt(ctx, req.EntityID, apiclient.PromptPatch{Name: &name, Content: &content})
		return promptSavedMsg{bindGen: req.BindGen, prompt: p, err: err}
	}
}

func (m appModel) persistBoard(req saveRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.UpdateWhiteboard(context.Background(), req.EntityID, req.Fields.Content)
		return boardSavedMsg{bindGen: req.BindGen, project: p, err: err}
	}
}

func (m appModel) fetchBoard(gen int, projectID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.GetProject(context.Background(), projectID)
		return boardFetchedMsg{gen: gen, whiteboard: p.Whiteboard, err: err}
	}
}

func (m appModel) persistOrder(seq int, ids []string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.ReorderPrompts(context.Background(), ids)
		return reorderDoneMsg{seq: seq, err: err}
	}
}

// toggleStatus flips draft/archived immediately, skipping the debounce.
func (m appModel) toggleStatus(p model.Prompt) tea.Cmd {
	next := model.StatusArchived
	if p.Status == model.StatusArchived {
		next = model.StatusDraft
	}
	client := m.client
	id := p.ID
	return func() tea.Msg {
		st := next
		out, err := client.UpdatePrompt(context.Background(), id, apiclient.PromptPatch{Status: &st})
		return statusToggledMsg{prompt: out, err: err}
	}
}

func (m appModel) deletePromptCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeletePrompt(context.Background(), id)
		return promptDeletedMsg{id: id, err: err}
	}
}

func (m appModel) createProjectCmd(name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.CreateProject(context.Background(), name)
		return projectCreatedMsg{project: p, err: err}
	}
}

func (m appModel) renameProjectCmd(id, name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.RenameProject(context.Background(), id, name)
		return projectRenamedMsg{project: p, err: err}
	}
}

func (m appModel) deleteProjectCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), id)
		return projectDeletedMsg{id: id, err: err}
	}
}
