package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/model"
	"inkwell/internal/store"
)

// promptPayload is the request body for prompt create and update. Every
// field is optional; absent fields are left untouched on update and take
// their defaults on create.
type promptPayload struct {
	Name      *string `json:"name"`
	Status    *string `json:"status"`
	Content   *string `json:"content"`
	ProjectID *string `json:"project_id"`
}

func (s *Service) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	filter := store.PromptFilter{
		ProjectID: r.URL.Query().Get("project_id"),
		Status:    model.Status(r.URL.Query().Get("status")),
	}
	// The scoped alias pins the project regardless of query params.
	if scoped := chi.URLParam(r, "projectID"); scoped != "" {
		filter.ProjectID = scoped
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeDetail(w, http.StatusBadRequest, "Invalid status")
		return
	}

	prompts, err := s.store.ListPrompts(r.Context(), filter)
	if err != nil {
		s.storeError(w, err, "Prompt not found")
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// promptInScope fetches the prompt and, on the project-scoped alias
// routes, rejects prompts that live in a different project.
func (s *Service) promptInScope(w http.ResponseWriter, r *http.Request) (model.Prompt, bool) {
	p, err := s.store.GetPrompt(r.Context(), chi.URLParam(r, "promptID"))
	if err != nil {
		s.storeError(w, err, "Prompt not found")
		return model.Prompt{}, false
	}
	if scoped := chi.URLParam(r, "projectID"); scoped != "" {
		if p.ProjectID == nil || *p.ProjectID != scoped {
			writeDetail(w, http.StatusNotFound, "Prompt not found")
			return model.Prompt{}, false
		}
	}
	return p, true
}

func (s *Service) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := s.promptInScope(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var body promptPayload
	if !decodeJSON(w, r, &body) {
		return
	}

	in := store.PromptCreate{ProjectID: body.ProjectID}
	if body.Name != nil {
		in.Name = *body.Name
	}
	if body.Status != nil {
		in.Status = model.Status(*body.Status)
	}
	if body.Content != nil {
		in.Content = *body.Content
	}
	if scoped := chi.URLParam(r, "projectID"); scoped != "" && in.ProjectID == nil {
		in.ProjectID = &scoped
	}
	if in.ProjectID != nil && strings.TrimSpace(*in.ProjectID) != "" {
		if _, err := s.store.GetProject(r.Context(), *in.ProjectID); err != nil {
			s.storeError(w, err, "Project not found")
			return
		}
	}

	p, err := s.store.CreatePrompt(r.Context(), in)
	if err != nil {
		s.storeError(w, err, "Project not found")
		return
	}
	s.notifyChange()
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.promptInScope(w, r)
	if !ok {
		return
	}
	var body promptPayload
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.ProjectID != nil && strings.TrimSpace(*body.ProjectID) != "" {
		if _, err := s.store.GetProject(r.Context(), *body.ProjectID); err != nil {
			s.storeError(w, err, "Project not found")
			return
		}
	}

	upd := store.PromptUpdate{
		Name:      body.Name,
		Content:   body.Content,
		ProjectID: body.ProjectID,
	}
	if body.Status != nil {
		st := model.Status(*body.Status)
		upd.Status = &st
	}

	p, err := s.store.UpdatePrompt(r.Context(), cur.ID, upd)
	if err != nil {
		s.storeError(w, err, "Prompt not found")
		return
	}
	s.notifyChange()
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.promptInScope(w, r)
	if !ok {
		return
	}
	if err := s.store.DeletePrompt(r.Context(), cur.ID); err != nil {
		s.storeError(w, err, "Prompt not found")
		return
	}
	s.notifyChange()
	writeMessage(w, "Prompt deleted successfully")
}

func (s *Service) handleReorderPrompts(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PromptIDs []string `json:"prompt_ids"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body.PromptIDs) == 0 {
		writeDetail(w, http.StatusBadRequest, "prompt_ids is required")
		return
	}

	if err := s.store.ReorderPrompts(r.Context(), body.PromptIDs); err != nil {
		s.storeError(w, err, "One or more prompts not found")
		return
	}
	s.notifyChange()
	writeMessage(w, "Prompts reordered successfully")
}
