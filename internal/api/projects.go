package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/store"
)

type projectPayload struct {
	Name       *string `json:"name"`
	Whiteboard *string `json:"whiteboard"`
}

func (s *Service) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.storeError(w, err, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Service) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.storeError(w, err, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var body projectPayload
	if !decodeJSON(w, r, &body) {
		return
	}
	name, whiteboard := "", ""
	if body.Name != nil {
		name = *body.Name
	}
	if body.Whiteboard != nil {
		whiteboard = *body.Whiteboard
	}

	p, err := s.store.CreateProject(r.Context(), name, whiteboard)
	if err != nil {
		s.storeError(w, err, "Project not found")
		return
	}
	s.notifyChange()
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var body projectPayload
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := s.store.UpdateProject(r.Context(), chi.URLParam(r, "projectID"), store.ProjectUpdate{
		Name:       body.Name,
		Whiteboard: body.Whiteboard,
	})
	if err != nil {
		if errors.Is(err, store.ErrDefaultProject) {
			writeDetail(w, http.StatusBadRequest, "Cannot rename the Default project")
			return
		}
		s.storeError(w, err, "Project not found")
		return
	}
	s.notifyChange()
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		if errors.Is(err, store.ErrDefaultProject) {
			writeDetail(w, http.StatusBadRequest, "Cannot delete the Default project")
			return
		}
		s.storeError(w, err, "Project not found")
		return
	}
	s.notifyChange()
	writeMessage(w, "Project deleted successfully")
}

func (s *Service) handleUpdateWhiteboard(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Whiteboard string `json:"whiteboard"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := s.store.UpdateWhiteboard(r.Context(), chi.URLParam(r, "projectID"), body.Whiteboard)
	if err != nil {
		s.storeError(w, err, "Project not found")
		return
	}
	s.notifyChange()
	writeJSON(w, http.StatusOK, p)
}
