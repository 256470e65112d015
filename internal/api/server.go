// Package api serves the Inkwell REST surface over chi.
//
// Handlers are thin adapters between the wire shapes and internal/store.
// Errors surface as {"detail": "..."} bodies so every consumer (TUI, web
// board, curl) sees the same human-readable failure text.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/store"
)

// Service owns the router and the store it serves.
type Service struct {
	store    *store.Store
	router   *chi.Mux
	onChange func()
}

// New builds the REST service. onChange, when non-nil, is invoked after
// every successful mutation so live views can refresh; it must not block.
func New(st *store.Store, onChange func()) *Service {
	s := &Service{store: st, onChange: onChange}
	s.router = chi.NewRouter()
	s.setupRoutes()
	return s
}

// Router exposes the mux for mounting and for tests.
func (s *Service) Router() http.Handler { return s.router }

func (s *Service) setupRoutes() {
	s.router.Use(requestID)
	s.router.Use(requestLogger)
	s.router.Use(recoverer)
	s.router.Use(corsLocal)

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", s.handleListPrompts)
			r.Post("/", s.handleCreatePrompt)
			r.Post("/reorder", s.handleReorderPrompts)
			r.Get("/{promptID}", s.handleGetPrompt)
			r.Put("/{promptID}", s.handleUpdatePrompt)
			r.Delete("/{promptID}", s.handleDeletePrompt)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{projectID}", s.handleGetProject)
			r.Put("/{projectID}", s.handleUpdateProject)
			r.Delete("/{projectID}", s.handleDeleteProject)
			r.Put("/{projectID}/whiteboard", s.handleUpdateWhiteboard)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Post("/", s.handleSetSetting)
			r.Get("/{key}", s.handleGetSetting)
		})

		// Project-scoped aliases. Static segments above win over the
		// wildcard, so /api/prompts never lands here.
		r.Route("/{projectID}", func(r chi.Router) {
			r.Use(s.requireProject)
			r.Get("/prompts", s.handleListPrompts)
			r.Post("/prompts", s.handleCreatePrompt)
			r.Post("/prompts/reorder", s.handleReorderPrompts)
			r.Get("/prompt/{promptID}", s.handleGetPrompt)
			r.Put("/prompt/{promptID}", s.handleUpdatePrompt)
			r.Delete("/prompt/{promptID}", s.handleDeletePrompt)
		})
	})
}

// notifyChange signals listeners after a successful mutation.
func (s *Service) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

// requireProject rejects scoped alias routes whose project segment does
// not name an existing project.
func (s *Service) requireProject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "projectID")
		if _, err := s.store.GetProject(r.Context(), id); err != nil {
			s.storeError(w, err, "Project not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Inkwell API is running",
	})
}
