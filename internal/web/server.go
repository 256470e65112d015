// Package web serves the browser board: projects with live whiteboards
// and reorderable prompt lists, rendered server-side and patched over
// datastar SSE streams.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"inkwell/internal/model"
	"inkwell/internal/store"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

// Server renders the board from the store. All mutations invalidate the
// hub so every open browser tab re-renders.
type Server struct {
	store *store.Store
	hub   *Hub
	tmpl  *template.Template
}

func NewServer(st *store.Store, hub *Hub) (*Server, error) {
	if st == nil {
		return nil, errors.New("web: store is nil")
	}
	if hub == nil {
		hub = NewHub()
	}
	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{store: st, hub: hub, tmpl: tmpl}, nil
}

// Hub exposes the invalidation hub so other surfaces (REST API, CLI)
// can wake live views after their own mutations.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /{$}", s.handleBoard)
	mux.HandleFunc("GET /events", s.handleBoardEvents)
	mux.HandleFunc("POST /projects", s.handleProjectCreate)
	mux.HandleFunc("GET /projects/{projectID}", s.handleProject)
	mux.HandleFunc("GET /projects/{projectID}/events", s.handleProjectEvents)
	mux.HandleFunc("POST /projects/{projectID}/rename", s.handleProjectRename)
	mux.HandleFunc("POST /projects/{projectID}/delete", s.handleProjectDelete)
	mux.HandleFunc("POST /projects/{projectID}/whiteboard", s.handleWhiteboardSave)
	mux.HandleFunc("POST /projects/{projectID}/prompts", s.handlePromptCreate)
	mux.HandleFunc("GET /prompts/{promptID}", s.handlePrompt)
	mux.HandleFunc("GET /prompts/{promptID}/events", s.handlePromptEvents)
	mux.HandleFunc("POST /prompts/{promptID}/edit", s.handlePromptEdit)
	mux.HandleFunc("POST /prompts/{promptID}/move", s.handlePromptMove)
	mux.HandleFunc("POST /prompts/{promptID}/status", s.handlePromptStatusToggle)
	mux.HandleFunc("POST /prompts/{promptID}/delete", s.handlePromptDelete)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(b)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	if ref := strings.TrimSpace(r.Header.Get("Referer")); ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

// formValue reads a named field from either a datastar signal body
// (JSON) or a classic form post, so templates can use whichever fits.
func formValue(r *http.Request, name string) string {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var signals map[string]any
		if err := json.NewDecoder(r.Body).Decode(&signals); err == nil {
			if v, ok := signals[name].(string); ok {
				return v
			}
		}
		return ""
	}
	_ = r.ParseForm()
	return r.Form.Get(name)
}

func (s *Server) storeHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, store.ErrDefaultProject),
		errors.Is(err, store.ErrProjectExists),
		errors.Is(err, store.ErrEmptyName),
		errors.Is(err, store.ErrBadStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveStream keeps an SSE connection open and re-renders the main
// region whenever the hub reports a change. The selector scopes patches
// away from the editor textarea, so in-progress typing is never
// clobbered by a refresh.
func (s *Server) serveStream(w http.ResponseWriter, r *http.Request, render func(ctx context.Context) (string, error)) {
	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"boardVersion": s.hub.Version()})

	ch, cancel := s.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, err := render(sse.Context())
			if err != nil {
				continue
			}
			_ = sse.PatchElements(html,
				datastar.WithSelector("#inkwell-main"),
				datastar.WithMode(datastar.ElementPatchModeOuter))
			_ = sse.MarshalAndPatchSignals(map[string]any{"boardVersion": s.hub.Version()})
		}
	}
}

type boardVM struct {
	Projects []projectCard
	Prompts  []model.Prompt
}

type projectCard struct {
	model.Project
	PromptCount int
}

func (s *Server) boardVM(ctx context.Context) (boardVM, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return boardVM{}, err
	}
	prompts, err := s.store.ListPrompts(ctx, store.PromptFilter{})
	if err != nil {
		return boardVM{}, err
	}

	counts := map[string]int{}
	for _, p := range prompts {
		if p.ProjectID != nil {
			counts[*p.ProjectID]++
		}
	}
	cards := make([]projectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, projectCard{Project: p, PromptCount: counts[p.ID]})
	}
	return boardVM{Projects: cards, Prompts: prompts}, nil
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	vm, err := s.boardVM(r.Context())
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.writeHTMLTemplate(w, "board.html", vm)
}

func (s *Server) handleBoardEvents(w http.ResponseWriter, r *http.Request) {
	s.serveStream(w, r, func(ctx context.Context) (string, error) {
		vm, err := s.boardVM(ctx)
		if err != nil {
			return "", err
		}
		return s.renderTemplate("board_main", vm)
	})
}

type projectVM struct {
	Project        model.Project
	IsDefault      bool
	Prompts        []model.Prompt
	WhiteboardHTML template.HTML
}

func (s *Server) projectVM(ctx context.Context, id string) (projectVM, error) {
	proj, err := s.store.GetProject(ctx, id)
	if err != nil {
		return projectVM{}, err
	}
	prompts, err := s.store.ListPrompts(ctx, store.PromptFilter{ProjectID: proj.ID})
	if err != nil {
		return projectVM{}, err
	}
	return projectVM{
		Project:        proj,
		IsDefault:      proj.Name == model.DefaultProjectName,
		Prompts:        prompts,
		WhiteboardHTML: renderMarkdownHTML(proj.Whiteboard),
	}, nil
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	vm, err := s.projectVM(r.Context(), r.PathValue("projectID"))
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.writeHTMLTemplate(w, "project.html", vm)
}

func (s *Server) handleProjectEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("projectID")
	s.serveStream(w, r, func(ctx context.Context) (string, error) {
		vm, err := s.projectVM(ctx, id)
		if err != nil {
			return "", err
		}
		return s.renderTemplate("project_main", vm)
	})
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(formValue(r, "name"))
	proj, err := s.store.CreateProject(r.Context(), name, "")
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	http.Redirect(w, r, "/projects/"+proj.ID, http.StatusSeeOther)
}

func (s *Server) handleProjectRename(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(formValue(r, "name"))
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}
	id := r.PathValue("projectID")
	if _, err := s.store.UpdateProject(r.Context(), id, store.ProjectUpdate{Name: &name}); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	redirectBack(w, r, "/projects/"+id)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("projectID")); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleWhiteboardSave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("projectID")
	if _, err := s.store.UpdateWhiteboard(r.Context(), id, formValue(r, "whiteboard")); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePromptCreate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("projectID")
	p, err := s.store.CreatePrompt(r.Context(), store.PromptCreate{
		Name:      strings.TrimSpace(formValue(r, "name")),
		Content:   formValue(r, "content"),
		ProjectID: &id,
	})
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	http.Redirect(w, r, "/prompts/"+p.ID, http.StatusSeeOther)
}

type promptVM struct {
	Prompt           model.Prompt
	Projects         []model.Project
	CurrentProjectID string
	ContentHTML      template.HTML
	IsArchived       bool
}

func (s *Server) promptVM(ctx context.Context, id string) (promptVM, error) {
	p, err := s.store.GetPrompt(ctx, id)
	if err != nil {
		return promptVM{}, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return promptVM{}, err
	}
	return promptVM{
		Prompt:           p,
		Projects:         projects,
		CurrentProjectID: deref(p.ProjectID),
		ContentHTML:      renderMarkdownHTML(p.Content),
		IsArchived:       p.Status == model.StatusArchived,
	}, nil
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	vm, err := s.promptVM(r.Context(), r.PathValue("promptID"))
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.writeHTMLTemplate(w, "prompt.html", vm)
}

func (s *Server) handlePromptEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("promptID")
	s.serveStream(w, r, func(ctx context.Context) (string, error) {
		vm, err := s.promptVM(ctx, id)
		if err != nil {
			return "", err
		}
		return s.renderTemplate("prompt_main", vm)
	})
}

func (s *Server) handlePromptEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("promptID")

	upd := store.PromptUpdate{}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var signals struct {
			Name    *string `json:"name"`
			Content *string `json:"content"`
			Project *string `json:"project_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&signals); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		upd.Name = signals.Name
		upd.Content = signals.Content
		upd.ProjectID = signals.Project
	} else {
		_ = r.ParseForm()
		for key, dst := range map[string]**string{
			"name":       &upd.Name,
			"content":    &upd.Content,
			"project_id": &upd.ProjectID,
		} {
			if r.Form.Has(key) {
				v := r.Form.Get(key)
				*dst = &v
			}
		}
	}
	if upd.ProjectID != nil && strings.TrimSpace(*upd.ProjectID) == "" {
		upd.ProjectID = nil
	}

	if _, err := s.store.UpdatePrompt(r.Context(), id, upd); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// handlePromptMove shifts a prompt one slot up or down within its
// project by rewriting the global order, so cross-project ordering is
// left intact.
func (s *Server) handlePromptMove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("promptID")
	dir := formValue(r, "dir")
	if dir != "up" && dir != "down" {
		http.Error(w, "dir must be up or down", http.StatusBadRequest)
		return
	}

	p, err := s.store.GetPrompt(r.Context(), id)
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	all, err := s.store.ListPrompts(r.Context(), store.PromptFilter{})
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}

	// Indexes into the global list belonging to this prompt's project.
	var siblings []int
	cur := -1
	for i, other := range all {
		if sameProject(p, other) {
			if other.ID == id {
				cur = len(siblings)
			}
			siblings = append(siblings, i)
		}
	}
	target := cur
	if dir == "up" {
		target--
	} else {
		target++
	}
	if cur < 0 || target < 0 || target >= len(siblings) {
		redirectBack(w, r, "/projects/"+deref(p.ProjectID))
		return
	}

	ids := make([]string, len(all))
	for i, other := range all {
		ids[i] = other.ID
	}
	ids[siblings[cur]], ids[siblings[target]] = ids[siblings[target]], ids[siblings[cur]]
	if err := s.store.ReorderPrompts(r.Context(), ids); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	redirectBack(w, r, "/projects/"+deref(p.ProjectID))
}

func (s *Server) handlePromptStatusToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("promptID")
	p, err := s.store.GetPrompt(r.Context(), id)
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	next := model.StatusArchived
	if p.Status == model.StatusArchived {
		next = model.StatusDraft
	}
	if _, err := s.store.UpdatePrompt(r.Context(), id, store.PromptUpdate{Status: &next}); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	redirectBack(w, r, "/prompts/"+id)
}

func (s *Server) handlePromptDelete(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetPrompt(r.Context(), r.PathValue("promptID"))
	if err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	if err := s.store.DeletePrompt(r.Context(), p.ID); err != nil {
		s.storeHTTPError(w, r, err)
		return
	}
	s.hub.Invalidate()
	http.Redirect(w, r, "/projects/"+deref(p.ProjectID), http.StatusSeeOther)
}

func sameProject(a, b model.Prompt) bool {
	return deref(a.ProjectID) == deref(b.ProjectID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
