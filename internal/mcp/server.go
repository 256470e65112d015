// Package mcp exposes the prompt library to Model Context Protocol
// clients. `inkwell mcp` runs it over stdio against the local database, so
// agents can browse projects, pull prompt text, and file new drafts without
// the HTTP server running.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"inkwell/internal/model"
	"inkwell/internal/store"
)

const serverVersion = "0.1.0"

const instructions = `Inkwell stores reusable text prompts organized into projects.
Use list_projects and list_prompts to browse, get_prompt for full content,
create_prompt to add a draft, and set_prompt_status to archive or restore.
Draft prompts are also exposed as MCP prompts; project whiteboards are
markdown resources under inkwell://projects/{id}/whiteboard.`

// Server wraps an MCP server over a Store. The tool surface always reads
// fresh rows; the prompt and resource catalogs are built from the library
// at construction, one catalog per (typically short-lived) stdio session.
type Server struct {
	store *store.Store
	log   *slog.Logger
	mcp   *sdkmcp.Server
}

// NewServer builds the server and registers tools, prompts and resources.
func NewServer(ctx context.Context, st *store.Store, logger *slog.Logger) (*Server, error) {
	if st == nil {
		return nil, errors.New("mcp: store is nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{store: st, log: logger}
	s.mcp = sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "inkwell",
		Version: serverVersion,
	}, &sdkmcp.ServerOptions{
		Instructions: instructions,
		Logger:       logger,
	})

	s.registerTools()
	if err := s.registerLibrary(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves MCP over stdio until ctx is canceled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server listening on stdio")
	return s.mcp.Run(ctx, &sdkmcp.StdioTransport{})
}

// Connect attaches the server to a transport; tests use this with an
// in-memory pair instead of stdio.
func (s *Server) Connect(ctx context.Context, t sdkmcp.Transport) (*sdkmcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

type listProjectsArgs struct{}

type listPromptsArgs struct {
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type getPromptArgs struct {
	ID string `json:"id"`
}

type createPromptArgs struct {
	Name      string `json:"name,omitempty"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type setPromptStatusArgs struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their ids and names",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listProjectsArgs) (*sdkmcp.CallToolResult, any, error) {
		projects, err := s.store.ListProjects(ctx)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(projects)
	})

	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        "list_prompts",
		Description: "List prompts, optionally filtered by project_id and/or status (draft|archived)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listPromptsArgs) (*sdkmcp.CallToolResult, any, error) {
		f := store.PromptFilter{ProjectID: strings.TrimSpace(in.ProjectID)}
		if v := strings.TrimSpace(in.Status); v != "" {
			st := model.Status(v)
			if !st.Valid() {
				return nil, nil, fmt.Errorf("invalid status %q (want draft or archived)", v)
			}
			f.Status = st
		}
		prompts, err := s.store.ListPrompts(ctx, f)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(prompts)
	})

	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        "get_prompt",
		Description: "Get a single prompt by id, including its full content",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getPromptArgs) (*sdkmcp.CallToolResult, any, error) {
		p, err := s.store.GetPrompt(ctx, in.ID)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(p)
	})

	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        "create_prompt",
		Description: "Create a prompt. Name defaults to one derived from content; project_id defaults to the Default project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createPromptArgs) (*sdkmcp.CallToolResult, any, error) {
		create := store.PromptCreate{
			Name:    in.Name,
			Content: in.Content,
			Status:  model.Status(strings.TrimSpace(in.Status)),
		}
		if v := strings.TrimSpace(in.ProjectID); v != "" {
			create.ProjectID = &v
		}
		p, err := s.store.CreatePrompt(ctx, create)
		if err != nil {
			return nil, nil, err
		}
		s.log.Info("prompt created over mcp", "id", p.ID, "name", p.Name)
		return jsonResult(p)
	})

	sdkmcp.AddTool(s.mcp, &sdkmcp.Tool{
		Name:        "set_prompt_status",
		Description: "Set a prompt's status to draft or archived",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in setPromptStatusArgs) (*sdkmcp.CallToolResult, any, error) {
		st := model.Status(strings.TrimSpace(in.Status))
		if !st.Valid() {
			return nil, nil, fmt.Errorf("invalid status %q (want draft or archived)", in.Status)
		}
		p, err := s.store.UpdatePrompt(ctx, in.ID, store.PromptUpdate{Status: &st})
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(p)
	})
}

// registerLibrary publishes the current library: draft prompts as MCP
// prompts and project whiteboards as markdown resources. Content is read
// from the store at request time, so edits made while a session is open
// are still served fresh.
func (s *Server) registerLibrary(ctx context.Context) error {
	prompts, err := s.store.ListPrompts(ctx, store.PromptFilter{Status: model.StatusDraft})
	if err != nil {
		return err
	}
	taken := map[string]bool{}
	for _, p := range prompts {
		name := promptSlug(p.Name)
		if name == "" || taken[name] {
			name = name + "-" + strings.TrimPrefix(p.ID, "prm-")
			name = strings.TrimPrefix(name, "-")
		}
		taken[name] = true
		id := p.ID
		s.mcp.AddPrompt(&sdkmcp.Prompt{
			Name:        name,
			Description: p.Name,
		}, func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
			cur, err := s.store.GetPrompt(ctx, id)
			if err != nil {
				return nil, err
			}
			return &sdkmcp.GetPromptResult{
				Description: cur.Name,
				Messages: []*sdkmcp.PromptMessage{{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: cur.Content},
				}},
			}, nil
		})
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, proj := range projects {
		id := proj.ID
		uri := WhiteboardURI(id)
		s.mcp.AddResource(&sdkmcp.Resource{
			URI:         uri,
			Name:        promptSlug(proj.Name) + "-whiteboard",
			Description: "Whiteboard for project " + proj.Name,
			MIMEType:    "text/markdown",
		}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			cur, err := s.store.GetProject(ctx, id)
			if err != nil {
				return nil, err
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     cur.Whiteboard,
				}},
			}, nil
		})
	}

	s.log.Info("library registered", "prompts", len(prompts), "projects", len(projects))
	return nil
}

// WhiteboardURI names a project's whiteboard resource.
func WhiteboardURI(projectID string) string {
	return "inkwell://projects/" + projectID + "/whiteboard"
}

// promptSlug turns a display name into an MCP identifier: lowercase,
// hyphen-separated, alphanumerics only.
func promptSlug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(b)}},
	}, nil, nil
}
