package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"inkwell/internal/model"
)

// PromptDraft is the create payload. Zero-value fields fall back to the
// server's defaults (derived name, draft status, Default project).
type PromptDraft struct {
	Name      string       `json:"name,omitempty"`
	Status    model.Status `json:"status,omitempty"`
	Content   string       `json:"content"`
	ProjectID *string      `json:"project_id,omitempty"`
}

// PromptPatch carries only the fields to change; nil fields are untouched.
type PromptPatch struct {
	Name      *string       `json:"name,omitempty"`
	Status    *model.Status `json:"status,omitempty"`
	Content   *string       `json:"content,omitempty"`
	ProjectID *string       `json:"project_id,omitempty"`
}

// PromptQuery narrows ListPrompts. Empty fields match everything.
type PromptQuery struct {
	ProjectID string
	Status    model.Status
}

func (c *Client) ListPrompts(ctx context.Context, q PromptQuery) ([]model.Prompt, error) {
	vals := url.Values{}
	if q.ProjectID != "" {
		vals.Set("project_id", q.ProjectID)
	}
	if q.Status != "" {
		vals.Set("status", string(q.Status))
	}
	path := "/api/prompts"
	if len(vals) > 0 {
		path += "?" + vals.Encode()
	}

	var prompts []model.Prompt
	if err := c.do(ctx, http.MethodGet, path, nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (c *Client) GetPrompt(ctx context.Context, id string) (model.Prompt, error) {
	var p model.Prompt
	err := c.do(ctx, http.MethodGet, "/api/prompts/"+url.PathEscape(id), nil, &p)
	return p, err
}

func (c *Client) CreatePrompt(ctx context.Context, draft PromptDraft) (model.Prompt, error) {
	var p model.Prompt
	err := c.do(ctx, http.MethodPost, "/api/prompts", draft, &p)
	return p, err
}

func (c *Client) UpdatePrompt(ctx context.Context, id string, patch PromptPatch) (model.Prompt, error) {
	var p model.Prompt
	err := c.do(ctx, http.MethodPut, "/api/prompts/"+url.PathEscape(id), patch, &p)
	return p, err
}

func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/prompts/"+url.PathEscape(id), nil, nil)
}

// ReorderPrompts persists a new ordering. The server applies it all or
// not at all, so a failed call leaves the previous order standing.
func (c *Client) ReorderPrompts(ctx context.Context, ids []string) error {
	body := map[string][]string{"prompt_ids": ids}
	return c.do(ctx, http.MethodPost, "/api/prompts/reorder", body, nil)
}
