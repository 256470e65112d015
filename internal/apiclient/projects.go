package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"inkwell/internal/model"
)

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &p)
	return p, err
}

func (c *Client) CreateProject(ctx context.Context, name string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", map[string]string{"name": name}, &p)
	return p, err
}

func (c *Client) RenameProject(ctx context.Context, id, name string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), map[string]string{"name": name}, &p)
	return p, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

// UpdateWhiteboard replaces the whole whiteboard text. Last writer wins;
// there is no merge.
func (c *Client) UpdateWhiteboard(ctx context.Context, id, text string) (model.Project, error) {
	var p model.Project
	err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id)+"/whiteboard",
		map[string]string{"whiteboard": text}, &p)
	return p, err
}

func (c *Client) GetSetting(ctx context.Context, key string) (model.Setting, error) {
	var s model.Setting
	err := c.do(ctx, http.MethodGet, "/api/settings/"+url.PathEscape(key), nil, &s)
	return s, err
}

func (c *Client) SetSetting(ctx context.Context, key, value string) error {
	return c.do(ctx, http.MethodPost, "/api/settings", model.Setting{Key: key, Value: value}, nil)
}
