// Package apiclient is the typed HTTP client for the Inkwell API.
//
// Every method maps to one REST operation. Failures come back as *APIError
// when the server answered with a detail body, or as the transport error
// otherwise; callers render either with FailureMessage.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an Inkwell server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a client for baseURL, e.g. "http://127.0.0.1:7891".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL reports the server address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx response carrying the server's detail text.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string { return e.Detail }

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// FailureMessage renders an error for the user as "<action> failed: <why>".
func FailureMessage(action string, err error) string {
	return fmt.Sprintf("%s failed: %v", action, err)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	detail := strings.TrimSpace(string(data))
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	if detail == "" {
		detail = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Detail: detail}
}

// Health checks that the server is up and answering.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
