// Package client talks to the project API and owns the UI-side state:
// the project list, debounced search, sort order, and edit/delete/login
// flow state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrUnauthorized is returned when the API rejects the bearer token. The
// client has already cleared its token and fired OnUnauthorized by then.
var ErrUnauthorized = errors.New("unauthorized")

// Project mirrors the API wire format.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectUpdate carries a partial update; nil fields are omitted from the
// request body.
type ProjectUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Client is the API wrapper. It stores the bearer token after login and
// notifies the registered callback whenever any call comes back 401.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.Mutex
	token          string
	onUnauthorized func()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// OnUnauthorized registers the notification callback replacing the original
// window-level "auth:unauthorized" event.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// Token returns the currently stored bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ClearToken drops the stored token without touching the server.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

// ListProjects fetches all projects, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, title, description string) (*Project, error) {
	body := map[string]string{"title": title, "description": description}
	var project Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update and returns the updated record.
func (c *Client) UpdateProject(ctx context.Context, id int, update ProjectUpdate) (*Project, error) {
	var project Project
	path := fmt.Sprintf("/api/projects/%d", id)
	if err := c.do(ctx, http.MethodPut, path, update, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project and returns the deleted record.
func (c *Client) DeleteProject(ctx context.Context, id int) (*Project, error) {
	var project Project
	path := fmt.Sprintf("/api/projects/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.Lock()
		c.token = ""
		fn := c.onUnauthorized
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return errors.Errorf("%s %s: %d %s", method, path, resp.StatusCode, string(text))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
