package client

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Demo identity used by the one-click login.
const (
	demoEmail    = "demo@demo.cz"
	demoPassword = "demo"
)

// DefaultDebounce is how long the search query must be stable before the
// filter reacts to it.
const DefaultDebounce = 300 * time.Millisecond

// ErrEditTitleRequired is returned by SaveEdit when the edited title trims
// to an empty string.
var ErrEditTitleRequired = errors.New("title is required")

// SortKey selects the field projects are ordered by.
type SortKey string

const (
	SortByTitle SortKey = "title"
	SortByID    SortKey = "id"
)

// SortDir selects ascending or descending order.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Edit is an in-progress edit of one project. The original values decide
// whether saving needs a confirmation prompt.
type Edit struct {
	ID          int
	Title       string
	Description string

	originalTitle       string
	originalDescription string
}

// Controller owns the UI state. The filtered and sorted view is recomputed
// from the base list on every Visible call, never cached.
type Controller struct {
	api      *Client
	collator *collate.Collator
	debounce time.Duration

	mu           sync.Mutex
	projects     []Project
	query        string
	debounced    string
	timer        *time.Timer
	sortBy       SortKey
	sortDir      SortDir
	loggedIn     bool
	editing      *Edit
	deleteTarget *Project
}

// NewController creates a controller bound to the given API client and
// registers itself for unauthorized notifications.
func NewController(api *Client) *Controller {
	c := &Controller{
		api:      api,
		collator: collate.New(language.Czech, collate.IgnoreCase),
		debounce: DefaultDebounce,
		sortBy:   SortByTitle,
		sortDir:  SortAsc,
	}
	api.OnUnauthorized(c.handleUnauthorized)
	return c
}

// Load refreshes the base project list from the server.
func (c *Controller) Load(ctx context.Context) error {
	projects, err := c.api.ListProjects(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()
	return nil
}

// LoginDemo logs in with the demo credentials and reloads the list.
func (c *Controller) LoginDemo(ctx context.Context) error {
	if err := c.api.Login(ctx, demoEmail, demoPassword); err != nil {
		return err
	}
	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()
	return c.Load(ctx)
}

// Logout drops the session locally and reloads the public list.
func (c *Controller) Logout(ctx context.Context) error {
	c.api.ClearToken()
	c.mu.Lock()
	c.loggedIn = false
	c.editing = nil
	c.mu.Unlock()
	return c.Load(ctx)
}

// LoggedIn reports whether a session is active.
func (c *Controller) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loggedIn
}

// AddProject creates a project and reloads the list.
func (c *Controller) AddProject(ctx context.Context, title, description string) error {
	if _, err := c.api.CreateProject(ctx, title, description); err != nil {
		return err
	}
	return c.Load(ctx)
}

// SetQuery updates the raw search query. The filter only reacts once the
// query has been stable for the debounce interval.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.debounced = c.query
		c.mu.Unlock()
	})
}

// Query returns the raw (not yet debounced) search query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetSort sets the sort key and direction.
func (c *Controller) SetSort(key SortKey, dir SortDir) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortBy = key
	c.sortDir = dir
}

// ToggleSortDir flips between ascending and descending.
func (c *Controller) ToggleSortDir() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sortDir == SortAsc {
		c.sortDir = SortDesc
	} else {
		c.sortDir = SortAsc
	}
}

// Visible returns the derived view: the base list filtered by the debounced
// query (case-insensitive, over title and description) and sorted by the
// current key and direction.
func (c *Controller) Visible() []Project {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(c.debounced))
	filtered := make([]Project, 0, len(c.projects))
	for _, p := range c.projects {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			filtered = append(filtered, p)
		}
	}

	sortBy, sortDir, collator := c.sortBy, c.sortDir, c.collator
	sort.SliceStable(filtered, func(i, j int) bool {
		var cmp int
		if sortBy == SortByTitle {
			cmp = collator.CompareString(filtered[i].Title, filtered[j].Title)
		} else {
			cmp = filtered[i].ID - filtered[j].ID
		}
		if sortDir == SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return filtered
}

// Counts returns how many projects the current filter shows out of the total.
func (c *Controller) Counts() (shown, total int) {
	visible := c.Visible()
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(visible), len(c.projects)
}

// StartEdit begins editing the given project, remembering the pre-edit values.
func (c *Controller) StartEdit(p Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &Edit{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		originalTitle:       p.Title,
		originalDescription: p.Description,
	}
}

// Editing returns a copy of the in-progress edit, or nil when not editing.
func (c *Controller) Editing() *Edit {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	edit := *c.editing
	return &edit
}

// SetEditFields updates the editable fields of the in-progress edit.
func (c *Controller) SetEditFields(title, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return
	}
	c.editing.Title = title
	c.editing.Description = description
}

// EditChanged reports whether the edit differs from the pre-edit snapshot.
// The UI only asks for confirmation when it does.
func (c *Controller) EditChanged() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return false
	}
	return strings.TrimSpace(c.editing.Title) != c.editing.originalTitle ||
		c.editing.Description != c.editing.originalDescription
}

// CancelEdit abandons the in-progress edit.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// SaveEdit persists the in-progress edit and reloads the list. The title
// must be non-empty after trimming.
func (c *Controller) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	edit := c.editing
	if edit == nil {
		c.mu.Unlock()
		return nil
	}
	title := strings.TrimSpace(edit.Title)
	description := edit.Description
	id := edit.ID
	c.mu.Unlock()

	if title == "" {
		return ErrEditTitleRequired
	}
	if _, err := c.api.UpdateProject(ctx, id, ProjectUpdate{
		Title:       &title,
		Description: &description,
	}); err != nil {
		return err
	}
	c.CancelEdit()
	return c.Load(ctx)
}

// RequestDelete marks a project for deletion pending confirmation.
func (c *Controller) RequestDelete(p Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := p
	c.deleteTarget = &target
}

// PendingDelete returns the project awaiting delete confirmation, if any.
func (c *Controller) PendingDelete() *Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteTarget == nil {
		return nil
	}
	target := *c.deleteTarget
	return &target
}

// CancelDelete clears the pending delete target.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteTarget = nil
}

// ConfirmDelete deletes the pending target and reloads the list.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.deleteTarget
	c.mu.Unlock()
	if target == nil {
		return nil
	}
	if _, err := c.api.DeleteProject(ctx, target.ID); err != nil {
		return err
	}
	c.CancelDelete()
	return c.Load(ctx)
}

// handleUnauthorized reacts to a 401 from any API call: the session flag is
// cleared, any edit is abandoned, and the public list is reloaded.
func (c *Controller) handleUnauthorized() {
	c.mu.Lock()
	c.loggedIn = false
	c.editing = nil
	c.mu.Unlock()
	_ = c.Load(context.Background())
}
