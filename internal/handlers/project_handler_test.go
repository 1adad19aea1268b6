package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"project-service/internal/handlers"
	"project-service/internal/metrics"
	"project-service/internal/models"
	"project-service/internal/seed"
	"project-service/internal/services"
)

// memStore is an in-memory stand-in for the GORM repository.
type memStore struct {
	nextID   uint
	projects map[uint]models.Project
	pingErr  error
}

func newMemStore() *memStore {
	return &memStore{projects: map[uint]models.Project{}}
}

func (s *memStore) ListProjects() ([]models.Project, error) {
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) CreateProject(project *models.Project) error {
	s.nextID++
	project.ID = s.nextID
	project.CreatedAt = time.Unix(int64(s.nextID), 0)
	s.projects[project.ID] = *project
	return nil
}

func (s *memStore) GetProject(id uint) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *memStore) SaveProject(project *models.Project) error {
	if _, ok := s.projects[project.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *memStore) DeleteProject(id uint) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(s.projects, id)
	return &p, nil
}

func (s *memStore) CountProjects() (int64, error) {
	return int64(len(s.projects)), nil
}

func (s *memStore) Ping() error {
	return s.pingErr
}

func newTestApp(store *memStore) (*fiber.App, *services.AuthService) {
	projectService := services.NewProjectService(store)
	authService := services.NewAuthService([]byte("test-secret"), time.Hour)
	apiMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	app := fiber.New()
	handlers.Register(app, handlers.Deps{
		Projects: handlers.NewProjectHandler(projectService, apiMetrics),
		Auth:     handlers.NewAuthHandler(authService, apiMetrics),
		Health:   handlers.NewHealthHandler(store),
		Seed:     handlers.NewSeedHandler(seed.NewSeeder(store)),
		Guard:    handlers.NewAuthMiddleware(authService),
		DevMode:  true,
	})
	return app, authService
}

func jsonRequest(method, path, token string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

func demoToken(t *testing.T, auth *services.AuthService) string {
	t.Helper()
	token, err := auth.Login(services.DemoEmail, services.DemoPassword)
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(newMemStore())

	resp, err := app.Test(jsonRequest(http.MethodGet, "/health", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthDB(t *testing.T) {
	store := newMemStore()
	app, _ := newTestApp(store)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/health/db", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["db"])

	store.pingErr = assert.AnError
	resp, err = app.Test(jsonRequest(http.MethodGet, "/health/db", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	decodeBody(t, resp, &body)
	assert.Equal(t, "failed", body["db"])
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(newMemStore())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "demo@demo.cz",
		"password": "demo",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["token"])
}

func TestLoginRejected(t *testing.T) {
	app, _ := newTestApp(newMemStore())

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "demo@demo.cz",
		"password": "nope",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMutationsRequireToken(t *testing.T) {
	store := newMemStore()
	app, _ := newTestApp(store)

	requests := []*http.Request{
		jsonRequest(http.MethodPost, "/api/projects", "", map[string]string{"title": "X"}),
		jsonRequest(http.MethodPut, "/api/projects/1", "", map[string]string{"title": "X"}),
		jsonRequest(http.MethodDelete, "/api/projects/1", "", nil),
		jsonRequest(http.MethodPost, "/api/projects", "garbage-token", map[string]string{"title": "X"}),
	}
	for _, req := range requests {
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", req.Method, req.URL.Path)
	}

	count, err := store.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "rejected requests must not mutate the store")
}

func TestCreateProject(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/projects", token, map[string]string{
		"title":       "  New Project  ",
		"description": "details",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Project
	decodeBody(t, resp, &created)
	assert.Equal(t, "New Project", created.Title)
	assert.Equal(t, "details", created.Description)
	assert.NotZero(t, created.ID)
}

func TestCreateProjectBlankTitle(t *testing.T) {
	store := newMemStore()
	app, auth := newTestApp(store)
	token := demoToken(t, auth)

	for _, title := range []string{"", "   "} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/projects", token, map[string]string{
			"title":       title,
			"description": "still has a description",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "title %q", title)
	}

	count, err := store.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestListNewestFirst(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	for _, title := range []string{"older", "newer"} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/projects", token, map[string]string{"title": title}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/projects", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var projects []models.Project
	decodeBody(t, resp, &projects)
	require.Len(t, projects, 2)
	assert.Equal(t, "newer", projects[0].Title)
	assert.Equal(t, "older", projects[1].Title)
}

func TestUpdateProjectRoundTrip(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/projects", token, map[string]string{
		"title":       "A",
		"description": "B",
	}))
	require.NoError(t, err)
	var created models.Project
	decodeBody(t, resp, &created)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/projects/1", token, map[string]string{
		"title": "C",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Project
	decodeBody(t, resp, &updated)
	assert.Equal(t, "C", updated.Title)
	assert.Equal(t, "B", updated.Description, "description must be untouched by a title-only update")
}

func TestUpdateProjectInvalidID(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/projects/abc", token, map[string]string{"title": "X"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProjectNotFound(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/projects/99", token, map[string]string{"title": "X"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteProject(t *testing.T) {
	store := newMemStore()
	app, auth := newTestApp(store)
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/projects", token, map[string]string{"title": "doomed"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/api/projects/1", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted models.Project
	decodeBody(t, resp, &deleted)
	assert.Equal(t, "doomed", deleted.Title)

	count, err := store.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestDeleteProjectNotFound(t *testing.T) {
	app, auth := newTestApp(newMemStore())
	token := demoToken(t, auth)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/projects/99", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/api/projects/xyz", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDevSeedEndpoint(t *testing.T) {
	store := newMemStore()
	app, _ := newTestApp(store)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/dev/seed", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["seeded"])

	count, err := store.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Repeated calls are a no-op once data exists.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/dev/seed", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	count, err = store.CountProjects()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
