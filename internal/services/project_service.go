package services

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"project-service/internal/models"
)

// ProjectStore is the persistence contract the service runs against.
// *repository.ProjectRepository satisfies it; tests substitute an in-memory
// implementation.
type ProjectStore interface {
	ListProjects() ([]models.Project, error)
	CreateProject(project *models.Project) error
	GetProject(id uint) (*models.Project, error)
	SaveProject(project *models.Project) error
	DeleteProject(id uint) (*models.Project, error)
	CountProjects() (int64, error)
}

type ProjectService struct {
	store ProjectStore
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

// ListProjects returns all projects, newest first.
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	return s.store.ListProjects()
}

// CreateProject validates and stores a new project. The title is trimmed and
// must be non-empty; the description defaults to an empty string.
func (s *ProjectService) CreateProject(title, description string) (*models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	project := &models.Project{
		Title:       title,
		Description: description,
	}
	if err := s.store.CreateProject(project); err != nil {
		return nil, errors.Wrap(err, "create project")
	}
	return project, nil
}

// UpdateProject applies a partial update: only non-nil fields change. A
// supplied title is trimmed and must be non-empty.
func (s *ProjectService) UpdateProject(id int, update models.ProjectUpdate) (*models.Project, error) {
	if id < 1 {
		return nil, ErrProjectNotFound
	}
	project, err := s.store.GetProject(uint(id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		project.Title = title
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if err := s.store.SaveProject(project); err != nil {
		return nil, errors.Wrap(err, "save project")
	}
	return project, nil
}

// DeleteProject removes a project and returns the deleted record.
func (s *ProjectService) DeleteProject(id int) (*models.Project, error) {
	if id < 1 {
		return nil, ErrProjectNotFound
	}
	project, err := s.store.DeleteProject(uint(id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

// CountProjects returns the number of stored projects.
func (s *ProjectService) CountProjects() (int64, error) {
	return s.store.CountProjects()
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	return err
}
