package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"project-service/internal/models"
)

// ProjectRepository provides methods to interact with the Project model in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListProjects retrieves all Projects from the database, newest first.
func (r *ProjectRepository) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// CreateProject creates a new Project in the database.
func (r *ProjectRepository) CreateProject(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetProject retrieves a Project by its ID from the database.
func (r *ProjectRepository) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SaveProject persists changes to an existing Project.
func (r *ProjectRepository) SaveProject(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteProject deletes a Project by its ID and returns the deleted record.
func (r *ProjectRepository) DeleteProject(id uint) (*models.Project, error) {
	project, err := r.GetProject(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.Project{}, id).Error; err != nil {
		return nil, errors.Wrap(err, "delete project")
	}
	return project, nil
}

// CountProjects returns the number of Projects in the database.
func (r *ProjectRepository) CountProjects() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// Ping issues a trivial query against the store to verify reachability.
func (r *ProjectRepository) Ping() error {
	return r.db.Exec("SELECT 1").Error
}
