// Package seed inserts the fixed demo records into an empty store.
package seed

import (
	"github.com/pkg/errors"

	"project-service/internal/models"
)

// Store is the slice of the persistence layer seeding needs.
type Store interface {
	CountProjects() (int64, error)
	CreateProject(project *models.Project) error
}

// Seeder populates an empty store with demo data. Run is idempotent: once any
// project exists it is a no-op, so the startup path and the dev endpoint can
// share it safely.
type Seeder struct {
	store Store
}

func NewSeeder(store Store) *Seeder {
	return &Seeder{store: store}
}

func demoProjects() []models.Project {
	return []models.Project{
		{Title: "Ukázkový projekt", Description: "Popis..."},
		{Title: "Programování", Description: "Práce s CoPilotem"},
	}
}

// Run inserts the demo records when the store is empty. It reports whether
// anything was inserted.
func (s *Seeder) Run() (bool, error) {
	count, err := s.store.CountProjects()
	if err != nil {
		return false, errors.Wrap(err, "count projects")
	}
	if count > 0 {
		return false, nil
	}
	for _, project := range demoProjects() {
		p := project
		if err := s.store.CreateProject(&p); err != nil {
			return false, errors.Wrapf(err, "seed project %q", p.Title)
		}
	}
	return true, nil
}
