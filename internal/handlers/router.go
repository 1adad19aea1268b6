package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Projects *ProjectHandler
	Auth     *AuthHandler
	Health   *HealthHandler
	Seed     *SeedHandler
	Guard    fiber.Handler
	DevMode  bool
}

// Register wires all routes onto the app. Mutating project routes run behind
// the bearer guard; the seed endpoint only exists in dev mode.
func Register(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Project API is running.\n" +
			"GET  /health\n" +
			"GET  /health/db\n" +
			"GET  /api/projects\n" +
			"POST /api/auth/login {email,password}\n")
	})

	app.Get("/health", d.Health.Live)
	app.Get("/health/db", d.Health.Database)

	api := app.Group("/api")
	api.Post("/auth/login", d.Auth.Login)

	api.Get("/projects", d.Projects.ListProjects)
	api.Post("/projects", d.Guard, d.Projects.CreateProject)
	api.Put("/projects/:id", d.Guard, d.Projects.UpdateProject)
	api.Delete("/projects/:id", d.Guard, d.Projects.DeleteProject)

	if d.DevMode {
		api.Post("/dev/seed", d.Seed.Seed)
	}

	api.Get("/swagger/*", swagger.HandlerDefault)
}
