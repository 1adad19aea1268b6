package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"project-service/internal/metrics"
	"project-service/internal/models"
	"project-service/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	metrics        *metrics.Metrics
}

func NewProjectHandler(projectService *services.ProjectService, m *metrics.Metrics) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		metrics:        m,
	}
}

// CreateProjectRequest is the create body. Description is optional and
// defaults to an empty string.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListProjects returns all projects
// @Summary List all projects
// @Description Get all projects ordered by creation time, newest first
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project "List of all projects"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	return c.JSON(projects)
}

// CreateProject creates a new project
// @Summary Create a new project
// @Description Create a new project with title and optional description
// @Tags projects
// @Accept json
// @Produce json
// @Param project body CreateProjectRequest true "Project data"
// @Security BearerAuth
// @Success 201 {object} models.Project "Project successfully created"
// @Failure 400 {object} map[string]interface{} "Missing or empty title"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing project data: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	project, err := h.projectService.CreateProject(req.Title, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title required",
			})
		}
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	h.metrics.ProjectOp("created")
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject updates a project
// @Summary Update a project
// @Description Partially update a project; only supplied fields change
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body models.ProjectUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} map[string]interface{} "Invalid id or empty title"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		log.Printf("Invalid project id: %s - Error: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid id",
		})
	}

	var update models.ProjectUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing project update data: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	project, err := h.projectService.UpdateProject(id, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title required",
			})
		case errors.Is(err, services.ErrProjectNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Not found",
			})
		default:
			log.Printf("Error updating project: ID=%d, Error=%v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
			})
		}
	}

	h.metrics.ProjectOp("updated")
	return c.JSON(project)
}

// DeleteProject deletes a project
// @Summary Delete a project
// @Description Delete a project and return the deleted record
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Security BearerAuth
// @Success 200 {object} models.Project "Deleted project"
// @Failure 400 {object} map[string]interface{} "Invalid id"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		log.Printf("Invalid project id: %s - Error: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid id",
		})
	}

	project, err := h.projectService.DeleteProject(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Not found",
			})
		}
		log.Printf("Error deleting project: ID=%d, Error=%v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	h.metrics.ProjectOp("deleted")
	return c.JSON(project)
}
