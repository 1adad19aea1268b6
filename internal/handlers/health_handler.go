package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Pinger is the store-reachability probe used by the database health check.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Live reports process liveness
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Database reports store reachability
// @Summary Database reachability probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /health/db [get]
func (h *HealthHandler) Database(c *fiber.Ctx) error {
	if err := h.store.Ping(); err != nil {
		log.Printf("Database health check failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"db": "failed"})
	}
	return c.JSON(fiber.Map{"db": "ok"})
}
