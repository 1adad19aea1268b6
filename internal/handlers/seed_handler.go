package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"project-service/internal/seed"
)

type SeedHandler struct {
	seeder *seed.Seeder
}

func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed inserts the demo records when the store is empty
// @Summary Seed demo data (dev only)
// @Description Insert the two demo projects if no projects exist; no-op otherwise
// @Tags dev
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 500 {object} map[string]interface{} "Seed failed"
// @Router /dev/seed [post]
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	if _, err := h.seeder.Run(); err != nil {
		log.Printf("Seed failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Seed failed",
		})
	}
	return c.JSON(fiber.Map{"seeded": true})
}
