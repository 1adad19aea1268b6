package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"project-service/internal/metrics"
	"project-service/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService *services.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     m,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the demo identity
// @Summary Log in with the demo credentials
// @Description Issue a bearer token for the fixed demo identity
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "Signed bearer token"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login data: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.metrics.Login(false)
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("Error signing token: %v", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	h.metrics.Login(true)
	return c.JSON(fiber.Map{"token": token})
}

// NewAuthMiddleware returns a Fiber handler rejecting requests without a
// valid bearer token. Guarded handlers never run on auth failure.
func NewAuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || authService.Verify(token) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
