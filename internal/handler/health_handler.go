package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealthRoutes mounts the liveness probe. Health never touches the
// telephony provider.
func RegisterHealthRoutes(router fiber.Router) {
	router.Get("/health", HealthHandler())
}

func HealthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
