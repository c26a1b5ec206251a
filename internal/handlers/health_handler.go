package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the service and its database are up.
type HealthHandler struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. A nil ping means there is no
// database to check (in-memory store).
func NewHealthHandler(ping func(ctx context.Context) error, timeout time.Duration) *HealthHandler {
	return &HealthHandler{ping: ping, timeout: timeout}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings the database within the configured timeout.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	database := "memory"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "down",
			})
		}
		database = "up"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
