package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/database"
	"urlaubsverwaltung/internal/logger"
)

// HealthCheck reports whether the database is reachable.
//
// @Summary Health check
// @Tags    infra
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router  /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), db); err != nil {
			logger.FromContext(c.UserContext()).Warn("health check failed", zap.Error(err))
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessCheck answers 200 as long as the process serves requests.
func LivenessCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
