package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/logger"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RequestIDLocalKey = "request_id"
)

// RequestID takes X-Request-ID from the request or generates one, echoes it
// in the response and stores it in the locals. The user context carries base
// enriched with the request ID, so services log it too.
func RequestID(base *zap.Logger) fiber.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		ctx, _ := logger.WithRequestID(c.UserContext(), base, id)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
