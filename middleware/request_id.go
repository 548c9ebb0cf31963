// middleware/request_id.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"life-counter-api/utils/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id (honoring one sent by the caller)
// and logs method, path, status and latency on the way out.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(RequestIDHeader, id)

		start := time.Now()
		err := c.Next()

		logger.Log.Infow("request",
			"request_id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
		)
		return err
	}
}
