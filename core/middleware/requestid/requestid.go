// Package requestid tags every request with a unique id.
package requestid

import (
	"pathsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

// New returns a middleware that reuses an incoming X-Request-ID or generates one,
// stores it in locals under logger.RequestIDKey and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(logger.RequestIDKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
