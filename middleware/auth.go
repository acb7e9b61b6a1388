// middleware/auth.go
package middleware

import (
	"strings"

	"sweat-battle-system/logging"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware requires the X-User-ID header set by the gateway
// and exposes it through Locals.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get("X-User-ID"))
		if userID == "" {
			logging.Warn("user context missing", logging.Fields{"path": c.Path()})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID: request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// UserID returns the id stored by UserContextMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
