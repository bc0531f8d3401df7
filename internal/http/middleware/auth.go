package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	httpUtil "github.com/klantroef/medialink/internal/http/util"
)

// Locals keys set by the auth middleware.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// Auth creates a middleware that requires a valid bearer token.
func Auth(tokens *httpUtil.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header must be a bearer token",
			})
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserEmailKey, claims.Email)
		return c.Next()
	}
}
