package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mizanhq/mizan/internal/services"
)

const sessionClaimsKey = "sessionClaims"

// RequireAuth validates the bearer token and stashes its claims on the
// request context.
func (handler *Handler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	claims, err := handler.auth.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session token"})
	}

	c.Locals(sessionClaimsKey, claims)
	return c.Next()
}

// RequirePermission gates a route group on one capability tag.
func (handler *Handler) RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(sessionClaimsKey).(services.SessionClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing session"})
		}
		if !claims.HasPermission(permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}
