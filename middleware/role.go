package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireVetRole asserts the x-user-role header carries the vet role. The
// header is a placeholder identity, not a security boundary.
func RequireVetRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("x-user-role") != "vet" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Only vets can access this endpoint",
			})
		}
		return c.Next()
	}
}
