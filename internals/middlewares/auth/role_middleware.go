package auth

import (
	"github.com/gofiber/fiber/v2"

	"trainingcenter_backend/internals/constants"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

// RequireRoles lets the request through only when the session role is one of roles.
func RequireRoles(feature string, roles ...constants.Role) fiber.Handler {
	msg := constants.RoleError(feature, roles)
	return func(c *fiber.Ctx) error {
		s, err := helperAuth.SessionFrom(c)
		if err != nil {
			return err
		}
		if !s.HasAnyRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, msg)
		}
		return c.Next()
	}
}
