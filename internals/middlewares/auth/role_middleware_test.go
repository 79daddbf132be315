package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"trainingcenter_backend/internals/constants"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

func appWithRole(role constants.Role, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			helperAuth.SetSession(c, &helperAuth.Session{Role: role})
		}
		return c.Next()
	})
	app.Get("/x", guard, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func TestRequireRoles(t *testing.T) {
	guard := RequireRoles("stats", constants.SupervisorRoles...)
	tests := []struct {
		role constants.Role
		want int
	}{
		{constants.RoleAdmin, fiber.StatusNoContent},
		{constants.RoleManager, fiber.StatusNoContent},
		{constants.RoleEmployee, fiber.StatusForbidden},
		{constants.RoleMember, fiber.StatusForbidden},
		{"", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			resp, err := appWithRole(tt.role, guard).Test(httptest.NewRequest("GET", "/x", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

// A role name that merely contains "admin" must not pass an admin guard.
func TestRequireRolesNoSubstringMatch(t *testing.T) {
	resp, err := appWithRole(constants.Role("not-admin"), RequireRoles("users", constants.AdminOnly...)).
		Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
