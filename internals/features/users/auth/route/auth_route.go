package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/users/auth/controller"
	"trainingcenter_backend/internals/middlewares"
)

// AuthPublicRoutes mounts /api/auth endpoints that need no session.
func AuthPublicRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	auth.Post("/refresh-token", ctl.RefreshToken)
	auth.Post("/logout", ctl.Logout)
}

// AuthSessionRoutes mounts endpoints for any signed-in user.
func AuthSessionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Get("/me", ctl.Me)
	auth.Post("/change-password", ctl.ChangePassword)
}
