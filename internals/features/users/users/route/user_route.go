package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/users/users/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	g := r.Group("/users", authMiddleware.RequireRoles("user management", constants.AdminOnly...))
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
