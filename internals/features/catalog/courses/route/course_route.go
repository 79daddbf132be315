package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/catalog/courses/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func CourseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)
	adminOnly := authMiddleware.RequireRoles("course management", constants.AdminOnly...)

	g := r.Group("/courses")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", adminOnly, ctl.Create)
	g.Patch("/:id", adminOnly, ctl.Patch)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
