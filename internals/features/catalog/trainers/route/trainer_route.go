package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/catalog/trainers/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func TrainerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTrainerController(db)
	adminOnly := authMiddleware.RequireRoles("trainer management", constants.AdminOnly...)

	g := r.Group("/trainers")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", adminOnly, ctl.Create)
	g.Patch("/:id", adminOnly, ctl.Patch)
	g.Delete("/:id", adminOnly, ctl.Delete)
}
