package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/programs/programs/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func ProgramRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewProgramController(db)
	supervisors := authMiddleware.RequireRoles("program management", constants.SupervisorRoles...)

	g := r.Group("/programs")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/report", supervisors, ctl.Report)
	g.Post("/", supervisors, ctl.Create)
	g.Patch("/:id", supervisors, ctl.Patch)
	g.Delete("/:id", supervisors, ctl.Delete)
}
