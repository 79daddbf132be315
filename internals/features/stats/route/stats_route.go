package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/stats/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func StatsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)

	g := r.Group("/stats", authMiddleware.RequireRoles("statistics", constants.SupervisorRoles...))
	g.Get("/overview", ctl.Overview)
	g.Get("/:dimension", ctl.ByDimension)
}
