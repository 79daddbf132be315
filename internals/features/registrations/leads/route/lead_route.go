package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/leads/controller"
	"trainingcenter_backend/internals/helpers/notify"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func LeadRoutes(r fiber.Router, db *gorm.DB) {
	svc := booking.NewService(booking.NewGormStore(db), notify.Shared())
	ctl := controller.NewLeadController(db, svc)

	g := r.Group("/leads", authMiddleware.RequireRoles("leads", constants.StaffRoles...))
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Post("/:id/call", ctl.Call)
	g.Post("/:id/cancel", ctl.Cancel)
	g.Post("/:id/confirm", ctl.Confirm)
}
