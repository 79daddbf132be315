package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/whitelists/controller"
	"trainingcenter_backend/internals/helpers/notify"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func WhitelistRoutes(r fiber.Router, db *gorm.DB) {
	svc := booking.NewService(booking.NewGormStore(db), notify.Shared())
	ctl := controller.NewWhitelistController(db, svc)

	g := r.Group("/whitelist", authMiddleware.RequireRoles("whitelist", constants.StaffRoles...))
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Post("/:id/cancel", ctl.Cancel)
	g.Post("/:id/confirm", ctl.Confirm)
}
