package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/trainees/controller"
	"trainingcenter_backend/internals/helpers/notify"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func TraineeRoutes(r fiber.Router, db *gorm.DB) {
	svc := booking.NewService(booking.NewGormStore(db), notify.Shared())
	ctl := controller.NewTraineeController(db, svc)

	g := r.Group("/trainees", authMiddleware.RequireRoles("trainees", constants.StaffRoles...))
	g.Post("/quote", ctl.Quote)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Post("/:id/confirm-second-tranche", ctl.ConfirmSecondTranche)
	g.Delete("/:id", authMiddleware.RequireRoles("trainee archiving", constants.SupervisorRoles...), ctl.Archive)
}
