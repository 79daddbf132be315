package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/finance/expenses/controller"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func ExpenseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewExpenseController(db)

	g := r.Group("/expenses", authMiddleware.RequireRoles("expenses", constants.StaffRoles...))
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", authMiddleware.RequireRoles("expense deletion", constants.SupervisorRoles...), ctl.Delete)
}
