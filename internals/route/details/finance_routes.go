package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentRoute "trainingcenter_backend/internals/features/documents/route"
	expenseRoute "trainingcenter_backend/internals/features/finance/expenses/route"
	statsRoute "trainingcenter_backend/internals/features/stats/route"
)

func FinanceRoutes(api fiber.Router, db *gorm.DB) {
	expenseRoute.ExpenseRoutes(api, db)
	statsRoute.StatsRoutes(api, db)
	documentRoute.DocumentRoutes(api, db)
}
