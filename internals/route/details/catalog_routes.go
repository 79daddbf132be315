package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "trainingcenter_backend/internals/features/catalog/courses/route"
	institutionRoute "trainingcenter_backend/internals/features/catalog/institutions/route"
	trainerRoute "trainingcenter_backend/internals/features/catalog/trainers/route"
	programRoute "trainingcenter_backend/internals/features/programs/programs/route"
)

func CatalogRoutes(api fiber.Router, db *gorm.DB) {
	courseRoute.CourseRoutes(api, db)
	institutionRoute.InstitutionRoutes(api, db)
	trainerRoute.TrainerRoutes(api, db)
	programRoute.ProgramRoutes(api, db)
}
