package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	leadRoute "trainingcenter_backend/internals/features/registrations/leads/route"
	traineeRoute "trainingcenter_backend/internals/features/registrations/trainees/route"
	whitelistRoute "trainingcenter_backend/internals/features/registrations/whitelists/route"
)

func RegistrationRoutes(api fiber.Router, db *gorm.DB) {
	leadRoute.LeadRoutes(api, db)
	whitelistRoute.WhitelistRoutes(api, db)
	traineeRoute.TraineeRoutes(api, db)
}
