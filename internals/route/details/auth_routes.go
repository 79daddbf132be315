package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "trainingcenter_backend/internals/features/users/auth/route"
	userRoute "trainingcenter_backend/internals/features/users/users/route"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthPublicRoutes(app, db)
}

func UserRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthSessionRoutes(api, db)
	userRoute.UserRoutes(api, db)
}
