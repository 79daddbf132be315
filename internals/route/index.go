package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
	routeDetails "trainingcenter_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// everything below needs a session
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(api, db)

	log.Println("[INFO] Setting up CatalogRoutes...")
	routeDetails.CatalogRoutes(api, db)

	log.Println("[INFO] Setting up RegistrationRoutes...")
	routeDetails.RegistrationRoutes(api, db)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(api, db)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}
