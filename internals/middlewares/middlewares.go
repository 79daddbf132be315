package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"

	"trainingcenter_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain. Order matters: recover must wrap everything.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
