package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/documents/controller"
	helperOSS "trainingcenter_backend/internals/helpers/oss"
	"trainingcenter_backend/internals/middlewares"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func DocumentRoutes(r fiber.Router, db *gorm.DB) {
	var storage helperOSS.Storage
	if svc, err := helperOSS.NewOSSServiceFromEnv("trainingcenter"); err == nil {
		storage = svc
	} else {
		log.Printf("[WARN] document archive and logos disabled: %v", err)
	}
	ctl := controller.NewDocumentController(db, storage)

	g := r.Group("/documents",
		middlewares.DocumentRateLimiter(),
		authMiddleware.RequireRoles("documents", constants.StaffRoles...),
	)
	g.Get("/trainees/:id/receipt", ctl.Receipt)
	g.Get("/trainees/:id/certificate", ctl.Certificate)
	g.Get("/programs/:id/report", authMiddleware.RequireRoles("program reports", constants.SupervisorRoles...), ctl.ProgramReport)
}
