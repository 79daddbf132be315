package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/catalog/institutions/controller"
	helperOSS "trainingcenter_backend/internals/helpers/oss"
	authMiddleware "trainingcenter_backend/internals/middlewares/auth"
)

func InstitutionRoutes(r fiber.Router, db *gorm.DB) {
	var storage helperOSS.Storage
	if svc, err := helperOSS.NewOSSServiceFromEnv("trainingcenter"); err == nil {
		storage = svc
	} else {
		log.Printf("[WARN] institution logos disabled: %v", err)
	}
	ctl := controller.NewInstitutionController(db, storage)
	adminOnly := authMiddleware.RequireRoles("institution management", constants.AdminOnly...)

	g := r.Group("/institutions")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", adminOnly, ctl.Create)
	g.Patch("/:id", adminOnly, ctl.Patch)
	g.Delete("/:id", adminOnly, ctl.Delete)
	g.Post("/:id/logo", adminOnly, ctl.UploadLogo)
}
