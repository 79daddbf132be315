package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	"trainingcenter_backend/internals/features/documents/render"
	"trainingcenter_backend/internals/features/documents/report"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
	helperOSS "trainingcenter_backend/internals/helpers/oss"
)

const logoSidePx = 300

type DocumentController struct {
	DB      *gorm.DB
	Storage helperOSS.Storage
	Now     func() time.Time
}

func NewDocumentController(db *gorm.DB, storage helperOSS.Storage) *DocumentController {
	return &DocumentController{DB: db, Storage: storage, Now: time.Now}
}

// logo fetches the stored WebP logo as PNG; any failure just drops the logo.
func (ctl *DocumentController) logo(ctx context.Context, in *institutionModel.Institution) []byte {
	if ctl.Storage == nil || in == nil || in.InstitutionLogoKey == nil {
		return nil
	}
	rc, err := ctl.Storage.Get(ctx, *in.InstitutionLogoKey)
	if err != nil {
		if !helperOSS.IsNotFound(err) {
			log.Printf("[WARN] logo %s: %v", *in.InstitutionLogoKey, err)
		}
		return nil
	}
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, constants.MaxLogoBytes))
	if err != nil {
		return nil
	}
	png, err := helperOSS.WebPToPNG(raw, logoSidePx)
	if err != nil {
		log.Printf("[WARN] logo %s: %v", *in.InstitutionLogoKey, err)
		return nil
	}
	return png
}

func (ctl *DocumentController) trainee(c *fiber.Ctx) (*traineeModel.Trainee, error) {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var t traineeModel.Trainee
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Program").Preload("Program.Course").
		Preload("Program.Institution").Preload("Program.Trainer").
		First(&t, "trainee_id = ?", id).Error; err != nil {
		return nil, err
	}
	if t.Program == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "trainee has no program")
	}
	if !sess.CanAccessInstitution(t.Program.ProgramInstitutionID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "trainee belongs to another institution")
	}
	return &t, nil
}

// send writes the PDF inline, archiving it first when ?archive=1.
func (ctl *DocumentController) send(c *fiber.Ctx, dir, name string, pdf []byte) error {
	if archive, _ := strconv.ParseBool(c.Query("archive", "false")); archive {
		if ctl.Storage == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "object storage is not configured")
		}
		key := helperOSS.BuildObjectKey(dir, name, ".pdf", ctl.Now())
		if err := ctl.Storage.Put(c.UserContext(), key, bytes.NewReader(pdf), constants.ContentTypePDF); err != nil {
			log.Printf("[ERROR] archive %s: %v", key, err)
			return helper.JsonError(c, fiber.StatusBadGateway, "document archive failed")
		}
		c.Set("X-Archive-URL", ctl.Storage.PublicURL(key))
	}
	c.Set(fiber.HeaderContentType, constants.ContentTypePDF)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`.pdf"`)
	return c.Send(pdf)
}

// GET /api/documents/trainees/:id/receipt
func (ctl *DocumentController) Receipt(c *fiber.Ctx) error {
	t, err := ctl.trainee(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sess, _ := helperAuth.SessionFrom(c)
	h := render.HeaderOf(t.Program.Institution, ctl.logo(c.UserContext(), t.Program.Institution))
	pdf, err := render.Receipt(h, t, sess.FullName, ctl.Now())
	if err != nil {
		log.Printf("[ERROR] receipt %s: %v", t.TraineeID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render receipt")
	}
	return ctl.send(c, "documents/receipts", "receipt_"+t.TraineeID.String(), pdf)
}

// GET /api/documents/trainees/:id/certificate
func (ctl *DocumentController) Certificate(c *fiber.Ctx) error {
	t, err := ctl.trainee(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	now := ctl.Now()
	if err := render.CertificateReady(t, now); err != nil {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	h := render.HeaderOf(t.Program.Institution, ctl.logo(c.UserContext(), t.Program.Institution))
	pdf, err := render.Certificate(h, t, now)
	if err != nil {
		if errors.Is(err, render.ErrProgramNotCompleted) || errors.Is(err, render.ErrBalanceOutstanding) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		log.Printf("[ERROR] certificate %s: %v", t.TraineeID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render certificate")
	}
	return ctl.send(c, "documents/certificates", "certificate_"+t.TraineeID.String(), pdf)
}

// GET /api/documents/programs/:id/report
func (ctl *DocumentController) ProgramReport(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := report.LoadProgram(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !sess.CanAccessInstitution(p.ProgramInstitutionID) {
		return helper.JsonError(c, fiber.StatusForbidden, "program belongs to another institution")
	}
	now := ctl.Now()
	r, err := report.Load(c.UserContext(), ctl.DB, p, now)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	h := render.HeaderOf(p.Institution, ctl.logo(c.UserContext(), p.Institution))
	pdf, err := render.ProgramReport(h, r, now)
	if err != nil {
		log.Printf("[ERROR] program report %s: %v", p.ProgramID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render report")
	}
	return ctl.send(c, "documents/reports", "program_"+p.ProgramID.String(), pdf)
}
