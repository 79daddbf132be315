package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/registrations/booking"
	traineeDTO "trainingcenter_backend/internals/features/registrations/trainees/dto"
	"trainingcenter_backend/internals/features/registrations/whitelists/dto"
	"trainingcenter_backend/internals/features/registrations/whitelists/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type WhitelistController struct {
	DB        *gorm.DB
	Booking   *booking.Service
	Validator *validator.Validate
}

func NewWhitelistController(db *gorm.DB, svc *booking.Service) *WhitelistController {
	return &WhitelistController{DB: db, Booking: svc, Validator: helper.NewValidator()}
}

// GET /api/whitelist?status=&program_id=&q=
func (ctl *WhitelistController) List(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	status, err := dto.ParseStatus(c.Query("status"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	programID, err := helper.ParseUUIDQuery(c, "program_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Whitelist{}).
		Joins("JOIN programs ON programs.program_id = whitelists.whitelist_program_id").
		Scopes(sess.ScopeColumn("programs.program_institution_id"))
	if status != nil {
		q = q.Where("whitelists.whitelist_status = ?", *status)
	}
	if programID != nil {
		q = q.Where("whitelists.whitelist_program_id = ?", *programID)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("whitelists.whitelist_full_name ILIKE ? OR whitelists.whitelist_phone ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Whitelist
	if err := q.Select("whitelists.*").
		Preload("Program").Preload("Program.Course").Preload("Program.Institution").
		Order("whitelists.whitelist_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "whitelist", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *WhitelistController) Get(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var w model.Whitelist
	if err := ctl.DB.WithContext(c.UserContext()).
		Preload("Program").Preload("Program.Course").Preload("Program.Institution").
		First(&w, "whitelist_id = ?", id).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if w.Program != nil && !sess.CanAccessInstitution(w.Program.ProgramInstitutionID) {
		return helper.JsonError(c, fiber.StatusForbidden, "booking belongs to another institution")
	}
	return helper.JsonOK(c, "booking", w)
}

// POST /api/whitelist books someone directly, without a lead.
func (ctl *WhitelistController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateWhitelistRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	w, err := ctl.Booking.CreateWhitelist(c.UserContext(), sess, req.ToModel())
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonCreated(c, "booking created", w)
}

// POST /api/whitelist/:id/cancel
func (ctl *WhitelistController) Cancel(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	w, err := ctl.Booking.CancelWhitelist(c.UserContext(), sess, id)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "booking canceled", w)
}

// POST /api/whitelist/:id/confirm with the trainee registration form.
func (ctl *WhitelistController) Confirm(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req traineeDTO.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	t, err := ctl.Booking.ConfirmWhitelist(c.UserContext(), sess, id, req.ToRegistration())
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonCreated(c, "booking confirmed, trainee registered", t)
}
