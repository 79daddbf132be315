package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/leads/dto"
	"trainingcenter_backend/internals/features/registrations/leads/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type LeadController struct {
	DB        *gorm.DB
	Booking   *booking.Service
	Validator *validator.Validate
}

func NewLeadController(db *gorm.DB, svc *booking.Service) *LeadController {
	return &LeadController{DB: db, Booking: svc, Validator: helper.NewValidator()}
}

// GET /api/leads?status=&course_id=&wilaya=&q=
func (ctl *LeadController) List(c *fiber.Ctx) error {
	statuses, err := dto.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	courseID, err := helper.ParseUUIDQuery(c, "course_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Lead{})
	if len(statuses) > 0 {
		q = q.Where("lead_status IN ?", statuses)
	}
	if courseID != nil {
		q = q.Where("lead_course_id = ?", *courseID)
	}
	if w := strings.TrimSpace(c.Query("wilaya")); w != "" {
		q = q.Where("lead_wilaya ILIKE ?", w)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("lead_full_name ILIKE ? OR lead_phone ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Lead
	if err := q.Preload("Course").Order("lead_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "leads", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *LeadController) find(c *fiber.Ctx) (*model.Lead, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var l model.Lead
	if err := ctl.DB.WithContext(c.UserContext()).Preload("Course").First(&l, "lead_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (ctl *LeadController) Get(c *fiber.Ctx) error {
	l, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "lead", l)
}

func (ctl *LeadController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	l, err := ctl.Booking.CreateLead(c.UserContext(), sess, req.ToModel())
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonCreated(c, "lead created", l)
}

// PATCH /api/leads/:id edits contact details of an active lead.
func (ctl *LeadController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	l, err := ctl.Booking.UpdateLead(c.UserContext(), id, req.Apply)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "lead updated", l)
}

// POST /api/leads/:id/call
func (ctl *LeadController) Call(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	l, err := ctl.Booking.CallLead(c.UserContext(), id)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "lead marked as called", l)
}

// POST /api/leads/:id/cancel
func (ctl *LeadController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	l, err := ctl.Booking.CancelLead(c.UserContext(), id)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "lead canceled", l)
}

// POST /api/leads/:id/confirm  {program_id, note?}
func (ctl *LeadController) Confirm(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ConfirmLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	w, err := ctl.Booking.ConfirmLead(c.UserContext(), sess, id, req.ProgramID, req.Note)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonCreated(c, "lead moved to the whitelist", w)
}
