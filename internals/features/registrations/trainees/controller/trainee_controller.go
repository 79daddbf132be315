package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/pricing"
	"trainingcenter_backend/internals/features/registrations/trainees/dto"
	"trainingcenter_backend/internals/features/registrations/trainees/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type TraineeController struct {
	DB        *gorm.DB
	Booking   *booking.Service
	Validator *validator.Validate
}

func NewTraineeController(db *gorm.DB, svc *booking.Service) *TraineeController {
	return &TraineeController{DB: db, Booking: svc, Validator: helper.NewValidator()}
}

func preloadProgram(db *gorm.DB) *gorm.DB {
	return db.Preload("Program").
		Preload("Program.Course").
		Preload("Program.Institution").
		Preload("Program.Trainer")
}

// GET /api/trainees?program_id=&institution_id=&employee_id=&q=&unpaid=&archived=
func (ctl *TraineeController) List(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Trainee{}).
		Joins("JOIN programs ON programs.program_id = trainees.trainee_program_id").
		Scopes(sess.ScopeColumn("programs.program_institution_id"))

	archived, _ := strconv.ParseBool(c.Query("archived", "false"))
	if archived {
		q = q.Where("trainees.trainee_archived_at IS NOT NULL")
	} else {
		q = q.Where("trainees.trainee_archived_at IS NULL")
	}

	for param, column := range map[string]string{
		"program_id":     "trainees.trainee_program_id",
		"institution_id": "programs.program_institution_id",
		"employee_id":    "trainees.trainee_employee_id",
		"course_id":      "programs.program_course_id",
	} {
		id, err := helper.ParseUUIDQuery(c, param)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if id != nil {
			q = q.Where(column+" = ?", *id)
		}
	}
	if unpaid, _ := strconv.ParseBool(c.Query("unpaid", "false")); unpaid {
		q = q.Where("trainees.trainee_rest > 0")
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("trainees.trainee_full_name ILIKE ? OR trainees.trainee_phone ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Trainee
	if err := q.Scopes(preloadProgram).Select("trainees.*").
		Order("trainees.trainee_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "trainees", rows, helper.BuildPagination(total, paging, len(rows)))
}

// GET /api/trainees/:id
func (ctl *TraineeController) Get(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var t model.Trainee
	if err := ctl.DB.WithContext(c.UserContext()).Scopes(preloadProgram).
		First(&t, "trainee_id = ?", id).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if t.Program != nil && !sess.CanAccessInstitution(t.Program.ProgramInstitutionID) {
		return helper.JsonError(c, fiber.StatusForbidden, "trainee belongs to another institution")
	}
	return helper.JsonOK(c, "trainee", t)
}

// POST /api/trainees
func (ctl *TraineeController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	t, err := ctl.Booking.RegisterTrainee(c.UserContext(), sess, req.ToRegistration())
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonCreated(c, "trainee registered", t)
}

// PATCH /api/trainees/:id
func (ctl *TraineeController) Patch(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateTraineeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Check(); err != nil {
		return helper.JsonFromError(c, err)
	}
	t, err := ctl.Booking.UpdateTrainee(c.UserContext(), sess, id, req.Apply)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "trainee updated", t)
}

// POST /api/trainees/:id/confirm-second-tranche
func (ctl *TraineeController) ConfirmSecondTranche(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ConfirmSecondTrancheRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	t, err := ctl.Booking.ConfirmSecondTranche(c.UserContext(), sess, id, req.Method)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "second tranche confirmed", t)
}

// DELETE /api/trainees/:id archives the trainee.
func (ctl *TraineeController) Archive(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t, err := ctl.Booking.ArchiveTrainee(c.UserContext(), sess, id)
	if err != nil {
		return booking.WriteError(c, err)
	}
	return helper.JsonDeleted(c, "trainee archived", t)
}

// POST /api/trainees/quote previews totals; validation problems are reported, not rejected.
func (ctl *TraineeController) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	in := pricing.Input{
		Discount:       req.Discount,
		InitialTranche: req.InitialTranche,
		SecondTranche:  req.SecondTranche,
	}
	if req.ProgramID != nil {
		var p programModel.Program
		err := ctl.DB.WithContext(c.UserContext()).Scopes(programModel.ScopeAlive).Preload("Course").
			First(&p, "program_id = ?", *req.ProgramID).Error
		if err != nil {
			return helper.JsonDBError(c, err)
		}
		price := decimal.Zero
		if p.Course != nil {
			price = p.Course.CoursePrice
		}
		in.CoursePrice = &price
	}
	return helper.JsonOK(c, "quote", dto.QuoteResponse{
		Quote:  pricing.Compute(in),
		Errors: helper.ValidationErrors(pricing.Validate(in)),
	})
}
