package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/documents/report"
	"trainingcenter_backend/internals/features/programs/programs/dto"
	"trainingcenter_backend/internals/features/programs/programs/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type ProgramController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Now       func() time.Time
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db, Validator: helper.NewValidator(), Now: time.Now}
}

// ScopeStatus filters on the derived status using the database's current date.
func ScopeStatus(status model.ProgramStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case model.ProgramUpcoming:
			return db.Where("program_start_date > CURRENT_DATE")
		case model.ProgramCompleted:
			return db.Where("program_end_date < CURRENT_DATE")
		case model.ProgramInProgress:
			return db.Where("program_start_date <= CURRENT_DATE AND program_end_date >= CURRENT_DATE")
		}
		return db
	}
}

// GET /api/programs?course_id=&institution_id=&trainer_id=&status=
func (ctl *ProgramController) List(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Program{}).
		Scopes(model.ScopeAlive, sess.ScopeColumn("program_institution_id"))
	for param, column := range map[string]string{
		"course_id":      "program_course_id",
		"institution_id": "program_institution_id",
		"trainer_id":     "program_trainer_id",
	} {
		id, err := helper.ParseUUIDQuery(c, param)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if id != nil {
			q = q.Where(column+" = ?", *id)
		}
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := model.ProgramStatus(s)
		if st != model.ProgramUpcoming && st != model.ProgramInProgress && st != model.ProgramCompleted {
			return helper.JsonValidationError(c, map[string][]string{"status": {"must be one of: upcoming in_progress completed"}})
		}
		q = q.Scopes(ScopeStatus(st))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Program
	if err := q.Scopes(model.WithRefs).Order("program_start_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "programs", dto.FromModels(rows, ctl.Now()), helper.BuildPagination(total, paging, len(rows)))
}

// find loads a live program the caller is allowed to see.
func (ctl *ProgramController) find(c *fiber.Ctx) (*model.Program, error) {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return nil, err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	p, err := report.LoadProgram(c.UserContext(), ctl.DB, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanAccessInstitution(p.ProgramInstitutionID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "program belongs to another institution")
	}
	return p, nil
}

func (ctl *ProgramController) Get(c *fiber.Ctx) error {
	p, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "program", dto.FromModel(*p, ctl.Now()))
}

func (ctl *ProgramController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if !sess.CanAccessInstitution(m.ProgramInstitutionID) {
		return helper.JsonError(c, fiber.StatusForbidden, "cannot create programs for another institution")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Omit("Course", "Institution", "Trainer").Create(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "program created", dto.FromModel(m, ctl.Now()))
}

func (ctl *ProgramController) Patch(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	p, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := req.Apply(p); err != nil {
		return helper.JsonFromError(c, err)
	}
	if !sess.CanAccessInstitution(p.ProgramInstitutionID) {
		return helper.JsonError(c, fiber.StatusForbidden, "cannot move a program to another institution")
	}
	p.Course, p.Institution, p.Trainer = nil, nil, nil
	if err := ctl.DB.WithContext(c.UserContext()).Omit("Course", "Institution", "Trainer").Save(p).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	fresh, err := report.LoadProgram(c.UserContext(), ctl.DB, p.ProgramID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "program updated", dto.FromModel(*fresh, ctl.Now()))
}

// DELETE /api/programs/:id refuses while active trainees remain.
func (ctl *ProgramController) Delete(c *fiber.Ctx) error {
	p, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var n int64
	if err := ctl.DB.WithContext(c.UserContext()).Table("trainees").
		Where("trainee_program_id = ? AND trainee_archived_at IS NULL", p.ProgramID).
		Count(&n).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "program still has active trainees")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.Program{}).
		Where("program_id = ?", p.ProgramID).
		Update("program_deleted_at", gorm.Expr("now()")).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "program deleted", fiber.Map{"program_id": p.ProgramID})
}

// GET /api/programs/:id/report
func (ctl *ProgramController) Report(c *fiber.Ctx) error {
	p, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	r, err := report.Load(c.UserContext(), ctl.DB, p, ctl.Now())
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "program report", r)
}
