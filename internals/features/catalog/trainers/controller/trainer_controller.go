package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/catalog/trainers/dto"
	"trainingcenter_backend/internals/features/catalog/trainers/model"
	helper "trainingcenter_backend/internals/helpers"
)

type TrainerController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTrainerController(db *gorm.DB) *TrainerController {
	return &TrainerController{DB: db, Validator: helper.NewValidator()}
}

func (ctl *TrainerController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Trainer{}).Scopes(model.ScopeAlive)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("trainer_full_name ILIKE ? OR trainer_email ILIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Trainer
	if err := q.Order("trainer_full_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "trainers", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *TrainerController) find(c *fiber.Ctx) (*model.Trainer, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.Trainer
	if err := ctl.DB.WithContext(c.UserContext()).Scopes(model.ScopeAlive).
		First(&m, "trainer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (ctl *TrainerController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "trainer", m)
}

func (ctl *TrainerController) Create(c *fiber.Ctx) error {
	var req dto.CreateTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "trainer created", m)
}

func (ctl *TrainerController) Patch(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	merged := req.ToCreate(*m)
	if err := ctl.Validator.Struct(&merged); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m.TrainerFullName, m.TrainerEmail, m.TrainerPhone = merged.FullName, merged.Email, merged.Phone
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "trainer updated", m)
}

func (ctl *TrainerController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var used int64
	if err := ctl.DB.WithContext(c.UserContext()).Table("programs").
		Where("program_trainer_id = ? AND program_deleted_at IS NULL", m.TrainerID).
		Count(&used).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if used > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "trainer is assigned to programs")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).
		Update("trainer_deleted_at", gorm.Expr("now()")).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "trainer deleted", fiber.Map{"trainer_id": m.TrainerID})
}
