package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/catalog/institutions/dto"
	"trainingcenter_backend/internals/features/catalog/institutions/model"
	helper "trainingcenter_backend/internals/helpers"
	helperOSS "trainingcenter_backend/internals/helpers/oss"
)

type InstitutionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage // nil when object storage is not configured
}

func NewInstitutionController(db *gorm.DB, storage helperOSS.Storage) *InstitutionController {
	return &InstitutionController{DB: db, Validator: helper.NewValidator(), Storage: storage}
}

// GET /api/institutions?q=
func (ctl *InstitutionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Institution{}).Scopes(model.ScopeAlive)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("institution_name ILIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Institution
	if err := q.Order("institution_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "institutions", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *InstitutionController) find(c *fiber.Ctx) (*model.Institution, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.Institution
	if err := ctl.DB.WithContext(c.UserContext()).Scopes(model.ScopeAlive).
		First(&m, "institution_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (ctl *InstitutionController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "institution", m)
}

func (ctl *InstitutionController) Create(c *fiber.Ctx) error {
	var req dto.CreateInstitutionRequest
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
	return helper.JsonCreated(c, "institution created", m)
}

func (ctl *InstitutionController) Patch(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Check(); err != nil {
		return helper.JsonFromError(c, err)
	}
	req.Apply(m)
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "institution updated", m)
}

func (ctl *InstitutionController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var used int64
	if err := ctl.DB.WithContext(c.UserContext()).Table("programs").
		Where("program_institution_id = ? AND program_deleted_at IS NULL", m.InstitutionID).
		Count(&used).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if used > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "institution has programs")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).
		Update("institution_deleted_at", gorm.Expr("now()")).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "institution deleted", fiber.Map{"institution_id": m.InstitutionID})
}
