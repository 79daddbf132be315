package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/catalog/courses/dto"
	"trainingcenter_backend/internals/features/catalog/courses/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CourseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validator: helper.NewValidator()}
}

// GET /api/courses?q=&page=&per_page=
func (ctl *CourseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Course{}).Scopes(model.ScopeAlive)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("course_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Course
	if err := q.Order("course_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "courses", rows, helper.BuildPagination(total, paging, len(rows)))
}

func (ctl *CourseController) find(c *fiber.Ctx) (*model.Course, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.Course
	if err := ctl.DB.WithContext(c.UserContext()).Scopes(model.ScopeAlive).
		First(&m, "course_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GET /api/courses/:id
func (ctl *CourseController) Get(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "course", m)
}

// POST /api/courses
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := req.Check(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	m := req.ToModel()
	slug, err := helper.EnsureUniqueSlug(c.UserContext(), ctl.DB, "courses", "course_slug", "course_id",
		helper.Slugify(m.CourseName, 150), "")
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	m.CourseSlug = slug

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "course created", m)
}

// PATCH /api/courses/:id
func (ctl *CourseController) Patch(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Check(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	if req.Apply(m) {
		slug, err := helper.EnsureUniqueSlug(c.UserContext(), ctl.DB, "courses", "course_slug", "course_id",
			helper.Slugify(m.CourseName, 150), m.CourseID.String())
		if err != nil {
			return helper.JsonDBError(c, err)
		}
		m.CourseSlug = slug
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "course updated", m)
}

// DELETE /api/courses/:id refuses while a live program uses the course.
func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var used int64
	if err := ctl.DB.WithContext(c.UserContext()).Table("programs").
		Where("program_course_id = ? AND program_deleted_at IS NULL", m.CourseID).
		Count(&used).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if used > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "course is used by existing programs")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).
		Update("course_deleted_at", gorm.Expr("now()")).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "course deleted", fiber.Map{"course_id": m.CourseID})
}
