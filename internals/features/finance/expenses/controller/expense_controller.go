package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/features/finance/expenses/dto"
	"trainingcenter_backend/internals/features/finance/expenses/model"
	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

type ExpenseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db, Validator: helper.NewValidator()}
}

// GET /api/expenses?institution_id=&program_id=&year=&month=
func (ctl *ExpenseController) List(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.Expense{}).
		Scopes(model.ScopeAlive, sess.ScopeColumn("expense_institution_id"))
	for param, column := range map[string]string{
		"institution_id": "expense_institution_id",
		"program_id":     "expense_program_id",
	} {
		id, err := helper.ParseUUIDQuery(c, param)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if id != nil {
			q = q.Where(column+" = ?", *id)
		}
	}
	if c.Query("year") != "" || c.Query("month") != "" {
		year, err := helper.QueryYear(c)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		q = q.Where("EXTRACT(YEAR FROM expense_spent_on) = ?", year)
		month, err := helper.QueryMonth(c)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		if month > 0 {
			q = q.Where("EXTRACT(MONTH FROM expense_spent_on) = ?", month)
		}
	}

	var agg struct {
		N   int64
		Sum decimal.Decimal
	}
	if err := q.Session(&gorm.Session{}).
		Select("COUNT(*) AS n, COALESCE(SUM(expense_amount), 0) AS sum").
		Scan(&agg).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	var rows []model.Expense
	if err := q.Order("expense_spent_on DESC, expense_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, "expenses",
		dto.ExpenseListResponse{Items: rows, Total: agg.Sum.Round(2)},
		helper.BuildPagination(agg.N, paging, len(rows)))
}

// resolveInstitution takes the institution from the linked program.
func (ctl *ExpenseController) resolveInstitution(c *fiber.Ctx, sess *helperAuth.Session, m *model.Expense) error {
	if m.ExpenseProgramID != nil {
		var p programModel.Program
		err := ctl.DB.WithContext(c.UserContext()).Scopes(programModel.ScopeAlive).
			Select("program_id", "program_institution_id").
			First(&p, "program_id = ?", *m.ExpenseProgramID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FieldErrors{"expense_program_id": {"program not found"}}
		}
		if err != nil {
			return err
		}
		m.ExpenseInstitutionID = p.ProgramInstitutionID
	}
	if m.ExpenseInstitutionID == uuid.Nil {
		return helper.FieldErrors{"expense_institution_id": {"required when no program is given"}}
	}
	if !sess.CanAccessInstitution(m.ExpenseInstitutionID) {
		return fiber.NewError(fiber.StatusForbidden, "cannot record expenses for another institution")
	}
	return nil
}

func (ctl *ExpenseController) find(c *fiber.Ctx, sess *helperAuth.Session) (*model.Expense, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.Expense
	if err := ctl.DB.WithContext(c.UserContext()).Scopes(model.ScopeAlive).
		First(&m, "expense_id = ?", id).Error; err != nil {
		return nil, err
	}
	if !sess.CanAccessInstitution(m.ExpenseInstitutionID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "expense belongs to another institution")
	}
	return &m, nil
}

func (ctl *ExpenseController) Get(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, sess)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "expense", m)
}

func (ctl *ExpenseController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	if err := req.Check(); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.resolveInstitution(c, sess, &m); err != nil {
		return helper.JsonFromError(c, err)
	}
	m.ExpenseEmployeeID = sess.UserID
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "expense recorded", m)
}

func (ctl *ExpenseController) Patch(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, sess)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	moved, err := req.Apply(m)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if moved && m.ExpenseProgramID != nil {
		if err := ctl.resolveInstitution(c, sess, m); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "expense updated", m)
}

func (ctl *ExpenseController) Delete(c *fiber.Ctx) error {
	sess, err := helperAuth.SessionFrom(c)
	if err != nil {
		return err
	}
	m, err := ctl.find(c, sess)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.Expense{}).
		Where("expense_id = ?", m.ExpenseID).
		Update("expense_deleted_at", gorm.Expr("now()")).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "expense deleted", fiber.Map{"expense_id": m.ExpenseID})
}
