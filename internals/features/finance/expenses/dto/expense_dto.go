package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/finance/expenses/model"
	helper "trainingcenter_backend/internals/helpers"
)

const DateLayout = "2006-01-02"

type CreateExpenseRequest struct {
	Title         string          `json:"expense_title" validate:"required,min=2,max=200"`
	Amount        decimal.Decimal `json:"expense_amount"`
	ProgramID     *uuid.UUID      `json:"expense_program_id"`
	InstitutionID *uuid.UUID      `json:"expense_institution_id"`
	SpentOn       string          `json:"expense_spent_on" validate:"required,datetime=2006-01-02"`
	Note          *string         `json:"expense_note"`
}

func (r *CreateExpenseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Note != nil {
		if v := strings.TrimSpace(*r.Note); v == "" {
			r.Note = nil
		} else {
			r.Note = &v
		}
	}
}

// Check needs an institution, given directly or through the program.
func (r CreateExpenseRequest) Check() error {
	fe := helper.FieldErrors{}
	if !r.Amount.IsPositive() {
		fe.Add("expense_amount", "must be greater than 0")
	}
	if r.ProgramID == nil && r.InstitutionID == nil {
		fe.Add("expense_institution_id", "required when no program is given")
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

// ToModel leaves ExpenseInstitutionID unset when only a program is given.
func (r CreateExpenseRequest) ToModel() (model.Expense, error) {
	day, err := time.Parse(DateLayout, r.SpentOn)
	if err != nil {
		return model.Expense{}, helper.FieldErrors{"expense_spent_on": {"must be a date (YYYY-MM-DD)"}}
	}
	m := model.Expense{
		ExpenseTitle:     r.Title,
		ExpenseAmount:    r.Amount.Round(2),
		ExpenseProgramID: r.ProgramID,
		ExpenseSpentOn:   day,
		ExpenseNote:      r.Note,
	}
	if r.InstitutionID != nil {
		m.ExpenseInstitutionID = *r.InstitutionID
	}
	return m, nil
}

type UpdateExpenseRequest struct {
	Title     helper.PatchField[string]          `json:"expense_title"`
	Amount    helper.PatchField[decimal.Decimal] `json:"expense_amount"`
	ProgramID helper.PatchField[uuid.UUID]       `json:"expense_program_id"`
	SpentOn   helper.PatchField[string]          `json:"expense_spent_on"`
	Note      helper.PatchField[string]          `json:"expense_note"`
}

// Apply reports whether the program link changed.
func (r UpdateExpenseRequest) Apply(m *model.Expense) (bool, error) {
	fe := helper.FieldErrors{}
	if r.Title.Present {
		if r.Title.Value == nil || len(strings.TrimSpace(*r.Title.Value)) < 2 {
			fe.Add("expense_title", "must be at least 2")
		} else {
			m.ExpenseTitle = strings.TrimSpace(*r.Title.Value)
		}
	}
	if r.Amount.Present {
		if r.Amount.Value == nil || !r.Amount.Value.IsPositive() {
			fe.Add("expense_amount", "must be greater than 0")
		} else {
			m.ExpenseAmount = r.Amount.Value.Round(2)
		}
	}
	if r.SpentOn.Present {
		day, err := time.Parse(DateLayout, deref(r.SpentOn.Value))
		if err != nil {
			fe.Add("expense_spent_on", "must be a date (YYYY-MM-DD)")
		} else {
			m.ExpenseSpentOn = day
		}
	}
	if r.Note.Present {
		m.ExpenseNote = nil
		if v := strings.TrimSpace(deref(r.Note.Value)); v != "" {
			m.ExpenseNote = &v
		}
	}
	moved := false
	if r.ProgramID.Present {
		prev := m.ExpenseProgramID
		m.ExpenseProgramID = r.ProgramID.Value
		moved = (prev == nil) != (m.ExpenseProgramID == nil) ||
			(prev != nil && *prev != *m.ExpenseProgramID)
	}
	if !fe.Empty() {
		return false, fe
	}
	return moved, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

type ExpenseListResponse struct {
	Items []model.Expense `json:"items"`
	Total decimal.Decimal `json:"total_amount"`
}
