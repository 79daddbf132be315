package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/finance/expenses/model"
	helper "trainingcenter_backend/internals/helpers"
)

func TestCreateExpenseCheck(t *testing.T) {
	inst := uuid.New()
	prog := uuid.New()
	tests := []struct {
		name  string
		req   CreateExpenseRequest
		field string
	}{
		{"institution only", CreateExpenseRequest{Amount: decimal.NewFromInt(50), InstitutionID: &inst}, ""},
		{"program only", CreateExpenseRequest{Amount: decimal.NewFromInt(50), ProgramID: &prog}, ""},
		{"zero amount", CreateExpenseRequest{Amount: decimal.Zero, InstitutionID: &inst}, "expense_amount"},
		{"negative amount", CreateExpenseRequest{Amount: decimal.NewFromInt(-1), InstitutionID: &inst}, "expense_amount"},
		{"no owner", CreateExpenseRequest{Amount: decimal.NewFromInt(5)}, "expense_institution_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Check()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fe, ok := err.(helper.FieldErrors)
			if !ok || len(fe[tt.field]) == 0 {
				t.Fatalf("want error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestUpdateExpenseApply(t *testing.T) {
	prog := uuid.New()
	m := model.Expense{
		ExpenseTitle:     "Rent",
		ExpenseAmount:    decimal.NewFromInt(300),
		ExpenseProgramID: &prog,
		ExpenseSpentOn:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var req UpdateExpenseRequest
	if err := json.Unmarshal([]byte(`{"expense_amount":"120.456","expense_program_id":null}`), &req); err != nil {
		t.Fatal(err)
	}
	moved, err := req.Apply(&m)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !moved || m.ExpenseProgramID != nil {
		t.Fatalf("program link should be cleared, moved=%v", moved)
	}
	if !m.ExpenseAmount.Equal(decimal.RequireFromString("120.46")) {
		t.Fatalf("amount = %s", m.ExpenseAmount)
	}
	if m.ExpenseTitle != "Rent" {
		t.Fatalf("absent title must not change, got %q", m.ExpenseTitle)
	}

	var bad UpdateExpenseRequest
	if err := json.Unmarshal([]byte(`{"expense_amount":0,"expense_spent_on":"03/01/2024"}`), &bad); err != nil {
		t.Fatal(err)
	}
	_, err = bad.Apply(&m)
	fe, ok := err.(helper.FieldErrors)
	if !ok || len(fe["expense_amount"]) == 0 || len(fe["expense_spent_on"]) == 0 {
		t.Fatalf("want amount and date errors, got %v", err)
	}
}
