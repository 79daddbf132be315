package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	ExpenseID uuid.UUID `json:"expense_id" gorm:"column:expense_id;type:uuid;primaryKey"`

	ExpenseTitle  string          `json:"expense_title" gorm:"column:expense_title;type:varchar(200);not null"`
	ExpenseAmount decimal.Decimal `json:"expense_amount" gorm:"column:expense_amount;type:numeric(12,2);not null"`
	ExpenseNote   *string         `json:"expense_note,omitempty" gorm:"column:expense_note;type:text"`

	ExpenseProgramID     *uuid.UUID `json:"expense_program_id,omitempty" gorm:"column:expense_program_id;type:uuid;index"`
	ExpenseInstitutionID uuid.UUID  `json:"expense_institution_id" gorm:"column:expense_institution_id;type:uuid;not null;index"`
	ExpenseEmployeeID    uuid.UUID  `json:"expense_employee_id" gorm:"column:expense_employee_id;type:uuid;not null"`

	ExpenseSpentOn time.Time `json:"expense_spent_on" gorm:"column:expense_spent_on;type:date;not null;index"`

	ExpenseCreatedAt time.Time  `json:"expense_created_at" gorm:"column:expense_created_at;type:timestamptz;not null;autoCreateTime"`
	ExpenseUpdatedAt time.Time  `json:"expense_updated_at" gorm:"column:expense_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ExpenseDeletedAt *time.Time `json:"expense_deleted_at,omitempty" gorm:"column:expense_deleted_at;type:timestamptz;index"`
}

func (Expense) TableName() string { return "expenses" }

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ExpenseID == uuid.Nil {
		e.ExpenseID = uuid.New()
	}
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("expense_deleted_at IS NULL")
}
