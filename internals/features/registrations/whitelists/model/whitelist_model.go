package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
)

type WhitelistStatus string

const (
	WhitelistNew       WhitelistStatus = "new"
	WhitelistCanceled  WhitelistStatus = "canceled"
	WhitelistConfirmed WhitelistStatus = "confirmed"
)

type Whitelist struct {
	WhitelistID uuid.UUID `json:"whitelist_id" gorm:"column:whitelist_id;type:uuid;primaryKey"`

	WhitelistFullName  string          `json:"whitelist_full_name" gorm:"column:whitelist_full_name;type:varchar(150);not null"`
	WhitelistPhone     string          `json:"whitelist_phone" gorm:"column:whitelist_phone;type:varchar(30);not null"`
	WhitelistProgramID uuid.UUID       `json:"whitelist_program_id" gorm:"column:whitelist_program_id;type:uuid;not null;index"`
	WhitelistNote      *string         `json:"whitelist_note,omitempty" gorm:"column:whitelist_note;type:text"`
	WhitelistStatus    WhitelistStatus `json:"whitelist_status" gorm:"column:whitelist_status;type:varchar(20);not null;default:'new';index"`

	WhitelistEmployeeID uuid.UUID  `json:"whitelist_employee_id" gorm:"column:whitelist_employee_id;type:uuid;not null"`
	WhitelistLeadID     *uuid.UUID `json:"whitelist_lead_id,omitempty" gorm:"column:whitelist_lead_id;type:uuid"`
	WhitelistTraineeID  *uuid.UUID `json:"whitelist_trainee_id,omitempty" gorm:"column:whitelist_trainee_id;type:uuid"`

	WhitelistCanceledAt  *time.Time `json:"whitelist_canceled_at,omitempty" gorm:"column:whitelist_canceled_at;type:timestamptz"`
	WhitelistConfirmedAt *time.Time `json:"whitelist_confirmed_at,omitempty" gorm:"column:whitelist_confirmed_at;type:timestamptz"`

	WhitelistCreatedAt time.Time `json:"whitelist_created_at" gorm:"column:whitelist_created_at;type:timestamptz;not null;autoCreateTime"`
	WhitelistUpdatedAt time.Time `json:"whitelist_updated_at" gorm:"column:whitelist_updated_at;type:timestamptz;not null;autoUpdateTime"`

	Program *programModel.Program `json:"program,omitempty" gorm:"foreignKey:WhitelistProgramID;references:ProgramID"`
}

func (Whitelist) TableName() string { return "whitelists" }

func (w *Whitelist) BeforeCreate(*gorm.DB) error {
	if w.WhitelistID == uuid.Nil {
		w.WhitelistID = uuid.New()
	}
	return nil
}

func (w *Whitelist) CanTransition(to WhitelistStatus) bool {
	return w.WhitelistStatus == WhitelistNew && (to == WhitelistCanceled || to == WhitelistConfirmed)
}
