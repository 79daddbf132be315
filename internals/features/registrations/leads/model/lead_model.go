package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadCalled    LeadStatus = "called"
	LeadCanceled  LeadStatus = "canceled"
	LeadConverted LeadStatus = "converted"
)

// ActiveLeadStatuses are the ones shown in the working list.
var ActiveLeadStatuses = []LeadStatus{LeadNew, LeadCalled}

type Lead struct {
	LeadID uuid.UUID `json:"lead_id" gorm:"column:lead_id;type:uuid;primaryKey"`

	LeadFullName string     `json:"lead_full_name" gorm:"column:lead_full_name;type:varchar(150);not null"`
	LeadPhone    string     `json:"lead_phone" gorm:"column:lead_phone;type:varchar(30);not null"`
	LeadCourseID uuid.UUID  `json:"lead_course_id" gorm:"column:lead_course_id;type:uuid;not null;index"`
	LeadWilaya   *string    `json:"lead_wilaya,omitempty" gorm:"column:lead_wilaya;type:varchar(60)"`
	LeadNote     *string    `json:"lead_note,omitempty" gorm:"column:lead_note;type:text"`
	LeadStatus   LeadStatus `json:"lead_status" gorm:"column:lead_status;type:varchar(20);not null;default:'new';index"`

	LeadEmployeeID  uuid.UUID  `json:"lead_employee_id" gorm:"column:lead_employee_id;type:uuid;not null"`
	LeadWhitelistID *uuid.UUID `json:"lead_whitelist_id,omitempty" gorm:"column:lead_whitelist_id;type:uuid"`

	LeadCalledAt    *time.Time `json:"lead_called_at,omitempty" gorm:"column:lead_called_at;type:timestamptz"`
	LeadCanceledAt  *time.Time `json:"lead_canceled_at,omitempty" gorm:"column:lead_canceled_at;type:timestamptz"`
	LeadConvertedAt *time.Time `json:"lead_converted_at,omitempty" gorm:"column:lead_converted_at;type:timestamptz"`

	LeadCreatedAt time.Time `json:"lead_created_at" gorm:"column:lead_created_at;type:timestamptz;not null;autoCreateTime"`
	LeadUpdatedAt time.Time `json:"lead_updated_at" gorm:"column:lead_updated_at;type:timestamptz;not null;autoUpdateTime"`

	Course *courseModel.Course `json:"course,omitempty" gorm:"foreignKey:LeadCourseID;references:CourseID"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(*gorm.DB) error {
	if l.LeadID == uuid.Nil {
		l.LeadID = uuid.New()
	}
	return nil
}

// Editable: only leads still in the working list accept contact edits.
func (l *Lead) Editable() bool {
	return l.LeadStatus == LeadNew || l.LeadStatus == LeadCalled
}

// CanTransition reports whether an action moves the lead out of its current status.
func (l *Lead) CanTransition(to LeadStatus) bool {
	switch to {
	case LeadCalled:
		return l.LeadStatus == LeadNew
	case LeadCanceled, LeadConverted:
		return l.LeadStatus == LeadNew || l.LeadStatus == LeadCalled
	}
	return false
}
