package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	trainerModel "trainingcenter_backend/internals/features/catalog/trainers/model"
)

type ProgramStatus string

const (
	ProgramUpcoming   ProgramStatus = "upcoming"
	ProgramInProgress ProgramStatus = "in_progress"
	ProgramCompleted  ProgramStatus = "completed"
)

type Program struct {
	ProgramID uuid.UUID `json:"program_id" gorm:"column:program_id;type:uuid;primaryKey"`

	ProgramCourseID      uuid.UUID `json:"program_course_id" gorm:"column:program_course_id;type:uuid;not null;index"`
	ProgramInstitutionID uuid.UUID `json:"program_institution_id" gorm:"column:program_institution_id;type:uuid;not null;index"`
	ProgramTrainerID     uuid.UUID `json:"program_trainer_id" gorm:"column:program_trainer_id;type:uuid;not null;index"`

	ProgramStartDate time.Time `json:"program_start_date" gorm:"column:program_start_date;type:date;not null"`
	ProgramEndDate   time.Time `json:"program_end_date" gorm:"column:program_end_date;type:date;not null"`

	ProgramCreatedAt time.Time  `json:"program_created_at" gorm:"column:program_created_at;type:timestamptz;not null;autoCreateTime"`
	ProgramUpdatedAt time.Time  `json:"program_updated_at" gorm:"column:program_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ProgramDeletedAt *time.Time `json:"program_deleted_at,omitempty" gorm:"column:program_deleted_at;type:timestamptz;index"`

	Course      *courseModel.Course           `json:"course,omitempty" gorm:"foreignKey:ProgramCourseID;references:CourseID"`
	Institution *institutionModel.Institution `json:"institution,omitempty" gorm:"foreignKey:ProgramInstitutionID;references:InstitutionID"`
	Trainer     *trainerModel.Trainer         `json:"trainer,omitempty" gorm:"foreignKey:ProgramTrainerID;references:TrainerID"`
}

func (Program) TableName() string { return "programs" }

func (p *Program) BeforeCreate(*gorm.DB) error {
	if p.ProgramID == uuid.Nil {
		p.ProgramID = uuid.New()
	}
	return nil
}

// StatusAt compares calendar days: the end date counts as in progress.
func (p *Program) StatusAt(now time.Time) ProgramStatus {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := dateOnly(p.ProgramStartDate)
	end := dateOnly(p.ProgramEndDate)
	switch {
	case day.Before(start):
		return ProgramUpcoming
	case day.After(end):
		return ProgramCompleted
	default:
		return ProgramInProgress
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("program_deleted_at IS NULL")
}

// WithRefs preloads course, institution and trainer.
func WithRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Course").Preload("Institution").Preload("Trainer")
}
