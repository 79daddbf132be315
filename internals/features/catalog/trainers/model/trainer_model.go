package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trainer struct {
	TrainerID        uuid.UUID  `json:"trainer_id" gorm:"column:trainer_id;type:uuid;primaryKey"`
	TrainerFullName  string     `json:"trainer_full_name" gorm:"column:trainer_full_name;type:varchar(150);not null"`
	TrainerEmail     *string    `json:"trainer_email,omitempty" gorm:"column:trainer_email;type:varchar(150)"`
	TrainerPhone     *string    `json:"trainer_phone,omitempty" gorm:"column:trainer_phone;type:varchar(30)"`
	TrainerCreatedAt time.Time  `json:"trainer_created_at" gorm:"column:trainer_created_at;type:timestamptz;not null;autoCreateTime"`
	TrainerUpdatedAt time.Time  `json:"trainer_updated_at" gorm:"column:trainer_updated_at;type:timestamptz;not null;autoUpdateTime"`
	TrainerDeletedAt *time.Time `json:"trainer_deleted_at,omitempty" gorm:"column:trainer_deleted_at;type:timestamptz;index"`
}

func (Trainer) TableName() string { return "trainers" }

func (t *Trainer) BeforeCreate(*gorm.DB) error {
	if t.TrainerID == uuid.Nil {
		t.TrainerID = uuid.New()
	}
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("trainer_deleted_at IS NULL")
}
