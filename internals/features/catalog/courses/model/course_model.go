package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Course struct {
	CourseID uuid.UUID `json:"course_id" gorm:"column:course_id;type:uuid;primaryKey"`

	CourseName          string          `json:"course_name" gorm:"column:course_name;type:varchar(150);not null"`
	CourseSlug          string          `json:"course_slug" gorm:"column:course_slug;type:varchar(160);not null;uniqueIndex:uq_courses_slug"`
	CoursePrice         decimal.Decimal `json:"course_price" gorm:"column:course_price;type:numeric(12,2);not null;default:0"`
	CourseDurationLabel *string         `json:"course_duration_label,omitempty" gorm:"column:course_duration_label;type:varchar(60)"`
	CourseDescription   *string         `json:"course_description,omitempty" gorm:"column:course_description;type:text"`

	CourseCreatedAt time.Time  `json:"course_created_at" gorm:"column:course_created_at;type:timestamptz;not null;autoCreateTime"`
	CourseUpdatedAt time.Time  `json:"course_updated_at" gorm:"column:course_updated_at;type:timestamptz;not null;autoUpdateTime"`
	CourseDeletedAt *time.Time `json:"course_deleted_at,omitempty" gorm:"column:course_deleted_at;type:timestamptz;index"`
}

func (Course) TableName() string { return "courses" }

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.CourseID == uuid.Nil {
		c.CourseID = uuid.New()
	}
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("course_deleted_at IS NULL")
}
