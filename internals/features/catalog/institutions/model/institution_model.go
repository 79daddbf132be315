package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Institution struct {
	InstitutionID uuid.UUID `json:"institution_id" gorm:"column:institution_id;type:uuid;primaryKey"`

	InstitutionName    string  `json:"institution_name" gorm:"column:institution_name;type:varchar(150);not null"`
	InstitutionAddress *string `json:"institution_address,omitempty" gorm:"column:institution_address;type:text"`
	InstitutionPhone   *string `json:"institution_phone,omitempty" gorm:"column:institution_phone;type:varchar(30)"`

	// object key in storage; the URL is what clients display
	InstitutionLogoKey *string `json:"-" gorm:"column:institution_logo_key;type:text"`
	InstitutionLogoURL *string `json:"institution_logo_url,omitempty" gorm:"column:institution_logo_url;type:text"`

	InstitutionCreatedAt time.Time  `json:"institution_created_at" gorm:"column:institution_created_at;type:timestamptz;not null;autoCreateTime"`
	InstitutionUpdatedAt time.Time  `json:"institution_updated_at" gorm:"column:institution_updated_at;type:timestamptz;not null;autoUpdateTime"`
	InstitutionDeletedAt *time.Time `json:"institution_deleted_at,omitempty" gorm:"column:institution_deleted_at;type:timestamptz;index"`
}

func (Institution) TableName() string { return "institutions" }

func (i *Institution) BeforeCreate(*gorm.DB) error {
	if i.InstitutionID == uuid.Nil {
		i.InstitutionID = uuid.New()
	}
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("institution_deleted_at IS NULL")
}
