package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
)

type User struct {
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`

	UserFullName   string         `json:"user_full_name" gorm:"column:user_full_name;type:varchar(150);not null"`
	UserEmail      string         `json:"user_email" gorm:"column:user_email;type:varchar(150);not null;uniqueIndex:uq_users_email"`
	UserPassword   string         `json:"-" gorm:"column:user_password;type:text"`
	UserPhone      *string        `json:"user_phone,omitempty" gorm:"column:user_phone;type:varchar(30)"`
	UserNationalID *string        `json:"user_national_id,omitempty" gorm:"column:user_national_id;type:varchar(40)"`
	UserRole       constants.Role `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'member'"`

	// institutions a manager or employee works for
	UserInstitutionIDs pq.StringArray `json:"user_institution_ids" gorm:"column:user_institution_ids;type:text[];not null;default:'{}'"`

	UserGoogleSubject *string `json:"-" gorm:"column:user_google_subject;type:varchar(64);uniqueIndex:uq_users_google_subject"`
	UserIsActive      bool    `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserLastLoginAt *time.Time `json:"user_last_login_at,omitempty" gorm:"column:user_last_login_at;type:timestamptz"`
	UserCreatedAt   time.Time  `json:"user_created_at" gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime"`
	UserUpdatedAt   time.Time  `json:"user_updated_at" gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
