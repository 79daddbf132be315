package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshToken struct {
	RefreshTokenID     uuid.UUID `json:"refresh_token_id" gorm:"column:refresh_token_id;type:uuid;primaryKey"`
	RefreshTokenUserID uuid.UUID `json:"refresh_token_user_id" gorm:"column:refresh_token_user_id;type:uuid;not null;index"`

	// HMAC of the token, never the token itself
	RefreshTokenHash string `json:"-" gorm:"column:refresh_token_hash;type:varchar(64);not null;uniqueIndex:uq_refresh_tokens_hash"`

	RefreshTokenExpiresAt time.Time  `json:"refresh_token_expires_at" gorm:"column:refresh_token_expires_at;type:timestamptz;not null;index"`
	RefreshTokenRevokedAt *time.Time `json:"refresh_token_revoked_at,omitempty" gorm:"column:refresh_token_revoked_at;type:timestamptz"`

	RefreshTokenUserAgent *string `json:"refresh_token_user_agent,omitempty" gorm:"column:refresh_token_user_agent;type:text"`
	RefreshTokenIP        *string `json:"refresh_token_ip,omitempty" gorm:"column:refresh_token_ip;type:varchar(64)"`

	RefreshTokenCreatedAt time.Time `json:"refresh_token_created_at" gorm:"column:refresh_token_created_at;type:timestamptz;autoCreateTime"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (r *RefreshToken) BeforeCreate(*gorm.DB) error {
	if r.RefreshTokenID == uuid.Nil {
		r.RefreshTokenID = uuid.New()
	}
	return nil
}
