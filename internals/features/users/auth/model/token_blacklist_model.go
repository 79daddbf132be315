package model

import "time"

type TokenBlacklist struct {
	TokenBlacklistHash      string    `json:"-" gorm:"column:token_blacklist_hash;type:varchar(64);primaryKey"`
	TokenBlacklistExpiredAt time.Time `json:"token_blacklist_expired_at" gorm:"column:token_blacklist_expired_at;type:timestamptz;not null;index"`
	TokenBlacklistCreatedAt time.Time `json:"token_blacklist_created_at" gorm:"column:token_blacklist_created_at;type:timestamptz;autoCreateTime"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }
