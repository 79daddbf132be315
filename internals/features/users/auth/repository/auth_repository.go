package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "trainingcenter_backend/internals/features/users/auth/model"
	userModel "trainingcenter_backend/internals/features/users/users/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.User, error) {
	var user userModel.User
	if err := db.WithContext(ctx).
		Where("LOWER(user_email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.User, error) {
	var user userModel.User
	if err := db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleSubject(ctx context.Context, db *gorm.DB, sub string) (*userModel.User, error) {
	var user userModel.User
	if err := db.WithContext(ctx).Where("user_google_subject = ?", sub).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func LinkGoogleSubject(ctx context.Context, db *gorm.DB, userID uuid.UUID, sub string) error {
	return db.WithContext(ctx).Model(&userModel.User{}).
		Where("user_id = ?", userID).
		Update("user_google_subject", sub).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.WithContext(ctx).Model(&userModel.User{}).
		Where("user_id = ?", userID).
		Update("user_password", hash).Error
}

func TouchLastLogin(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.WithContext(ctx).Model(&userModel.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("user_last_login_at", at).Error
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(ctx context.Context, db *gorm.DB, token *authModel.RefreshToken) error {
	return db.WithContext(ctx).Create(token).Error
}

// FindActiveRefreshToken ignores revoked and expired rows.
func FindActiveRefreshToken(ctx context.Context, db *gorm.DB, hash string, now time.Time) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.WithContext(ctx).
		Where("refresh_token_hash = ? AND refresh_token_revoked_at IS NULL AND refresh_token_expires_at > ?", hash, now).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func RevokeRefreshToken(ctx context.Context, db *gorm.DB, hash string, now time.Time) error {
	return db.WithContext(ctx).Model(&authModel.RefreshToken{}).
		Where("refresh_token_hash = ? AND refresh_token_revoked_at IS NULL", hash).
		Update("refresh_token_revoked_at", now).Error
}

func RevokeAllRefreshTokens(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time) error {
	return db.WithContext(ctx).Model(&authModel.RefreshToken{}).
		Where("refresh_token_user_id = ? AND refresh_token_revoked_at IS NULL", userID).
		Update("refresh_token_revoked_at", now).Error
}

/* ====================== BLACKLIST ====================== */

func BlacklistToken(ctx context.Context, db *gorm.DB, hash string, expiresAt time.Time) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_blacklist_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_blacklist_expired_at"}),
	}).Create(&authModel.TokenBlacklist{
		TokenBlacklistHash:      hash,
		TokenBlacklistExpiredAt: expiresAt,
	}).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, hash string, now time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token_blacklist_hash = ? AND token_blacklist_expired_at > ?", hash, now).
		Count(&n).Error
	return n > 0, err
}

// CleanupExpired purges blacklist rows past expiry and refresh tokens expired or revoked before now.
func CleanupExpired(ctx context.Context, db *gorm.DB, now time.Time) (blacklisted, refresh int64, err error) {
	res := db.WithContext(ctx).Where("token_blacklist_expired_at <= ?", now).Delete(&authModel.TokenBlacklist{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	blacklisted = res.RowsAffected

	res = db.WithContext(ctx).
		Where("refresh_token_expires_at <= ? OR refresh_token_revoked_at <= ?", now, now.Add(-24*time.Hour)).
		Delete(&authModel.RefreshToken{})
	if res.Error != nil {
		return blacklisted, 0, res.Error
	}
	return blacklisted, res.RowsAffected, nil
}
