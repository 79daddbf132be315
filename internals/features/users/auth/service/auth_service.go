package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
	authModel "trainingcenter_backend/internals/features/users/auth/model"
	authRepo "trainingcenter_backend/internals/features/users/auth/repository"
	userModel "trainingcenter_backend/internals/features/users/users/model"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("account is disabled")
	ErrGoogleDisabled     = errors.New("google login is not configured")
	ErrGoogleUnknownUser  = errors.New("no account is registered for this google email")
	ErrRefreshInvalid     = errors.New("refresh token invalid or expired")
	ErrMissingSecret      = errors.New("jwt secrets are not configured")
)

type ClientMeta struct {
	UserAgent string
	IP        string
}

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"-"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type LoginResult struct {
	Tokens TokenPair       `json:"tokens"`
	User   *userModel.User `json:"user"`
}

type AuthService struct {
	DB             *gorm.DB
	AccessSecret   string
	RefreshSecret  string
	GoogleClientID string
	Now            func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:             db,
		AccessSecret:   configs.JWTSecret,
		RefreshSecret:  configs.JWTRefreshSecret,
		GoogleClientID: configs.GoogleClientID,
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// SessionForUser is the token payload for a stored user.
func SessionForUser(u *userModel.User) helperAuth.Session {
	return helperAuth.Session{
		UserID:         u.UserID,
		FullName:       u.UserFullName,
		Role:           u.UserRole,
		InstitutionIDs: helperAuth.ParseInstitutionIDs(u.UserInstitutionIDs),
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*LoginResult, error) {
	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.UserPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user, meta)
}

// LoginGoogle only signs in existing accounts; it never registers new users.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string, meta ClientMeta) (*LoginResult, error) {
	if s.GoogleClientID == "" {
		return nil, ErrGoogleDisabled
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{s.GoogleClientID}); err != nil {
		log.Printf("[WARN] google id token rejected: %v", err)
		return nil, ErrInvalidCredentials
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := authRepo.FindUserByGoogleSubject(ctx, s.DB, claimSet.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = authRepo.FindUserByEmail(ctx, s.DB, claimSet.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoogleUnknownUser
		}
		if err == nil {
			if lerr := authRepo.LinkGoogleSubject(ctx, s.DB, user.UserID, claimSet.Sub); lerr != nil {
				return nil, lerr
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, meta)
}

// Refresh rotates the refresh token: the old one is revoked and a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string, meta ClientMeta) (*LoginResult, error) {
	if s.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	now := s.Now()
	userID, err := helperAuth.ParseRefreshToken(s.RefreshSecret, rawRefresh, now)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	hash := helperAuth.TokenHash(rawRefresh, s.RefreshSecret)
	stored, err := authRepo.FindActiveRefreshToken(ctx, s.DB, hash, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}
	if stored.RefreshTokenUserID != userID {
		return nil, ErrRefreshInvalid
	}
	if err := authRepo.RevokeRefreshToken(ctx, s.DB, hash, now); err != nil {
		return nil, err
	}
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return nil, ErrRefreshInvalid
	}
	return s.issue(ctx, user, meta)
}

// Logout blacklists the access token until it expires and revokes the refresh token.
func (s *AuthService) Logout(ctx context.Context, rawAccess string, accessExp time.Time, rawRefresh string) error {
	now := s.Now()
	if rawAccess != "" {
		if accessExp.Before(now) {
			accessExp = now.Add(helperAuth.AccessTokenTTL)
		}
		if err := authRepo.BlacklistToken(ctx, s.DB, helperAuth.TokenHash(rawAccess, s.AccessSecret), accessExp); err != nil {
			return fmt.Errorf("blacklist token: %w", err)
		}
	}
	if rawRefresh != "" && s.RefreshSecret != "" {
		if err := authRepo.RevokeRefreshToken(ctx, s.DB, helperAuth.TokenHash(rawRefresh, s.RefreshSecret), now); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if err := ValidatePassword("new_password", next); err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.UserPassword, current) {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := authRepo.UpdateUserPassword(ctx, tx, userID, hash); err != nil {
			return err
		}
		return authRepo.RevokeAllRefreshTokens(ctx, tx, userID, s.Now())
	})
}

func (s *AuthService) issue(ctx context.Context, user *userModel.User, meta ClientMeta) (*LoginResult, error) {
	if !user.UserIsActive {
		return nil, ErrInactiveUser
	}
	if s.AccessSecret == "" || s.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	now := s.Now()

	access, accessExp, err := helperAuth.IssueAccessToken(s.AccessSecret, SessionForUser(user), now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := helperAuth.IssueRefreshToken(s.RefreshSecret, user.UserID, now)
	if err != nil {
		return nil, err
	}

	rt := &authModel.RefreshToken{
		RefreshTokenUserID:    user.UserID,
		RefreshTokenHash:      helperAuth.TokenHash(refresh, s.RefreshSecret),
		RefreshTokenExpiresAt: refreshExp,
		RefreshTokenUserAgent: strPtr(meta.UserAgent),
		RefreshTokenIP:        strPtr(meta.IP),
	}
	if err := authRepo.CreateRefreshToken(ctx, s.DB, rt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	if err := authRepo.TouchLastLogin(ctx, s.DB, user.UserID, now); err != nil {
		log.Printf("[WARN] touch last login %s: %v", user.UserID, err)
	}

	return &LoginResult{
		Tokens: TokenPair{
			AccessToken:      access,
			AccessExpiresAt:  accessExp,
			RefreshToken:     refresh,
			RefreshExpiresAt: refreshExp,
		},
		User: user,
	}, nil
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
