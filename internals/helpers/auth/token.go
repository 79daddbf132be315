package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"trainingcenter_backend/internals/constants"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	expirySkew      = 30 * time.Second
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type AccessClaims struct {
	UserID         string   `json:"uid"`
	FullName       string   `json:"name"`
	Role           string   `json:"role"`
	InstitutionIDs []string `json:"institution_ids"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func IssueAccessToken(secret string, s Session, now time.Time) (string, time.Time, error) {
	exp := now.Add(AccessTokenTTL)
	ids := make([]string, len(s.InstitutionIDs))
	for i, id := range s.InstitutionIDs {
		ids[i] = id.String()
	}
	claims := AccessClaims{
		UserID:         s.UserID.String(),
		FullName:       s.FullName,
		Role:           string(s.Role),
		InstitutionIDs: ids,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

func IssueRefreshToken(secret string, userID uuid.UUID, now time.Time) (string, time.Time, error) {
	exp := now.Add(RefreshTokenTTL)
	claims := RefreshClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, exp, nil
}

func parse(secret, raw string, claims jwt.Claims) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return nil
}

func checkExpiry(exp *jwt.NumericDate, now time.Time) error {
	if exp == nil {
		return ErrTokenInvalid
	}
	if now.After(exp.Time.Add(expirySkew)) {
		return ErrTokenExpired
	}
	return nil
}

// ParseAccessToken verifies signature and expiry and returns the session it describes.
func ParseAccessToken(secret, raw string, now time.Time) (*Session, time.Time, error) {
	var claims AccessClaims
	if err := parse(secret, raw, &claims); err != nil {
		return nil, time.Time{}, err
	}
	if err := checkExpiry(claims.ExpiresAt, now); err != nil {
		return nil, time.Time{}, err
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, time.Time{}, ErrTokenInvalid
	}
	role, err := constants.ParseRole(claims.Role)
	if err != nil {
		return nil, time.Time{}, ErrTokenInvalid
	}
	return &Session{
		UserID:         uid,
		FullName:       claims.FullName,
		Role:           role,
		InstitutionIDs: ParseInstitutionIDs(claims.InstitutionIDs),
		RawToken:       raw,
	}, claims.ExpiresAt.Time, nil
}

func ParseRefreshToken(secret, raw string, now time.Time) (uuid.UUID, error) {
	var claims RefreshClaims
	if err := parse(secret, raw, &claims); err != nil {
		return uuid.Nil, err
	}
	if err := checkExpiry(claims.ExpiresAt, now); err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return uid, nil
}

// TokenHash is what gets persisted for refresh tokens and blacklisted access tokens.
func TokenHash(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
