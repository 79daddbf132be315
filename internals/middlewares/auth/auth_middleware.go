package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
	authRepo "trainingcenter_backend/internals/features/users/auth/repository"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

// AuthMiddleware verifies the access token and stores a Session built from the current user row,
// so role or institution changes apply on the next request.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing access token")
		}
		secret := configs.JWTSecret
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		now := time.Now()
		claimed, _, err := helperAuth.ParseAccessToken(secret, raw, now)
		if err != nil {
			if errors.Is(err, helperAuth.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "access token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "access token invalid")
		}

		ctx := c.UserContext()
		blacklisted, err := authRepo.IsBlacklisted(ctx, db, helperAuth.TokenHash(raw, secret), now)
		if err != nil {
			log.Printf("[ERROR] blacklist lookup: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "session has been logged out")
		}

		user, err := authRepo.FindUserByID(ctx, db, claimed.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "user not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if !user.UserIsActive {
			return fiber.NewError(fiber.StatusForbidden, "account is disabled")
		}
		if !user.UserRole.Valid() {
			log.Printf("[WARN] user %s has unknown role %q", user.UserID, user.UserRole)
			return fiber.NewError(fiber.StatusForbidden, "account role is invalid")
		}

		helperAuth.SetSession(c, &helperAuth.Session{
			UserID:         user.UserID,
			FullName:       user.UserFullName,
			Role:           user.UserRole,
			InstitutionIDs: helperAuth.ParseInstitutionIDs(user.UserInstitutionIDs),
			RawToken:       raw,
		})
		return c.Next()
	}
}
