package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
	authService "trainingcenter_backend/internals/features/users/auth/service"
	userDTO "trainingcenter_backend/internals/features/users/users/dto"
	"trainingcenter_backend/internals/features/users/users/model"
)

type UserSeed struct {
	FullName       string      `json:"user_full_name"`
	Email          string      `json:"user_email"`
	Password       string      `json:"user_password"`
	Role           string      `json:"user_role"`
	InstitutionIDs []uuid.UUID `json:"user_institution_ids"`
}

// SeedUser inserts u unless the email already exists. It reports whether a row was created.
func SeedUser(db *gorm.DB, u UserSeed) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	var existing model.User
	err := db.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	role, err := userDTO.ParseRole(u.Role, u.InstitutionIDs)
	if err != nil {
		return false, fmt.Errorf("%s: %w", email, err)
	}
	if err := authService.ValidatePassword("user_password", u.Password); err != nil {
		return false, fmt.Errorf("%s: %w", email, err)
	}
	hash, err := authService.HashPassword(u.Password)
	if err != nil {
		return false, err
	}
	m := model.User{
		UserFullName:       strings.TrimSpace(u.FullName),
		UserEmail:          email,
		UserPassword:       hash,
		UserRole:           role,
		UserInstitutionIDs: userDTO.InstitutionArray(u.InstitutionIDs),
		UserIsActive:       true,
	}
	if err := db.Create(&m).Error; err != nil {
		return false, err
	}
	return true, nil
}

// SeedAdmin creates the first administrator account.
func SeedAdmin(db *gorm.DB, email, password string) (bool, error) {
	return SeedUser(db, UserSeed{
		FullName: "Administrator",
		Email:    email,
		Password: password,
		Role:     string(constants.RoleAdmin),
	})
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("[SEED] reading users:", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	for _, in := range inputs {
		created, err := SeedUser(db, in)
		switch {
		case err != nil:
			log.Printf("[SEED] user %s failed: %v", in.Email, err)
		case created:
			log.Printf("[SEED] user %s inserted", in.Email)
		default:
			log.Printf("[SEED] user %s exists, skipped", in.Email)
		}
	}
	return nil
}
