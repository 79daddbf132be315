package service

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	helper "trainingcenter_backend/internals/helpers"
)

const minPasswordLen = 8

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword returns helper.FieldErrors for the given json field.
func ValidatePassword(field, password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLen || n > 72 {
		fe := helper.FieldErrors{}
		fe.Add(field, fmt.Sprintf("must be between %d and 72 characters", minPasswordLen))
		return fe
	}
	return nil
}
