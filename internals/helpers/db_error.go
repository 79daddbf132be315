package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports a duplicate key error from either postgres driver.
func IsUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

func IsForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// DBErrorStatus maps persistence errors to HTTP status and a safe message.
func DBErrorStatus(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "record not found"
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return fiber.StatusConflict, "record already exists"
	case pgForeignKeyViolation:
		return fiber.StatusBadRequest, "referenced record does not exist or is still in use"
	case pgCheckViolation:
		return fiber.StatusUnprocessableEntity, "value violates a constraint"
	}
	return fiber.StatusInternalServerError, "database error"
}

func JsonDBError(c *fiber.Ctx, err error) error {
	status, msg := DBErrorStatus(err)
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}
	return JsonError(c, status, msg)
}

// JsonFromError renders fiber errors, validation errors and persistence errors alike.
func JsonFromError(c *fiber.Ctx, err error) error {
	if fields := ValidationErrors(err); fields != nil {
		return JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonDBError(c, err)
}
