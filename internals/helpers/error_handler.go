package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every unhandled error with the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fields := ValidationErrors(err); fields != nil {
		return JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] unhandled %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "")
}
