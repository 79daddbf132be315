package booking

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "trainingcenter_backend/internals/helpers"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrProgramCourseMismatch = errors.New("program does not belong to the lead's course")
	ErrForbiddenScope        = errors.New("record belongs to another institution")
)

// TransitionError carries the status the record was in when the action was refused.
type TransitionError struct {
	Entity  string
	Action  string
	Current string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s in status %q", e.Action, e.Entity, e.Current)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// StatusOf maps service errors to an HTTP status and a client-safe message.
func StatusOf(err error) (int, string) {
	var te *TransitionError
	switch {
	case errors.As(err, &te):
		return fiber.StatusConflict, te.Error()
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, ErrProgramCourseMismatch):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, ErrForbiddenScope):
		return fiber.StatusForbidden, err.Error()
	}
	return helper.DBErrorStatus(err)
}

// WriteError renders any error returned by Service.
func WriteError(c *fiber.Ctx, err error) error {
	if fields := helper.ValidationErrors(err); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status, msg := StatusOf(err)
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		msg = "operation failed, nothing was changed; please retry"
	}
	return helper.JsonError(c, status, msg)
}
