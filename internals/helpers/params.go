package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid id")
	}
	return id, nil
}

// ParseUUIDQuery returns nil when the query value is absent.
func ParseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid id")
	}
	return &id, nil
}

// QueryYear defaults to the current year and rejects anything outside 2000..2100.
func QueryYear(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("year"))
	if raw == "" {
		return time.Now().Year(), nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil || y < 2000 || y > 2100 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	return y, nil
}

// QueryMonth returns 0 when absent, else 1..12.
func QueryMonth(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return 0, nil
	}
	m, err := strconv.Atoi(raw)
	if err != nil || m < 1 || m > 12 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}
	return m, nil
}
