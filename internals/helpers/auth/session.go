package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/constants"
)

const LocSession = "session"

// Session is the authenticated caller, built once by the auth middleware.
type Session struct {
	UserID         uuid.UUID
	FullName       string
	Role           constants.Role
	InstitutionIDs []uuid.UUID
	RawToken       string
}

func SetSession(c *fiber.Ctx, s *Session) {
	c.Locals(LocSession, s)
}

// SessionFrom returns 401 when no middleware stored a session.
func SessionFrom(c *fiber.Ctx) (*Session, error) {
	s, ok := c.Locals(LocSession).(*Session)
	if !ok || s == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}
	return s, nil
}

func (s *Session) HasAnyRole(roles ...constants.Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func (s *Session) IsAdmin() bool { return s.HasAnyRole(constants.RoleAdmin) }

// CanAccessInstitution: admins see everything, scoped roles only their own institutions.
func (s *Session) CanAccessInstitution(id uuid.UUID) bool {
	if s == nil {
		return false
	}
	if !s.Role.Scoped() {
		return s.Role == constants.RoleAdmin || s.Role == constants.RoleMember
	}
	for _, own := range s.InstitutionIDs {
		if own == id {
			return true
		}
	}
	return false
}

// InstitutionScope returns the ids a query must be limited to, and false when unrestricted.
func (s *Session) InstitutionScope() ([]uuid.UUID, bool) {
	if s == nil || !s.Role.Scoped() {
		return nil, false
	}
	return s.InstitutionIDs, true
}

// ParseInstitutionIDs drops blanks and malformed ids.
func ParseInstitutionIDs(raw []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// ScopeColumn limits a query to the caller's institutions on column.
// Unrestricted roles pass through; a scoped user without institutions sees nothing.
func (s *Session) ScopeColumn(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ids, scoped := s.InstitutionScope()
		if !scoped {
			return db
		}
		if len(ids) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", ids)
	}
}
