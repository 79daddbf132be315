package constants

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleMember   Role = "member"
)

const ErrRoleForbidden = "only %s may access %s"

var (
	AllRoles = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleMember}

	// Staff register people and money.
	StaffRoles = []Role{RoleAdmin, RoleManager, RoleEmployee}

	SupervisorRoles = []Role{RoleAdmin, RoleManager}

	AdminOnly = []Role{RoleAdmin}
)

// ParseRole accepts only the exact enumerated names (case-insensitive, trimmed).
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Scoped roles only see data of their own institutions.
func (r Role) Scoped() bool {
	return r == RoleManager || r == RoleEmployee
}

func RoleError(feature string, allowed []Role) string {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return fmt.Sprintf(ErrRoleForbidden, strings.Join(names, ", "), feature)
}
