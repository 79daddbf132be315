package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/users/users/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateUserRequest struct {
	FullName       string      `json:"user_full_name" validate:"required,min=2,max=150"`
	Email          string      `json:"user_email" validate:"required,email,max=150"`
	Password       string      `json:"user_password" validate:"required"`
	Phone          *string     `json:"user_phone" validate:"omitempty,max=30"`
	NationalID     *string     `json:"user_national_id" validate:"omitempty,max=40"`
	Role           string      `json:"user_role" validate:"required"`
	InstitutionIDs []uuid.UUID `json:"user_institution_ids"`
	IsActive       *bool       `json:"user_is_active"`
}

func (r *CreateUserRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = trimPtr(r.Phone)
	r.NationalID = trimPtr(r.NationalID)
}

// ParseRole validates the role and the institution list that goes with it.
func ParseRole(raw string, institutions []uuid.UUID) (constants.Role, error) {
	role, err := constants.ParseRole(raw)
	if err != nil {
		return "", helper.FieldErrors{"user_role": {"must be one of: admin manager employee member"}}
	}
	if role.Scoped() && len(institutions) == 0 {
		return "", helper.FieldErrors{"user_institution_ids": {"required for " + string(role)}}
	}
	return role, nil
}

// ToModel expects an already hashed password.
func (r CreateUserRequest) ToModel(role constants.Role, hash string) model.User {
	m := model.User{
		UserFullName:       r.FullName,
		UserEmail:          r.Email,
		UserPassword:       hash,
		UserPhone:          r.Phone,
		UserNationalID:     r.NationalID,
		UserRole:           role,
		UserInstitutionIDs: InstitutionArray(r.InstitutionIDs),
		UserIsActive:       true,
	}
	if r.IsActive != nil {
		m.UserIsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest uses pointers: nil means unchanged.
type UpdateUserRequest struct {
	FullName       *string      `json:"user_full_name" validate:"omitempty,min=2,max=150"`
	Email          *string      `json:"user_email" validate:"omitempty,email,max=150"`
	Password       *string      `json:"user_password"`
	Phone          *string      `json:"user_phone" validate:"omitempty,max=30"`
	NationalID     *string      `json:"user_national_id" validate:"omitempty,max=40"`
	Role           *string      `json:"user_role"`
	InstitutionIDs *[]uuid.UUID `json:"user_institution_ids"`
	IsActive       *bool        `json:"user_is_active"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

// Apply does not touch the password; the controller hashes it.
func (r UpdateUserRequest) Apply(m *model.User) error {
	if r.FullName != nil {
		m.UserFullName = *r.FullName
	}
	if r.Email != nil {
		m.UserEmail = *r.Email
	}
	if r.Phone != nil {
		m.UserPhone = trimPtr(r.Phone)
	}
	if r.NationalID != nil {
		m.UserNationalID = trimPtr(r.NationalID)
	}
	if r.InstitutionIDs != nil {
		m.UserInstitutionIDs = InstitutionArray(*r.InstitutionIDs)
	}
	if r.IsActive != nil {
		m.UserIsActive = *r.IsActive
	}
	raw := string(m.UserRole)
	if r.Role != nil {
		raw = *r.Role
	}
	role, err := ParseRole(raw, ParseArray(m.UserInstitutionIDs))
	if err != nil {
		return err
	}
	m.UserRole = role
	if !role.Scoped() {
		m.UserInstitutionIDs = pq.StringArray{}
	}
	return nil
}

// InstitutionArray dedupes ids for the text[] column.
func InstitutionArray(ids []uuid.UUID) pq.StringArray {
	out := pq.StringArray{}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id.String())
	}
	return out
}

func ParseArray(a pq.StringArray) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range a {
		if id, err := uuid.Parse(s); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
