package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"trainingcenter_backend/internals/constants"
	"trainingcenter_backend/internals/features/users/users/model"
	helper "trainingcenter_backend/internals/helpers"
)

func TestParseRole(t *testing.T) {
	inst := []uuid.UUID{uuid.New()}
	tests := []struct {
		raw   string
		ids   []uuid.UUID
		want  constants.Role
		field string
	}{
		{"admin", nil, constants.RoleAdmin, ""},
		{" Manager ", inst, constants.RoleManager, ""},
		{"employee", nil, "", "user_institution_ids"},
		{"superadmin", nil, "", "user_role"},
		{"adm", nil, "", "user_role"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw, tt.ids)
			if tt.field != "" {
				fe, ok := err.(helper.FieldErrors)
				if !ok || len(fe[tt.field]) == 0 {
					t.Fatalf("want error on %s, got %v", tt.field, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %q, %v", got, err)
			}
		})
	}
}

func TestInstitutionArrayDedupes(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := InstitutionArray([]uuid.UUID{a, uuid.Nil, b, a})
	if len(got) != 2 || got[0] != a.String() || got[1] != b.String() {
		t.Fatalf("got %v", got)
	}
}

func TestUpdatePromotionClearsInstitutions(t *testing.T) {
	u := model.User{UserRole: constants.RoleEmployee, UserInstitutionIDs: pq.StringArray{uuid.NewString()}}
	role := "admin"
	if err := (UpdateUserRequest{Role: &role}).Apply(&u); err != nil {
		t.Fatal(err)
	}
	if u.UserRole != constants.RoleAdmin || len(u.UserInstitutionIDs) != 0 {
		t.Fatalf("got role %s ids %v", u.UserRole, u.UserInstitutionIDs)
	}

	empty := []uuid.UUID{}
	m := model.User{UserRole: constants.RoleManager, UserInstitutionIDs: pq.StringArray{uuid.NewString()}}
	if err := (UpdateUserRequest{InstitutionIDs: &empty}).Apply(&m); err == nil {
		t.Fatal("manager without institutions must be rejected")
	}
}
