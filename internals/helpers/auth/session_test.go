package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"trainingcenter_backend/internals/constants"
)

func TestSessionHasAnyRole(t *testing.T) {
	s := &Session{Role: constants.RoleEmployee}
	if !s.HasAnyRole(constants.RoleAdmin, constants.RoleEmployee) {
		t.Error("employee should match its own role")
	}
	if s.HasAnyRole(constants.RoleAdmin, constants.RoleManager) {
		t.Error("employee must not match admin or manager")
	}
	var nilSession *Session
	if nilSession.HasAnyRole(constants.AllRoles...) {
		t.Error("nil session has no role")
	}
}

func TestSessionCanAccessInstitution(t *testing.T) {
	own, other := uuid.New(), uuid.New()
	tests := []struct {
		name string
		s    Session
		id   uuid.UUID
		want bool
	}{
		{"admin any", Session{Role: constants.RoleAdmin}, other, true},
		{"manager own", Session{Role: constants.RoleManager, InstitutionIDs: []uuid.UUID{own}}, own, true},
		{"manager other", Session{Role: constants.RoleManager, InstitutionIDs: []uuid.UUID{own}}, other, false},
		{"employee none", Session{Role: constants.RoleEmployee}, own, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.CanAccessInstitution(tt.id); got != tt.want {
				t.Errorf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := Session{
		UserID:         uuid.New(),
		FullName:       "Amina",
		Role:           constants.RoleManager,
		InstitutionIDs: []uuid.UUID{uuid.New()},
	}
	raw, exp, err := IssueAccessToken("secret", in, now)
	if err != nil {
		t.Fatal(err)
	}
	if !exp.Equal(now.Add(AccessTokenTTL)) {
		t.Errorf("exp = %v", exp)
	}

	got, _, err := ParseAccessToken("secret", raw, now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != in.UserID || got.Role != in.Role || len(got.InstitutionIDs) != 1 || got.InstitutionIDs[0] != in.InstitutionIDs[0] {
		t.Errorf("session mismatch: %+v", got)
	}

	if _, _, err := ParseAccessToken("other", raw, now); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret: err = %v", err)
	}
	if _, _, err := ParseAccessToken("secret", raw, now.Add(AccessTokenTTL+time.Minute)); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired: err = %v", err)
	}
	// within skew
	if _, _, err := ParseAccessToken("secret", raw, now.Add(AccessTokenTTL+10*time.Second)); err != nil {
		t.Errorf("skew: err = %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	now := time.Now()
	uid := uuid.New()
	raw, _, err := IssueRefreshToken("r", uid, now)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseRefreshToken("r", raw, now)
	if err != nil || got != uid {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestTokenHashStable(t *testing.T) {
	if TokenHash("a", "k") != TokenHash("a", "k") {
		t.Error("hash must be deterministic")
	}
	if TokenHash("a", "k") == TokenHash("b", "k") {
		t.Error("different tokens must differ")
	}
}
