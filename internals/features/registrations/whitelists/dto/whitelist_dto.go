package dto

import (
	"strings"

	"github.com/google/uuid"

	"trainingcenter_backend/internals/features/registrations/whitelists/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateWhitelistRequest struct {
	FullName  string    `json:"whitelist_full_name" validate:"required,min=2,max=150"`
	Phone     string    `json:"whitelist_phone" validate:"required,min=6,max=30"`
	ProgramID uuid.UUID `json:"whitelist_program_id" validate:"required"`
	Note      *string   `json:"whitelist_note"`
}

func (r *CreateWhitelistRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Note != nil {
		if v := strings.TrimSpace(*r.Note); v == "" {
			r.Note = nil
		} else {
			r.Note = &v
		}
	}
}

func (r CreateWhitelistRequest) ToModel() *model.Whitelist {
	return &model.Whitelist{
		WhitelistFullName:  r.FullName,
		WhitelistPhone:     r.Phone,
		WhitelistProgramID: r.ProgramID,
		WhitelistNote:      r.Note,
	}
}

// ParseStatus reads ?status=; empty lists pending bookings.
func ParseStatus(raw string) (*model.WhitelistStatus, error) {
	switch s := model.WhitelistStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		st := model.WhitelistNew
		return &st, nil
	case "all":
		return nil, nil
	case model.WhitelistNew, model.WhitelistCanceled, model.WhitelistConfirmed:
		return &s, nil
	}
	return nil, helper.FieldErrors{"status": {"must be one of: all new canceled confirmed"}}
}
