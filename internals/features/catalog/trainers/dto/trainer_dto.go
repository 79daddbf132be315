package dto

import (
	"strings"

	"trainingcenter_backend/internals/features/catalog/trainers/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateTrainerRequest struct {
	FullName string  `json:"trainer_full_name" validate:"required,min=2,max=150"`
	Email    *string `json:"trainer_email" validate:"omitempty,email,max=150"`
	Phone    *string `json:"trainer_phone" validate:"omitempty,max=30"`
}

func clean(p *string, lower bool) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	if lower {
		v = strings.ToLower(v)
	}
	return &v
}

func (r *CreateTrainerRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = clean(r.Email, true)
	r.Phone = clean(r.Phone, false)
}

func (r CreateTrainerRequest) ToModel() model.Trainer {
	return model.Trainer{TrainerFullName: r.FullName, TrainerEmail: r.Email, TrainerPhone: r.Phone}
}

type UpdateTrainerRequest struct {
	FullName helper.PatchField[string] `json:"trainer_full_name"`
	Email    helper.PatchField[string] `json:"trainer_email"`
	Phone    helper.PatchField[string] `json:"trainer_phone"`
}

// ToCreate merges the patch over m so the create rules can validate the result.
func (r UpdateTrainerRequest) ToCreate(m model.Trainer) CreateTrainerRequest {
	out := CreateTrainerRequest{FullName: m.TrainerFullName, Email: m.TrainerEmail, Phone: m.TrainerPhone}
	if r.FullName.Present {
		out.FullName = ""
		if r.FullName.Value != nil {
			out.FullName = *r.FullName.Value
		}
	}
	if r.Email.Present {
		out.Email = r.Email.Value
	}
	if r.Phone.Present {
		out.Phone = r.Phone.Value
	}
	out.Normalize()
	return out
}
