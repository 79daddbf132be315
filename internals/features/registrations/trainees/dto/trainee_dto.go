package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/registrations/booking"
	"trainingcenter_backend/internals/features/registrations/pricing"
	"trainingcenter_backend/internals/features/registrations/trainees/model"
	helper "trainingcenter_backend/internals/helpers"
)

// RegistrationRequest is the trainee form. Totals are never read from it.
type RegistrationRequest struct {
	FullName       string               `json:"trainee_full_name" validate:"omitempty,max=150"`
	Email          *string              `json:"trainee_email" validate:"omitempty,email,max=150"`
	Phone          string               `json:"trainee_phone" validate:"omitempty,max=30"`
	ProgramID      uuid.UUID            `json:"trainee_program_id"`
	Discount       decimal.Decimal      `json:"trainee_discount"`
	InitialTranche decimal.Decimal      `json:"trainee_initial_tranche"`
	InitialMethod  model.PaymentMethod  `json:"trainee_initial_tranche_method"`
	SecondTranche  decimal.Decimal      `json:"trainee_second_tranche"`
	SecondMethod   *model.PaymentMethod `json:"trainee_second_tranche_method"`
	Note           *string              `json:"trainee_note"`
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

func (r *RegistrationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = clean(r.Email, true)
	r.Note = clean(r.Note, false)
	if r.SecondMethod != nil && *r.SecondMethod == "" {
		r.SecondMethod = nil
	}
}

func (r RegistrationRequest) ToRegistration() booking.Registration {
	return booking.Registration{
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		ProgramID:      r.ProgramID,
		Discount:       r.Discount.Round(2),
		InitialTranche: r.InitialTranche.Round(2),
		InitialMethod:  r.InitialMethod,
		SecondTranche:  r.SecondTranche.Round(2),
		SecondMethod:   r.SecondMethod,
		Note:           r.Note,
	}
}

type UpdateTraineeRequest struct {
	FullName       helper.PatchField[string]              `json:"trainee_full_name"`
	Email          helper.PatchField[string]              `json:"trainee_email"`
	Phone          helper.PatchField[string]              `json:"trainee_phone"`
	ProgramID      helper.PatchField[uuid.UUID]           `json:"trainee_program_id"`
	Discount       helper.PatchField[decimal.Decimal]     `json:"trainee_discount"`
	InitialTranche helper.PatchField[decimal.Decimal]     `json:"trainee_initial_tranche"`
	InitialMethod  helper.PatchField[model.PaymentMethod] `json:"trainee_initial_tranche_method"`
	SecondTranche  helper.PatchField[decimal.Decimal]     `json:"trainee_second_tranche"`
	SecondMethod   helper.PatchField[model.PaymentMethod] `json:"trainee_second_tranche_method"`
	Note           helper.PatchField[string]              `json:"trainee_note"`
}

// Check rejects explicit nulls on required fields.
func (r UpdateTraineeRequest) Check() error {
	fe := helper.FieldErrors{}
	required := map[string]bool{
		"trainee_full_name":              r.FullName.Present && (!r.FullName.Set() || strings.TrimSpace(*r.FullName.Value) == ""),
		"trainee_phone":                  r.Phone.Present && (!r.Phone.Set() || strings.TrimSpace(*r.Phone.Value) == ""),
		"trainee_program_id":             r.ProgramID.Present && (!r.ProgramID.Set() || *r.ProgramID.Value == uuid.Nil),
		"trainee_discount":               r.Discount.Present && !r.Discount.Set(),
		"trainee_initial_tranche":        r.InitialTranche.Present && !r.InitialTranche.Set(),
		"trainee_second_tranche":         r.SecondTranche.Present && !r.SecondTranche.Set(),
		"trainee_initial_tranche_method": r.InitialMethod.Present && !r.InitialMethod.Set(),
	}
	for field, missing := range required {
		if missing {
			fe.Add(field, "is required")
		}
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

func (r UpdateTraineeRequest) Apply(t *model.Trainee) {
	if r.FullName.Set() {
		t.TraineeFullName = strings.TrimSpace(*r.FullName.Value)
	}
	if r.Email.Present {
		t.TraineeEmail = clean(r.Email.Value, true)
	}
	if r.Phone.Set() {
		t.TraineePhone = strings.TrimSpace(*r.Phone.Value)
	}
	if r.ProgramID.Set() {
		t.TraineeProgramID = *r.ProgramID.Value
	}
	if r.Discount.Set() {
		t.TraineeDiscount = r.Discount.Value.Round(2)
	}
	if r.InitialTranche.Set() {
		t.TraineeInitialTranche = r.InitialTranche.Value.Round(2)
	}
	if r.InitialMethod.Set() {
		t.TraineeInitialTrancheMethod = *r.InitialMethod.Value
	}
	if r.SecondTranche.Set() {
		t.TraineeSecondTranche = r.SecondTranche.Value.Round(2)
	}
	if r.SecondMethod.Present {
		t.TraineeSecondTrancheMethod = r.SecondMethod.Value
	}
	if r.Note.Present {
		t.TraineeNote = clean(r.Note.Value, false)
	}
}

type ConfirmSecondTrancheRequest struct {
	Method model.PaymentMethod `json:"trainee_second_tranche_method" validate:"required"`
}

// QuoteRequest previews pricing for a program without persisting anything.
type QuoteRequest struct {
	ProgramID      *uuid.UUID      `json:"trainee_program_id"`
	Discount       decimal.Decimal `json:"trainee_discount"`
	InitialTranche decimal.Decimal `json:"trainee_initial_tranche"`
	SecondTranche  decimal.Decimal `json:"trainee_second_tranche"`
}

type QuoteResponse struct {
	pricing.Quote
	Errors map[string][]string `json:"errors,omitempty"`
}
