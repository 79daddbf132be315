package dto

import (
	"strings"

	"trainingcenter_backend/internals/features/catalog/institutions/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateInstitutionRequest struct {
	Name    string  `json:"institution_name" validate:"required,min=2,max=150"`
	Address *string `json:"institution_address"`
	Phone   *string `json:"institution_phone" validate:"omitempty,max=30"`
}

func clean(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *CreateInstitutionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = clean(r.Address)
	r.Phone = clean(r.Phone)
}

func (r CreateInstitutionRequest) ToModel() model.Institution {
	return model.Institution{
		InstitutionName:    r.Name,
		InstitutionAddress: r.Address,
		InstitutionPhone:   r.Phone,
	}
}

type UpdateInstitutionRequest struct {
	Name    helper.PatchField[string] `json:"institution_name"`
	Address helper.PatchField[string] `json:"institution_address"`
	Phone   helper.PatchField[string] `json:"institution_phone"`
}

func (r UpdateInstitutionRequest) Check() error {
	if r.Name.Present && (r.Name.Value == nil || len(strings.TrimSpace(*r.Name.Value)) < 2) {
		return helper.FieldErrors{"institution_name": {"must be at least 2"}}
	}
	return nil
}

func (r UpdateInstitutionRequest) Apply(m *model.Institution) {
	if r.Name.Set() {
		m.InstitutionName = strings.TrimSpace(*r.Name.Value)
	}
	if r.Address.Present {
		m.InstitutionAddress = clean(r.Address.Value)
	}
	if r.Phone.Present {
		m.InstitutionPhone = clean(r.Phone.Value)
	}
}
