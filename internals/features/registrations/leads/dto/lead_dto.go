package dto

import (
	"strings"

	"github.com/google/uuid"

	"trainingcenter_backend/internals/features/registrations/leads/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateLeadRequest struct {
	FullName string    `json:"lead_full_name" validate:"required,min=2,max=150"`
	Phone    string    `json:"lead_phone" validate:"required,min=6,max=30"`
	CourseID uuid.UUID `json:"lead_course_id" validate:"required"`
	Wilaya   *string   `json:"lead_wilaya" validate:"omitempty,max=60"`
	Note     *string   `json:"lead_note"`
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

func (r *CreateLeadRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Wilaya = clean(r.Wilaya)
	r.Note = clean(r.Note)
}

func (r CreateLeadRequest) ToModel() *model.Lead {
	return &model.Lead{
		LeadFullName: r.FullName,
		LeadPhone:    r.Phone,
		LeadCourseID: r.CourseID,
		LeadWilaya:   r.Wilaya,
		LeadNote:     r.Note,
	}
}

type UpdateLeadRequest struct {
	FullName helper.PatchField[string]    `json:"lead_full_name"`
	Phone    helper.PatchField[string]    `json:"lead_phone"`
	CourseID helper.PatchField[uuid.UUID] `json:"lead_course_id"`
	Wilaya   helper.PatchField[string]    `json:"lead_wilaya"`
	Note     helper.PatchField[string]    `json:"lead_note"`
}

func (r UpdateLeadRequest) Apply(m *model.Lead) error {
	fe := helper.FieldErrors{}
	if r.FullName.Present {
		if !r.FullName.Set() || len(strings.TrimSpace(*r.FullName.Value)) < 2 {
			fe.Add("lead_full_name", "must be at least 2")
		} else {
			m.LeadFullName = strings.TrimSpace(*r.FullName.Value)
		}
	}
	if r.Phone.Present {
		if !r.Phone.Set() || len(strings.TrimSpace(*r.Phone.Value)) < 6 {
			fe.Add("lead_phone", "must be at least 6")
		} else {
			m.LeadPhone = strings.TrimSpace(*r.Phone.Value)
		}
	}
	if r.CourseID.Present {
		if !r.CourseID.Set() || *r.CourseID.Value == uuid.Nil {
			fe.Add("lead_course_id", "is required")
		} else {
			m.LeadCourseID = *r.CourseID.Value
		}
	}
	if r.Wilaya.Present {
		m.LeadWilaya = clean(r.Wilaya.Value)
	}
	if r.Note.Present {
		m.LeadNote = clean(r.Note.Value)
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

type ConfirmLeadRequest struct {
	ProgramID uuid.UUID `json:"program_id" validate:"required"`
	Note      *string   `json:"note"`
}

// ParseStatusFilter turns ?status= into the statuses to list. Empty means the active list.
func ParseStatusFilter(raw string) ([]model.LeadStatus, error) {
	switch raw = strings.TrimSpace(strings.ToLower(raw)); raw {
	case "":
		return model.ActiveLeadStatuses, nil
	case "all":
		return nil, nil
	}
	var out []model.LeadStatus
	for _, part := range strings.Split(raw, ",") {
		s := model.LeadStatus(strings.TrimSpace(part))
		switch s {
		case model.LeadNew, model.LeadCalled, model.LeadCanceled, model.LeadConverted:
			out = append(out, s)
		default:
			return nil, helper.FieldErrors{"status": {"must be all or a list of: new called canceled converted"}}
		}
	}
	return out, nil
}
