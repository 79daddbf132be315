package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/catalog/courses/model"
	helper "trainingcenter_backend/internals/helpers"
)

type CreateCourseRequest struct {
	Name          string          `json:"course_name" validate:"required,min=2,max=150"`
	Price         decimal.Decimal `json:"course_price"`
	DurationLabel *string         `json:"course_duration_label" validate:"omitempty,max=60"`
	Description   *string         `json:"course_description"`
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

func (r *CreateCourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.DurationLabel = trimPtr(r.DurationLabel)
	r.Description = trimPtr(r.Description)
}

func (r CreateCourseRequest) Check() error {
	if r.Price.IsNegative() {
		return helper.FieldErrors{"course_price": {"must not be negative"}}
	}
	return nil
}

func (r CreateCourseRequest) ToModel() model.Course {
	return model.Course{
		CourseName:          r.Name,
		CoursePrice:         r.Price.Round(2),
		CourseDurationLabel: r.DurationLabel,
		CourseDescription:   r.Description,
	}
}

type UpdateCourseRequest struct {
	Name          helper.PatchField[string]          `json:"course_name"`
	Price         helper.PatchField[decimal.Decimal] `json:"course_price"`
	DurationLabel helper.PatchField[string]          `json:"course_duration_label"`
	Description   helper.PatchField[string]          `json:"course_description"`
}

func (r *UpdateCourseRequest) Check() error {
	fe := helper.FieldErrors{}
	if r.Name.Present {
		if r.Name.Value == nil || len(strings.TrimSpace(*r.Name.Value)) < 2 {
			fe.Add("course_name", "must be at least 2")
		}
	}
	if r.Price.Present && (r.Price.Value == nil || r.Price.Value.IsNegative()) {
		fe.Add("course_price", "must not be negative")
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

// Apply reports whether the name changed, which means a new slug.
func (r UpdateCourseRequest) Apply(m *model.Course) bool {
	renamed := false
	if r.Name.Set() {
		name := strings.TrimSpace(*r.Name.Value)
		renamed = name != m.CourseName
		m.CourseName = name
	}
	if r.Price.Set() {
		m.CoursePrice = r.Price.Value.Round(2)
	}
	if r.DurationLabel.Present {
		m.CourseDurationLabel = trimPtr(r.DurationLabel.Value)
	}
	if r.Description.Present {
		m.CourseDescription = trimPtr(r.Description.Value)
	}
	return renamed
}
