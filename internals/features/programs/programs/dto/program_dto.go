package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"trainingcenter_backend/internals/features/programs/programs/model"
	helper "trainingcenter_backend/internals/helpers"
)

const DateLayout = "2006-01-02"

type CreateProgramRequest struct {
	CourseID      uuid.UUID `json:"program_course_id" validate:"required"`
	InstitutionID uuid.UUID `json:"program_institution_id" validate:"required"`
	TrainerID     uuid.UUID `json:"program_trainer_id" validate:"required"`
	StartDate     string    `json:"program_start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string    `json:"program_end_date" validate:"required,datetime=2006-01-02"`
}

// CheckDates enforces start < end.
func CheckDates(start, end time.Time) error {
	if !start.Before(end) {
		return helper.FieldErrors{"program_end_date": {"must be after program_start_date"}}
	}
	return nil
}

func (r CreateProgramRequest) ToModel() (model.Program, error) {
	start, _ := time.Parse(DateLayout, strings.TrimSpace(r.StartDate))
	end, _ := time.Parse(DateLayout, strings.TrimSpace(r.EndDate))
	if err := CheckDates(start, end); err != nil {
		return model.Program{}, err
	}
	return model.Program{
		ProgramCourseID:      r.CourseID,
		ProgramInstitutionID: r.InstitutionID,
		ProgramTrainerID:     r.TrainerID,
		ProgramStartDate:     start,
		ProgramEndDate:       end,
	}, nil
}

type UpdateProgramRequest struct {
	CourseID      *uuid.UUID `json:"program_course_id"`
	InstitutionID *uuid.UUID `json:"program_institution_id"`
	TrainerID     *uuid.UUID `json:"program_trainer_id"`
	StartDate     *string    `json:"program_start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string    `json:"program_end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdateProgramRequest) Apply(m *model.Program) error {
	if r.CourseID != nil {
		m.ProgramCourseID = *r.CourseID
	}
	if r.InstitutionID != nil {
		m.ProgramInstitutionID = *r.InstitutionID
	}
	if r.TrainerID != nil {
		m.ProgramTrainerID = *r.TrainerID
	}
	if r.StartDate != nil {
		m.ProgramStartDate, _ = time.Parse(DateLayout, strings.TrimSpace(*r.StartDate))
	}
	if r.EndDate != nil {
		m.ProgramEndDate, _ = time.Parse(DateLayout, strings.TrimSpace(*r.EndDate))
	}
	return CheckDates(m.ProgramStartDate, m.ProgramEndDate)
}

// ProgramResponse adds the derived status.
type ProgramResponse struct {
	model.Program
	ProgramStatus model.ProgramStatus `json:"program_status"`
}

func FromModel(m model.Program, now time.Time) ProgramResponse {
	return ProgramResponse{Program: m, ProgramStatus: m.StatusAt(now)}
}

func FromModels(rows []model.Program, now time.Time) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r, now))
	}
	return out
}
