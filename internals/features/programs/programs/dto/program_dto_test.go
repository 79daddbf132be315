package dto

import (
	"testing"

	"github.com/google/uuid"

	helper "trainingcenter_backend/internals/helpers"
)

func TestCreateProgramDates(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		ok         bool
	}{
		{"ordered", "2024-01-01", "2024-02-01", true},
		{"same day", "2024-01-01", "2024-01-01", false},
		{"reversed", "2024-03-01", "2024-02-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateProgramRequest{
				CourseID: uuid.New(), InstitutionID: uuid.New(), TrainerID: uuid.New(),
				StartDate: tt.start, EndDate: tt.end,
			}
			m, err := req.ToModel()
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if m.ProgramStartDate.Format(DateLayout) != tt.start {
					t.Errorf("start = %s", m.ProgramStartDate)
				}
				return
			}
			if fields := helper.ValidationErrors(err); fields["program_end_date"] == nil {
				t.Errorf("err = %v, want program_end_date field error", err)
			}
		})
	}
}

func TestUpdateProgramKeepsDateInvariant(t *testing.T) {
	m, err := CreateProgramRequest{StartDate: "2024-01-01", EndDate: "2024-02-01"}.ToModel()
	if err != nil {
		t.Fatal(err)
	}
	start := "2024-03-01"
	if err := (UpdateProgramRequest{StartDate: &start}).Apply(&m); err == nil {
		t.Error("moving start past end should fail")
	}

	end := "2024-04-01"
	fresh := m
	if err := (UpdateProgramRequest{StartDate: &start, EndDate: &end}).Apply(&fresh); err != nil {
		t.Errorf("valid move: %v", err)
	}
}
