package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

// LoadProgram reads a live program with its references.
func LoadProgram(ctx context.Context, db *gorm.DB, programID uuid.UUID) (*programModel.Program, error) {
	var p programModel.Program
	if err := db.WithContext(ctx).Scopes(programModel.ScopeAlive, programModel.WithRefs).
		First(&p, "program_id = ?", programID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// EmployeeNames resolves user ids to full names.
func EmployeeNames(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		UserID       uuid.UUID
		UserFullName string
	}
	if err := db.WithContext(ctx).Table("users").
		Select("user_id, user_full_name").
		Where("user_id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = r.UserFullName
	}
	return out, nil
}

// Load assembles the report of a program from its active roster.
func Load(ctx context.Context, db *gorm.DB, p *programModel.Program, now time.Time) (Report, error) {
	var trainees []traineeModel.Trainee
	if err := db.WithContext(ctx).Scopes(traineeModel.ScopeActive).
		Where("trainee_program_id = ?", p.ProgramID).
		Order("trainee_created_at ASC").
		Find(&trainees).Error; err != nil {
		return Report{}, err
	}

	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, t := range trainees {
		if !seen[t.TraineeEmployeeID] {
			seen[t.TraineeEmployeeID] = true
			ids = append(ids, t.TraineeEmployeeID)
		}
	}
	names, err := EmployeeNames(ctx, db, ids)
	if err != nil {
		return Report{}, err
	}
	return Assemble(p, trainees, names, now), nil
}
