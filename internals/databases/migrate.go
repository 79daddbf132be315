package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	trainerModel "trainingcenter_backend/internals/features/catalog/trainers/model"
	expenseModel "trainingcenter_backend/internals/features/finance/expenses/model"
	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	leadModel "trainingcenter_backend/internals/features/registrations/leads/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
	whitelistModel "trainingcenter_backend/internals/features/registrations/whitelists/model"
	authModel "trainingcenter_backend/internals/features/users/auth/model"
	userModel "trainingcenter_backend/internals/features/users/users/model"
)

// Models in dependency order.
func Models() []any {
	return []any{
		&userModel.User{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&courseModel.Course{},
		&institutionModel.Institution{},
		&trainerModel.Trainer{},
		&programModel.Program{},
		&leadModel.Lead{},
		&whitelistModel.Whitelist{},
		&traineeModel.Trainee{},
		&expenseModel.Expense{},
	}
}

// checks gorm tags cannot express
var constraints = []string{
	`DO $$ BEGIN
	   ALTER TABLE programs ADD CONSTRAINT ck_programs_dates CHECK (program_start_date < program_end_date);
	 EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
	   ALTER TABLE expenses ADD CONSTRAINT ck_expenses_amount CHECK (expense_amount > 0);
	 EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
	   ALTER TABLE trainees ADD CONSTRAINT ck_trainees_money CHECK (
	     trainee_discount >= 0 AND trainee_initial_tranche >= 0 AND trainee_second_tranche >= 0 AND trainee_rest >= 0);
	 EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
	   ALTER TABLE courses ADD CONSTRAINT ck_courses_price CHECK (course_price >= 0);
	 EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint: %w", err)
		}
	}
	log.Printf("[INFO] migrated %d tables", len(Models()))
	return nil
}
