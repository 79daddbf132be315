package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	leadModel "trainingcenter_backend/internals/features/registrations/leads/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
	whitelistModel "trainingcenter_backend/internals/features/registrations/whitelists/model"
)

// Store is the persistence the state machine needs. Find* return ErrNotFound for missing rows.
type Store interface {
	// WithinTx runs fn against a transactional store; any error rolls everything back.
	WithinTx(ctx context.Context, fn func(Store) error) error

	FindCourse(ctx context.Context, id uuid.UUID) (*courseModel.Course, error)
	FindProgram(ctx context.Context, id uuid.UUID) (*programModel.Program, error)

	CreateLead(ctx context.Context, l *leadModel.Lead) error
	FindLead(ctx context.Context, id uuid.UUID) (*leadModel.Lead, error)
	SaveLead(ctx context.Context, l *leadModel.Lead) error

	CreateWhitelist(ctx context.Context, w *whitelistModel.Whitelist) error
	FindWhitelist(ctx context.Context, id uuid.UUID) (*whitelistModel.Whitelist, error)
	SaveWhitelist(ctx context.Context, w *whitelistModel.Whitelist) error

	CreateTrainee(ctx context.Context, t *traineeModel.Trainee) error
	FindTrainee(ctx context.Context, id uuid.UUID) (*traineeModel.Trainee, error)
	SaveTrainee(ctx context.Context, t *traineeModel.Trainee) error
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// rows read for a transition are locked until the transaction ends
func (s *GormStore) locked(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *GormStore) FindCourse(ctx context.Context, id uuid.UUID) (*courseModel.Course, error) {
	var c courseModel.Course
	if err := s.DB.WithContext(ctx).Scopes(courseModel.ScopeAlive).
		First(&c, "course_id = ?", id).Error; err != nil {
		return nil, notFound("course", err)
	}
	return &c, nil
}

func (s *GormStore) FindProgram(ctx context.Context, id uuid.UUID) (*programModel.Program, error) {
	var p programModel.Program
	if err := s.DB.WithContext(ctx).Scopes(programModel.ScopeAlive, programModel.WithRefs).
		First(&p, "program_id = ?", id).Error; err != nil {
		return nil, notFound("program", err)
	}
	return &p, nil
}

func (s *GormStore) CreateLead(ctx context.Context, l *leadModel.Lead) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (s *GormStore) FindLead(ctx context.Context, id uuid.UUID) (*leadModel.Lead, error) {
	var l leadModel.Lead
	if err := s.locked(ctx).First(&l, "lead_id = ?", id).Error; err != nil {
		return nil, notFound("lead", err)
	}
	return &l, nil
}

func (s *GormStore) SaveLead(ctx context.Context, l *leadModel.Lead) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (s *GormStore) CreateWhitelist(ctx context.Context, w *whitelistModel.Whitelist) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(w).Error
}

func (s *GormStore) FindWhitelist(ctx context.Context, id uuid.UUID) (*whitelistModel.Whitelist, error) {
	var w whitelistModel.Whitelist
	if err := s.locked(ctx).First(&w, "whitelist_id = ?", id).Error; err != nil {
		return nil, notFound("whitelist", err)
	}
	return &w, nil
}

func (s *GormStore) SaveWhitelist(ctx context.Context, w *whitelistModel.Whitelist) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Save(w).Error
}

func (s *GormStore) CreateTrainee(ctx context.Context, t *traineeModel.Trainee) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (s *GormStore) FindTrainee(ctx context.Context, id uuid.UUID) (*traineeModel.Trainee, error) {
	var t traineeModel.Trainee
	if err := s.locked(ctx).First(&t, "trainee_id = ?", id).Error; err != nil {
		return nil, notFound("trainee", err)
	}
	return &t, nil
}

func (s *GormStore) SaveTrainee(ctx context.Context, t *traineeModel.Trainee) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}
