// Package booking moves a prospect from lead to whitelist booking to trainee.
// Every transition runs in one store transaction.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	leadModel "trainingcenter_backend/internals/features/registrations/leads/model"
	"trainingcenter_backend/internals/features/registrations/pricing"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
	whitelistModel "trainingcenter_backend/internals/features/registrations/whitelists/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
	"trainingcenter_backend/internals/helpers/notify"
)

// Registration is the trainee payload shared by direct registration and whitelist confirmation.
type Registration struct {
	FullName       string
	Email          *string
	Phone          string
	ProgramID      uuid.UUID
	Discount       decimal.Decimal
	InitialTranche decimal.Decimal
	InitialMethod  traineeModel.PaymentMethod
	SecondTranche  decimal.Decimal
	SecondMethod   *traineeModel.PaymentMethod
	Note           *string
}

type Service struct {
	Store    Store
	Notifier notify.Notifier
	Now      func() time.Time
}

func NewService(store Store, n notify.Notifier) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	return &Service{Store: store, Notifier: n, Now: time.Now}
}

func (s *Service) authorizeProgram(ctx context.Context, st Store, sess *helperAuth.Session, programID uuid.UUID) (*programModel.Program, error) {
	p, err := st.FindProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !sess.CanAccessInstitution(p.ProgramInstitutionID) {
		return nil, ErrForbiddenScope
	}
	return p, nil
}

/* ===============================
   Leads
=================================*/

func (s *Service) CreateLead(ctx context.Context, sess *helperAuth.Session, l *leadModel.Lead) (*leadModel.Lead, error) {
	course, err := s.Store.FindCourse(ctx, l.LeadCourseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, helper.FieldErrors{"lead_course_id": {"does not exist"}}
		}
		return nil, err
	}
	l.LeadID = uuid.Nil
	l.LeadStatus = leadModel.LeadNew
	l.LeadEmployeeID = sess.UserID
	l.LeadWhitelistID = nil
	if err := s.Store.CreateLead(ctx, l); err != nil {
		return nil, err
	}
	wilaya := ""
	if l.LeadWilaya != nil {
		wilaya = *l.LeadWilaya
	}
	s.Notifier.Notify(notify.NewLeadMessage(l.LeadFullName, l.LeadPhone, course.CourseName, wilaya))
	return l, nil
}

// UpdateLead edits an active lead with the row locked.
func (s *Service) UpdateLead(ctx context.Context, id uuid.UUID, apply func(*leadModel.Lead) error) (*leadModel.Lead, error) {
	var out *leadModel.Lead
	err := s.Store.WithinTx(ctx, func(st Store) error {
		l, err := st.FindLead(ctx, id)
		if err != nil {
			return err
		}
		if !l.Editable() {
			return &TransitionError{Entity: "lead", Action: "edit", Current: string(l.LeadStatus)}
		}
		course := l.LeadCourseID
		if err := apply(l); err != nil {
			return err
		}
		if l.LeadCourseID != course {
			if _, err := st.FindCourse(ctx, l.LeadCourseID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return helper.FieldErrors{"lead_course_id": {"does not exist"}}
				}
				return err
			}
		}
		if err := st.SaveLead(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

func (s *Service) transitionLead(ctx context.Context, id uuid.UUID, to leadModel.LeadStatus, action string, stamp func(*leadModel.Lead, time.Time)) (*leadModel.Lead, error) {
	var out *leadModel.Lead
	err := s.Store.WithinTx(ctx, func(st Store) error {
		l, err := st.FindLead(ctx, id)
		if err != nil {
			return err
		}
		if !l.CanTransition(to) {
			return &TransitionError{Entity: "lead", Action: action, Current: string(l.LeadStatus)}
		}
		l.LeadStatus = to
		stamp(l, s.Now())
		if err := st.SaveLead(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	return out, err
}

func (s *Service) CallLead(ctx context.Context, id uuid.UUID) (*leadModel.Lead, error) {
	return s.transitionLead(ctx, id, leadModel.LeadCalled, "call", func(l *leadModel.Lead, now time.Time) {
		l.LeadCalledAt = &now
	})
}

func (s *Service) CancelLead(ctx context.Context, id uuid.UUID) (*leadModel.Lead, error) {
	return s.transitionLead(ctx, id, leadModel.LeadCanceled, "cancel", func(l *leadModel.Lead, now time.Time) {
		l.LeadCanceledAt = &now
	})
}

// ConfirmLead converts the lead into a new whitelist booking on the given program.
// The lead is kept, marked converted, and points at the booking.
func (s *Service) ConfirmLead(ctx context.Context, sess *helperAuth.Session, id, programID uuid.UUID, note *string) (*whitelistModel.Whitelist, error) {
	var out *whitelistModel.Whitelist
	err := s.Store.WithinTx(ctx, func(st Store) error {
		l, err := st.FindLead(ctx, id)
		if err != nil {
			return err
		}
		if !l.CanTransition(leadModel.LeadConverted) {
			return &TransitionError{Entity: "lead", Action: "confirm", Current: string(l.LeadStatus)}
		}
		p, err := s.authorizeProgram(ctx, st, sess, programID)
		if err != nil {
			return err
		}
		if p.ProgramCourseID != l.LeadCourseID {
			return ErrProgramCourseMismatch
		}

		if note == nil {
			note = l.LeadNote
		}
		w := &whitelistModel.Whitelist{
			WhitelistFullName:   l.LeadFullName,
			WhitelistPhone:      l.LeadPhone,
			WhitelistProgramID:  p.ProgramID,
			WhitelistNote:       note,
			WhitelistStatus:     whitelistModel.WhitelistNew,
			WhitelistEmployeeID: sess.UserID,
			WhitelistLeadID:     &l.LeadID,
		}
		if err := st.CreateWhitelist(ctx, w); err != nil {
			return err
		}

		now := s.Now()
		l.LeadStatus = leadModel.LeadConverted
		l.LeadConvertedAt = &now
		l.LeadWhitelistID = &w.WhitelistID
		if err := st.SaveLead(ctx, l); err != nil {
			return err
		}
		out = w
		return nil
	})
	return out, err
}

/* ===============================
   Whitelist
=================================*/

func (s *Service) CreateWhitelist(ctx context.Context, sess *helperAuth.Session, w *whitelistModel.Whitelist) (*whitelistModel.Whitelist, error) {
	if _, err := s.authorizeProgram(ctx, s.Store, sess, w.WhitelistProgramID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, helper.FieldErrors{"whitelist_program_id": {"does not exist"}}
		}
		return nil, err
	}
	w.WhitelistID = uuid.Nil
	w.WhitelistStatus = whitelistModel.WhitelistNew
	w.WhitelistEmployeeID = sess.UserID
	w.WhitelistTraineeID = nil
	if err := s.Store.CreateWhitelist(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) CancelWhitelist(ctx context.Context, sess *helperAuth.Session, id uuid.UUID) (*whitelistModel.Whitelist, error) {
	var out *whitelistModel.Whitelist
	err := s.Store.WithinTx(ctx, func(st Store) error {
		w, err := st.FindWhitelist(ctx, id)
		if err != nil {
			return err
		}
		if !w.CanTransition(whitelistModel.WhitelistCanceled) {
			return &TransitionError{Entity: "whitelist", Action: "cancel", Current: string(w.WhitelistStatus)}
		}
		if _, err := s.authorizeProgram(ctx, st, sess, w.WhitelistProgramID); err != nil {
			return err
		}
		now := s.Now()
		w.WhitelistStatus = whitelistModel.WhitelistCanceled
		w.WhitelistCanceledAt = &now
		if err := st.SaveWhitelist(ctx, w); err != nil {
			return err
		}
		out = w
		return nil
	})
	return out, err
}

// ConfirmWhitelist registers the booked person as a trainee of the booked program.
// Name and phone default to the booking's. Trainee creation and booking
// confirmation commit together or not at all.
func (s *Service) ConfirmWhitelist(ctx context.Context, sess *helperAuth.Session, id uuid.UUID, reg Registration) (*traineeModel.Trainee, error) {
	var (
		out     *traineeModel.Trainee
		program *programModel.Program
	)
	err := s.Store.WithinTx(ctx, func(st Store) error {
		w, err := st.FindWhitelist(ctx, id)
		if err != nil {
			return err
		}
		if !w.CanTransition(whitelistModel.WhitelistConfirmed) {
			return &TransitionError{Entity: "whitelist", Action: "confirm", Current: string(w.WhitelistStatus)}
		}

		reg.ProgramID = w.WhitelistProgramID
		if strings.TrimSpace(reg.FullName) == "" {
			reg.FullName = w.WhitelistFullName
		}
		if strings.TrimSpace(reg.Phone) == "" {
			reg.Phone = w.WhitelistPhone
		}
		if reg.Note == nil {
			reg.Note = w.WhitelistNote
		}

		t, p, err := s.buildTrainee(ctx, st, sess, reg)
		if err != nil {
			return err
		}
		if err := st.CreateTrainee(ctx, t); err != nil {
			return err
		}

		now := s.Now()
		w.WhitelistStatus = whitelistModel.WhitelistConfirmed
		w.WhitelistConfirmedAt = &now
		w.WhitelistTraineeID = &t.TraineeID
		if err := st.SaveWhitelist(ctx, w); err != nil {
			return err
		}
		out, program = t, p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyTrainee(out, program)
	return out, nil
}

/* ===============================
   Trainees
=================================*/

func (s *Service) RegisterTrainee(ctx context.Context, sess *helperAuth.Session, reg Registration) (*traineeModel.Trainee, error) {
	var (
		out     *traineeModel.Trainee
		program *programModel.Program
	)
	err := s.Store.WithinTx(ctx, func(st Store) error {
		t, p, err := s.buildTrainee(ctx, st, sess, reg)
		if err != nil {
			return err
		}
		if err := st.CreateTrainee(ctx, t); err != nil {
			return err
		}
		out, program = t, p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyTrainee(out, program)
	return out, nil
}

func (s *Service) buildTrainee(ctx context.Context, st Store, sess *helperAuth.Session, reg Registration) (*traineeModel.Trainee, *programModel.Program, error) {
	fe := helper.FieldErrors{}
	if strings.TrimSpace(reg.FullName) == "" {
		fe.Add("trainee_full_name", "is required")
	}
	if strings.TrimSpace(reg.Phone) == "" {
		fe.Add("trainee_phone", "is required")
	}
	if reg.InitialMethod == "" {
		reg.InitialMethod = traineeModel.PaymentCash
	}
	checkMethods(fe, reg.InitialMethod, reg.SecondMethod)

	p, err := s.authorizeProgram(ctx, st, sess, reg.ProgramID)
	if errors.Is(err, ErrNotFound) {
		fe.Add("trainee_program_id", "does not exist")
	} else if err != nil {
		return nil, nil, err
	}
	if !fe.Empty() {
		return nil, nil, fe
	}

	t := &traineeModel.Trainee{
		TraineeFullName:             strings.TrimSpace(reg.FullName),
		TraineeEmail:                reg.Email,
		TraineePhone:                strings.TrimSpace(reg.Phone),
		TraineeProgramID:            p.ProgramID,
		TraineeEmployeeID:           sess.UserID,
		TraineeDiscount:             reg.Discount,
		TraineeInitialTranche:       reg.InitialTranche,
		TraineeInitialTrancheMethod: reg.InitialMethod,
		TraineeSecondTranche:        reg.SecondTranche,
		TraineeSecondTrancheMethod:  reg.SecondMethod,
		TraineeNote:                 reg.Note,
	}
	if err := reprice(t, p); err != nil {
		return nil, nil, err
	}
	if err := t.SetSnapshot(p); err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

func checkMethods(fe helper.FieldErrors, initial traineeModel.PaymentMethod, second *traineeModel.PaymentMethod) {
	if !initial.Valid() {
		fe.Add("trainee_initial_tranche_method", "must be one of: cash postal_transfer mobile_postal")
	}
	if second != nil && !second.Valid() {
		fe.Add("trainee_second_tranche_method", "must be one of: cash postal_transfer mobile_postal")
	}
}

// reprice recomputes total and rest from the program's current course price.
func reprice(t *traineeModel.Trainee, p *programModel.Program) error {
	var price *decimal.Decimal
	if p != nil && p.Course != nil {
		v := p.Course.CoursePrice
		price = &v
	}
	return repriceAt(t, price)
}

func repriceAt(t *traineeModel.Trainee, price *decimal.Decimal) error {
	in := t.PricingInput(price)
	if err := pricing.Validate(in); err != nil {
		return err
	}
	t.ApplyQuote(pricing.Compute(in))
	return nil
}

func (s *Service) notifyTrainee(t *traineeModel.Trainee, p *programModel.Program) {
	course := ""
	if p != nil && p.Course != nil {
		course = p.Course.CourseName
	}
	s.Notifier.Notify(notify.NewTraineeMessage(t.TraineeFullName, course, t.Paid().StringFixed(2), t.TraineeRest.StringFixed(2)))
}

func (s *Service) mutateTrainee(ctx context.Context, sess *helperAuth.Session, id uuid.UUID, action string, fn func(st Store, t *traineeModel.Trainee, p *programModel.Program) error) (*traineeModel.Trainee, error) {
	var out *traineeModel.Trainee
	err := s.Store.WithinTx(ctx, func(st Store) error {
		t, err := st.FindTrainee(ctx, id)
		if err != nil {
			return err
		}
		if t.TraineeArchivedAt != nil {
			return &TransitionError{Entity: "trainee", Action: action, Current: "archived"}
		}
		p, err := s.authorizeProgram(ctx, st, sess, t.TraineeProgramID)
		if err != nil {
			return err
		}
		if err := fn(st, t, p); err != nil {
			return err
		}
		if err := st.SaveTrainee(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

// UpdateTrainee applies edits then recomputes the derived money fields; client totals are never trusted.
// The price is the one frozen at registration until the trainee moves to another program.
func (s *Service) UpdateTrainee(ctx context.Context, sess *helperAuth.Session, id uuid.UUID, apply func(*traineeModel.Trainee)) (*traineeModel.Trainee, error) {
	return s.mutateTrainee(ctx, sess, id, "update", func(st Store, t *traineeModel.Trainee, p *programModel.Program) error {
		before := t.TraineeProgramID
		apply(t)

		fe := helper.FieldErrors{}
		checkMethods(fe, t.TraineeInitialTrancheMethod, t.TraineeSecondTrancheMethod)
		if !fe.Empty() {
			return fe
		}

		if t.TraineeProgramID == before {
			if price, ok := t.SnapshotPrice(); ok {
				return repriceAt(t, &price)
			}
			if err := reprice(t, p); err != nil {
				return err
			}
			return t.SetSnapshot(p)
		}

		np, err := s.authorizeProgram(ctx, st, sess, t.TraineeProgramID)
		if errors.Is(err, ErrNotFound) {
			return helper.FieldErrors{"trainee_program_id": {"does not exist"}}
		}
		if err != nil {
			return err
		}
		if err := reprice(t, np); err != nil {
			return err
		}
		return t.SetSnapshot(np)
	})
}

// ConfirmSecondTranche settles the remaining balance with the given method.
func (s *Service) ConfirmSecondTranche(ctx context.Context, sess *helperAuth.Session, id uuid.UUID, method traineeModel.PaymentMethod) (*traineeModel.Trainee, error) {
	if !method.Valid() {
		return nil, helper.FieldErrors{"trainee_second_tranche_method": {"must be one of: cash postal_transfer mobile_postal"}}
	}
	return s.mutateTrainee(ctx, sess, id, "confirm second tranche of", func(_ Store, t *traineeModel.Trainee, _ *programModel.Program) error {
		q := pricing.ConfirmSecondTranche(t.Quote())
		t.ApplyQuote(q)
		now := s.Now()
		t.TraineeSecondTrancheMethod = &method
		t.TraineeSecondTrancheConfirmedAt = &now
		return nil
	})
}

// ArchiveTrainee hides the trainee from active lists; statistics keep counting it.
func (s *Service) ArchiveTrainee(ctx context.Context, sess *helperAuth.Session, id uuid.UUID) (*traineeModel.Trainee, error) {
	return s.mutateTrainee(ctx, sess, id, "archive", func(_ Store, t *traineeModel.Trainee, _ *programModel.Program) error {
		now := s.Now()
		t.TraineeArchivedAt = &now
		return nil
	})
}
