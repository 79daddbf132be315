package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/constants"
	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	leadModel "trainingcenter_backend/internals/features/registrations/leads/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
	whitelistModel "trainingcenter_backend/internals/features/registrations/whitelists/model"
	helper "trainingcenter_backend/internals/helpers"
	helperAuth "trainingcenter_backend/internals/helpers/auth"
)

/* ===============================
   in-memory store
=================================*/

type memStore struct {
	courses    map[uuid.UUID]courseModel.Course
	programs   map[uuid.UUID]programModel.Program
	leads      map[uuid.UUID]leadModel.Lead
	whitelists map[uuid.UUID]whitelistModel.Whitelist
	trainees   map[uuid.UUID]traineeModel.Trainee

	failCreateTrainee bool
}

func newMemStore() *memStore {
	return &memStore{
		courses:    map[uuid.UUID]courseModel.Course{},
		programs:   map[uuid.UUID]programModel.Program{},
		leads:      map[uuid.UUID]leadModel.Lead{},
		whitelists: map[uuid.UUID]whitelistModel.Whitelist{},
		trainees:   map[uuid.UUID]traineeModel.Trainee{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memStore) WithinTx(_ context.Context, fn func(Store) error) error {
	leads, whitelists, trainees := cloneMap(m.leads), cloneMap(m.whitelists), cloneMap(m.trainees)
	if err := fn(m); err != nil {
		m.leads, m.whitelists, m.trainees = leads, whitelists, trainees
		return err
	}
	return nil
}

func (m *memStore) FindCourse(_ context.Context, id uuid.UUID) (*courseModel.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memStore) FindProgram(_ context.Context, id uuid.UUID) (*programModel.Program, error) {
	p, ok := m.programs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *memStore) CreateLead(_ context.Context, l *leadModel.Lead) error {
	l.LeadID = uuid.New()
	m.leads[l.LeadID] = *l
	return nil
}

func (m *memStore) FindLead(_ context.Context, id uuid.UUID) (*leadModel.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *memStore) SaveLead(_ context.Context, l *leadModel.Lead) error {
	m.leads[l.LeadID] = *l
	return nil
}

func (m *memStore) CreateWhitelist(_ context.Context, w *whitelistModel.Whitelist) error {
	w.WhitelistID = uuid.New()
	m.whitelists[w.WhitelistID] = *w
	return nil
}

func (m *memStore) FindWhitelist(_ context.Context, id uuid.UUID) (*whitelistModel.Whitelist, error) {
	w, ok := m.whitelists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (m *memStore) SaveWhitelist(_ context.Context, w *whitelistModel.Whitelist) error {
	m.whitelists[w.WhitelistID] = *w
	return nil
}

func (m *memStore) CreateTrainee(_ context.Context, t *traineeModel.Trainee) error {
	if m.failCreateTrainee {
		return errors.New("connection reset")
	}
	t.TraineeID = uuid.New()
	m.trainees[t.TraineeID] = *t
	return nil
}

func (m *memStore) FindTrainee(_ context.Context, id uuid.UUID) (*traineeModel.Trainee, error) {
	t, ok := m.trainees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *memStore) SaveTrainee(_ context.Context, t *traineeModel.Trainee) error {
	m.trainees[t.TraineeID] = *t
	return nil
}

/* ===============================
   fixtures
=================================*/

type recorder struct{ msgs []string }

func (r *recorder) Notify(text string) { r.msgs = append(r.msgs, text) }

type fixture struct {
	store   *memStore
	svc     *Service
	notes   *recorder
	course  courseModel.Course
	program programModel.Program
	admin   *helperAuth.Session
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemStore()
	course := courseModel.Course{CourseID: uuid.New(), CourseName: "Pastry", CoursePrice: dec("20000")}
	inst := institutionModel.Institution{InstitutionID: uuid.New(), InstitutionName: "Centre Alger"}
	program := programModel.Program{
		ProgramID:            uuid.New(),
		ProgramCourseID:      course.CourseID,
		ProgramInstitutionID: inst.InstitutionID,
		ProgramStartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ProgramEndDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Course:               &course,
		Institution:          &inst,
	}
	st.courses[course.CourseID] = course
	st.programs[program.ProgramID] = program

	notes := &recorder{}
	svc := NewService(st, notes)
	svc.Now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }

	return &fixture{
		store:   st,
		svc:     svc,
		notes:   notes,
		course:  course,
		program: program,
		admin:   &helperAuth.Session{UserID: uuid.New(), Role: constants.RoleAdmin},
	}
}

func (f *fixture) addLead(status leadModel.LeadStatus) uuid.UUID {
	note := "call after 5pm"
	l := leadModel.Lead{
		LeadID:       uuid.New(),
		LeadFullName: "Amina B.",
		LeadPhone:    "0550000000",
		LeadCourseID: f.course.CourseID,
		LeadNote:     &note,
		LeadStatus:   status,
	}
	f.store.leads[l.LeadID] = l
	return l.LeadID
}

func (f *fixture) addWhitelist(status whitelistModel.WhitelistStatus) uuid.UUID {
	w := whitelistModel.Whitelist{
		WhitelistID:        uuid.New(),
		WhitelistFullName:  "Karim D.",
		WhitelistPhone:     "0660000000",
		WhitelistProgramID: f.program.ProgramID,
		WhitelistStatus:    status,
	}
	f.store.whitelists[w.WhitelistID] = w
	return w.WhitelistID
}

func isActive(s leadModel.LeadStatus) bool {
	for _, a := range leadModel.ActiveLeadStatuses {
		if a == s {
			return true
		}
	}
	return false
}

/* ===============================
   leads
=================================*/

func TestConfirmLeadCreatesBooking(t *testing.T) {
	f := newFixture(t)
	leadID := f.addLead(leadModel.LeadNew)

	w, err := f.svc.ConfirmLead(context.Background(), f.admin, leadID, f.program.ProgramID, nil)
	if err != nil {
		t.Fatalf("ConfirmLead: %v", err)
	}
	if w.WhitelistStatus != whitelistModel.WhitelistNew {
		t.Errorf("booking status = %q, want new", w.WhitelistStatus)
	}
	if w.WhitelistFullName != "Amina B." || w.WhitelistPhone != "0550000000" {
		t.Errorf("booking did not copy contact: %+v", w)
	}
	if w.WhitelistNote == nil || *w.WhitelistNote != "call after 5pm" {
		t.Errorf("booking note = %v", w.WhitelistNote)
	}
	if _, ok := f.store.whitelists[w.WhitelistID]; !ok {
		t.Fatal("booking not stored")
	}

	lead := f.store.leads[leadID]
	if lead.LeadStatus != leadModel.LeadConverted {
		t.Errorf("lead status = %q, want converted", lead.LeadStatus)
	}
	if isActive(lead.LeadStatus) {
		t.Error("converted lead still in the active list")
	}
	if lead.LeadWhitelistID == nil || *lead.LeadWhitelistID != w.WhitelistID {
		t.Error("lead does not point at its booking")
	}
}

func TestConfirmLeadRejectsProgramOfAnotherCourse(t *testing.T) {
	f := newFixture(t)
	other := f.program
	other.ProgramID = uuid.New()
	other.ProgramCourseID = uuid.New()
	f.store.programs[other.ProgramID] = other
	leadID := f.addLead(leadModel.LeadCalled)

	_, err := f.svc.ConfirmLead(context.Background(), f.admin, leadID, other.ProgramID, nil)
	if !errors.Is(err, ErrProgramCourseMismatch) {
		t.Fatalf("err = %v, want ErrProgramCourseMismatch", err)
	}
	if got := f.store.leads[leadID].LeadStatus; got != leadModel.LeadCalled {
		t.Errorf("lead status changed to %q", got)
	}
	if len(f.store.whitelists) != 0 {
		t.Error("booking created despite mismatch")
	}
}

func TestLeadTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   leadModel.LeadStatus
		action func(*fixture, uuid.UUID) error
		want   leadModel.LeadStatus
		ok     bool
	}{
		{"call new", leadModel.LeadNew, callLead, leadModel.LeadCalled, true},
		{"call called", leadModel.LeadCalled, callLead, leadModel.LeadCalled, false},
		{"cancel new", leadModel.LeadNew, cancelLead, leadModel.LeadCanceled, true},
		{"cancel called", leadModel.LeadCalled, cancelLead, leadModel.LeadCanceled, true},
		{"cancel canceled", leadModel.LeadCanceled, cancelLead, leadModel.LeadCanceled, false},
		{"call canceled", leadModel.LeadCanceled, callLead, leadModel.LeadCanceled, false},
		{"confirm converted", leadModel.LeadConverted, confirmLead, leadModel.LeadConverted, false},
		{"cancel converted", leadModel.LeadConverted, cancelLead, leadModel.LeadConverted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.addLead(tt.from)
			err := tt.action(f, id)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if got := f.store.leads[id].LeadStatus; got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func callLead(f *fixture, id uuid.UUID) error {
	_, err := f.svc.CallLead(context.Background(), id)
	return err
}

func cancelLead(f *fixture, id uuid.UUID) error {
	_, err := f.svc.CancelLead(context.Background(), id)
	return err
}

func confirmLead(f *fixture, id uuid.UUID) error {
	_, err := f.svc.ConfirmLead(context.Background(), f.admin, id, f.program.ProgramID, nil)
	return err
}

func TestCreateLeadNotifies(t *testing.T) {
	f := newFixture(t)
	wilaya := "Oran"
	l, err := f.svc.CreateLead(context.Background(), f.admin, &leadModel.Lead{
		LeadFullName: "Sara M.",
		LeadPhone:    "0770000000",
		LeadCourseID: f.course.CourseID,
		LeadWilaya:   &wilaya,
		LeadStatus:   leadModel.LeadConverted,
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if l.LeadStatus != leadModel.LeadNew || l.LeadEmployeeID != f.admin.UserID {
		t.Errorf("lead = %+v", l)
	}
	if len(f.notes.msgs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(f.notes.msgs))
	}

	_, err = f.svc.CreateLead(context.Background(), f.admin, &leadModel.Lead{LeadCourseID: uuid.New()})
	if fields := helper.ValidationErrors(err); fields["lead_course_id"] == nil {
		t.Errorf("unknown course: err = %v", err)
	}
}

/* ===============================
   whitelist
=================================*/

func registration() Registration {
	return Registration{
		Discount:       dec("2000"),
		InitialTranche: dec("5000"),
		InitialMethod:  traineeModel.PaymentCash,
	}
}

func TestConfirmWhitelistRegistersTrainee(t *testing.T) {
	f := newFixture(t)
	wID := f.addWhitelist(whitelistModel.WhitelistNew)

	tr, err := f.svc.ConfirmWhitelist(context.Background(), f.admin, wID, registration())
	if err != nil {
		t.Fatalf("ConfirmWhitelist: %v", err)
	}
	if !tr.TraineeTotalPrice.Equal(dec("18000")) {
		t.Errorf("total = %s, want 18000", tr.TraineeTotalPrice)
	}
	if !tr.TraineeRest.Equal(dec("13000")) {
		t.Errorf("rest = %s, want 13000", tr.TraineeRest)
	}
	if tr.TraineeFullName != "Karim D." || tr.TraineeProgramID != f.program.ProgramID {
		t.Errorf("trainee = %+v", tr)
	}
	if len(tr.TraineeProgramSnapshot) == 0 {
		t.Error("program snapshot missing")
	}

	w := f.store.whitelists[wID]
	if w.WhitelistStatus != whitelistModel.WhitelistConfirmed {
		t.Errorf("booking status = %q, want confirmed", w.WhitelistStatus)
	}
	if w.WhitelistTraineeID == nil || *w.WhitelistTraineeID != tr.TraineeID {
		t.Error("booking does not point at the trainee")
	}
	if len(f.notes.msgs) != 1 {
		t.Errorf("notifications = %d, want 1", len(f.notes.msgs))
	}
}

func TestConfirmWhitelistIsAtomic(t *testing.T) {
	f := newFixture(t)
	wID := f.addWhitelist(whitelistModel.WhitelistNew)
	f.store.failCreateTrainee = true

	if _, err := f.svc.ConfirmWhitelist(context.Background(), f.admin, wID, registration()); err == nil {
		t.Fatal("expected error")
	}
	if got := f.store.whitelists[wID].WhitelistStatus; got != whitelistModel.WhitelistNew {
		t.Errorf("booking status = %q, want new", got)
	}
	if len(f.store.trainees) != 0 {
		t.Error("trainee persisted after failure")
	}
	if len(f.notes.msgs) != 0 {
		t.Error("notified after failure")
	}
}

func TestWhitelistTerminalStates(t *testing.T) {
	for _, from := range []whitelistModel.WhitelistStatus{whitelistModel.WhitelistCanceled, whitelistModel.WhitelistConfirmed} {
		t.Run(string(from), func(t *testing.T) {
			f := newFixture(t)
			id := f.addWhitelist(from)
			if _, err := f.svc.CancelWhitelist(context.Background(), f.admin, id); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("cancel: err = %v", err)
			}
			if _, err := f.svc.ConfirmWhitelist(context.Background(), f.admin, id, registration()); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("confirm: err = %v", err)
			}
		})
	}
}

func TestConfirmWhitelistOverpaymentIsValidationError(t *testing.T) {
	f := newFixture(t)
	wID := f.addWhitelist(whitelistModel.WhitelistNew)
	reg := registration()
	reg.SecondTranche = dec("15000")

	_, err := f.svc.ConfirmWhitelist(context.Background(), f.admin, wID, reg)
	if fields := helper.ValidationErrors(err); fields == nil {
		t.Fatalf("err = %v, want field errors", err)
	}
	if got := f.store.whitelists[wID].WhitelistStatus; got != whitelistModel.WhitelistNew {
		t.Errorf("booking status = %q", got)
	}
}

/* ===============================
   trainees
=================================*/

func TestTraineePaymentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := registration()
	reg.FullName, reg.Phone, reg.ProgramID = "Yacine", "0551111111", f.program.ProgramID

	tr, err := f.svc.RegisterTrainee(ctx, f.admin, reg)
	if err != nil {
		t.Fatalf("RegisterTrainee: %v", err)
	}
	if !tr.TraineeRest.Equal(dec("13000")) {
		t.Fatalf("rest = %s", tr.TraineeRest)
	}

	tr, err = f.svc.ConfirmSecondTranche(ctx, f.admin, tr.TraineeID, traineeModel.PaymentPostalTransfer)
	if err != nil {
		t.Fatalf("ConfirmSecondTranche: %v", err)
	}
	if !tr.TraineeSecondTranche.Equal(dec("13000")) || !tr.TraineeRest.IsZero() {
		t.Errorf("second = %s rest = %s, want 13000 / 0", tr.TraineeSecondTranche, tr.TraineeRest)
	}
	if tr.TraineeSecondTrancheMethod == nil || *tr.TraineeSecondTrancheMethod != traineeModel.PaymentPostalTransfer {
		t.Error("second tranche method not recorded")
	}
}

func TestUpdateTraineeRecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := registration()
	reg.FullName, reg.Phone, reg.ProgramID = "Yacine", "0551111111", f.program.ProgramID
	tr, err := f.svc.RegisterTrainee(ctx, f.admin, reg)
	if err != nil {
		t.Fatal(err)
	}

	tr, err = f.svc.UpdateTrainee(ctx, f.admin, tr.TraineeID, func(t *traineeModel.Trainee) {
		t.TraineeDiscount = dec("0")
		t.TraineeTotalPrice = dec("1")
		t.TraineeRest = dec("1")
	})
	if err != nil {
		t.Fatalf("UpdateTrainee: %v", err)
	}
	if !tr.TraineeTotalPrice.Equal(dec("20000")) || !tr.TraineeRest.Equal(dec("15000")) {
		t.Errorf("total = %s rest = %s, want 20000 / 15000", tr.TraineeTotalPrice, tr.TraineeRest)
	}
}

func TestArchivedTraineeIsReadOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := registration()
	reg.FullName, reg.Phone, reg.ProgramID = "Yacine", "0551111111", f.program.ProgramID
	tr, err := f.svc.RegisterTrainee(ctx, f.admin, reg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ArchiveTrainee(ctx, f.admin, tr.TraineeID); err != nil {
		t.Fatalf("ArchiveTrainee: %v", err)
	}
	if f.store.trainees[tr.TraineeID].TraineeArchivedAt == nil {
		t.Fatal("archived_at not set")
	}
	if _, err := f.svc.ArchiveTrainee(ctx, f.admin, tr.TraineeID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second archive: err = %v", err)
	}
	if _, err := f.svc.ConfirmSecondTranche(ctx, f.admin, tr.TraineeID, traineeModel.PaymentCash); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirm on archived: err = %v", err)
	}
}

func TestScopedEmployeeCannotReachOtherInstitution(t *testing.T) {
	f := newFixture(t)
	employee := &helperAuth.Session{
		UserID:         uuid.New(),
		Role:           constants.RoleEmployee,
		InstitutionIDs: []uuid.UUID{uuid.New()},
	}
	wID := f.addWhitelist(whitelistModel.WhitelistNew)
	if _, err := f.svc.ConfirmWhitelist(context.Background(), employee, wID, registration()); !errors.Is(err, ErrForbiddenScope) {
		t.Errorf("err = %v, want ErrForbiddenScope", err)
	}

	employee.InstitutionIDs = []uuid.UUID{f.program.ProgramInstitutionID}
	if _, err := f.svc.ConfirmWhitelist(context.Background(), employee, wID, registration()); err != nil {
		t.Errorf("own institution: %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&TransitionError{Entity: "lead", Action: "call", Current: "canceled"}, 409},
		{ErrNotFound, 404},
		{ErrForbiddenScope, 403},
		{ErrProgramCourseMismatch, 422},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got, _ := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func (f *fixture) setCoursePrice(price string) {
	p := f.store.programs[f.program.ProgramID]
	c := *p.Course
	c.CoursePrice = dec(price)
	p.Course = &c
	f.store.programs[p.ProgramID] = p
}

func TestUpdateTraineeKeepsRegisteredPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := registration()
	reg.FullName, reg.Phone, reg.ProgramID = "Yacine", "0551111111", f.program.ProgramID
	tr, err := f.svc.RegisterTrainee(ctx, f.admin, reg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.ConfirmSecondTranche(ctx, f.admin, tr.TraineeID, traineeModel.PaymentCash); err != nil {
		t.Fatal(err)
	}

	editNote := func(note string) (*traineeModel.Trainee, error) {
		return f.svc.UpdateTrainee(ctx, f.admin, tr.TraineeID, func(t *traineeModel.Trainee) {
			t.TraineeNote = &note
		})
	}

	for _, price := range []string{"25000", "10000"} {
		f.setCoursePrice(price)
		got, err := editNote("course price now " + price)
		if err != nil {
			t.Fatalf("price %s: UpdateTrainee: %v", price, err)
		}
		if !got.TraineeTotalPrice.Equal(dec("18000")) || !got.TraineeRest.IsZero() {
			t.Errorf("price %s: total = %s rest = %s, want 18000 / 0", price, got.TraineeTotalPrice, got.TraineeRest)
		}
	}

	got, err := f.svc.UpdateTrainee(ctx, f.admin, tr.TraineeID, func(t *traineeModel.Trainee) {
		t.TraineeDiscount = dec("1000")
	})
	if err != nil {
		t.Fatalf("discount edit: %v", err)
	}
	if !got.TraineeTotalPrice.Equal(dec("19000")) || !got.TraineeRest.Equal(dec("1000")) {
		t.Errorf("discount edit: total = %s rest = %s, want 19000 / 1000", got.TraineeTotalPrice, got.TraineeRest)
	}
}

func TestUpdateTraineeProgramChangeUsesNewPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := registration()
	reg.FullName, reg.Phone, reg.ProgramID = "Yacine", "0551111111", f.program.ProgramID
	tr, err := f.svc.RegisterTrainee(ctx, f.admin, reg)
	if err != nil {
		t.Fatal(err)
	}

	course := courseModel.Course{CourseID: uuid.New(), CourseName: "Chocolate", CoursePrice: dec("30000")}
	other := f.program
	other.ProgramID = uuid.New()
	other.ProgramCourseID = course.CourseID
	other.Course = &course
	f.store.courses[course.CourseID] = course
	f.store.programs[other.ProgramID] = other

	got, err := f.svc.UpdateTrainee(ctx, f.admin, tr.TraineeID, func(t *traineeModel.Trainee) {
		t.TraineeProgramID = other.ProgramID
	})
	if err != nil {
		t.Fatalf("UpdateTrainee: %v", err)
	}
	if !got.TraineeTotalPrice.Equal(dec("28000")) || !got.TraineeRest.Equal(dec("23000")) {
		t.Errorf("total = %s rest = %s, want 28000 / 23000", got.TraineeTotalPrice, got.TraineeRest)
	}
	if price, ok := got.SnapshotPrice(); !ok || !price.Equal(dec("30000")) {
		t.Errorf("snapshot price = %s (%v), want 30000", price, ok)
	}
}

func TestUpdateLeadOnlyWhileActive(t *testing.T) {
	rename := func(l *leadModel.Lead) error {
		l.LeadFullName = "Amina Benali"
		return nil
	}
	tests := []struct {
		from leadModel.LeadStatus
		ok   bool
	}{
		{leadModel.LeadNew, true},
		{leadModel.LeadCalled, true},
		{leadModel.LeadCanceled, false},
		{leadModel.LeadConverted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			f := newFixture(t)
			id := f.addLead(tt.from)
			bookingID := uuid.New()
			if tt.from == leadModel.LeadConverted {
				l := f.store.leads[id]
				l.LeadWhitelistID = &bookingID
				f.store.leads[id] = l
			}

			_, err := f.svc.UpdateLead(context.Background(), id, rename)
			stored := f.store.leads[id]
			if tt.ok {
				if err != nil {
					t.Fatalf("UpdateLead: %v", err)
				}
				if stored.LeadFullName != "Amina Benali" {
					t.Errorf("name = %q", stored.LeadFullName)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if stored.LeadStatus != tt.from || stored.LeadFullName != "Amina B." {
				t.Errorf("lead changed: %+v", stored)
			}
			if tt.from == leadModel.LeadConverted && (stored.LeadWhitelistID == nil || *stored.LeadWhitelistID != bookingID) {
				t.Error("converted lead lost its booking")
			}
		})
	}
}

func TestUpdateLeadUnknownCourse(t *testing.T) {
	f := newFixture(t)
	id := f.addLead(leadModel.LeadNew)
	_, err := f.svc.UpdateLead(context.Background(), id, func(l *leadModel.Lead) error {
		l.LeadCourseID = uuid.New()
		return nil
	})
	if fields := helper.ValidationErrors(err); fields["lead_course_id"] == nil {
		t.Fatalf("err = %v, want lead_course_id error", err)
	}
	if f.store.leads[id].LeadCourseID != f.course.CourseID {
		t.Error("course changed despite error")
	}
}
