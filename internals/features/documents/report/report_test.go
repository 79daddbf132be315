package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	courseModel "trainingcenter_backend/internals/features/catalog/courses/model"
	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func trainee(name string, employee uuid.UUID, total, initial, second string) traineeModel.Trainee {
	t := traineeModel.Trainee{
		TraineeID:             uuid.New(),
		TraineeFullName:       name,
		TraineeEmployeeID:     employee,
		TraineeTotalPrice:     d(total),
		TraineeInitialTranche: d(initial),
		TraineeSecondTranche:  d(second),
	}
	t.TraineeRest = t.TraineeTotalPrice.Sub(t.Paid())
	return t
}

func TestAssembleGroupsByEmployee(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	p := &programModel.Program{
		ProgramID:        uuid.New(),
		ProgramStartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		ProgramEndDate:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Course:           &courseModel.Course{CourseName: "Pastry"},
	}
	roster := []traineeModel.Trainee{
		trainee("Zed", alice, "18000", "5000", "0"),
		trainee("Amel", alice, "20000", "10000", "10000"),
		trainee("Nour", bob, "15000", "3000", "2000"),
	}
	r := Assemble(p, roster, map[uuid.UUID]string{alice: "Alice", bob: "Bob"}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	if len(r.Employees) != 2 {
		t.Fatalf("sections = %d, want 2", len(r.Employees))
	}
	a := r.Employees[0]
	if a.EmployeeName != "Alice" || a.Summary.TotalTrainees != 2 {
		t.Errorf("first section = %s/%d", a.EmployeeName, a.Summary.TotalTrainees)
	}
	if a.Trainees[0].FullName != "Amel" {
		t.Errorf("lines not sorted by name: %s first", a.Trainees[0].FullName)
	}
	if !a.Summary.TotalPaid.Equal(d("25000")) || !a.Summary.TotalUnpaid.Equal(d("13000")) || !a.Summary.TotalPrice.Equal(d("38000")) {
		t.Errorf("alice summary = %+v", a.Summary)
	}
	if r.Program.Status != programModel.ProgramCompleted || r.Program.CourseName != "Pastry" {
		t.Errorf("header = %+v", r.Program)
	}

	if r.Summary.TotalTrainees != 3 || !r.Summary.TotalPaid.Equal(d("30000")) || !r.Summary.TotalUnpaid.Equal(d("23000")) {
		t.Errorf("overall summary = %+v", r.Summary)
	}
}

func TestSummariesEqualSumOfSections(t *testing.T) {
	var roster []traineeModel.Trainee
	employees := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i := 0; i < 12; i++ {
		roster = append(roster, trainee("t", employees[i%3], "1000", "100", "50"))
	}
	r := Assemble(&programModel.Program{}, roster, nil, time.Now())

	var sum Summary
	for _, s := range r.Employees {
		sum.TotalTrainees += s.Summary.TotalTrainees
		sum.TotalPaid = sum.TotalPaid.Add(s.Summary.TotalPaid)
		sum.TotalUnpaid = sum.TotalUnpaid.Add(s.Summary.TotalUnpaid)
		sum.TotalPrice = sum.TotalPrice.Add(s.Summary.TotalPrice)
	}
	if sum.TotalTrainees != r.Summary.TotalTrainees ||
		!sum.TotalPaid.Equal(r.Summary.TotalPaid) ||
		!sum.TotalUnpaid.Equal(r.Summary.TotalUnpaid) ||
		!sum.TotalPrice.Equal(r.Summary.TotalPrice) {
		t.Errorf("sections %+v != overall %+v", sum, r.Summary)
	}
	if r.Employees[0].EmployeeName != r.Employees[0].EmployeeID.String() {
		t.Error("unknown employee should fall back to id")
	}
}

func TestAssembleEmptyRoster(t *testing.T) {
	r := Assemble(&programModel.Program{}, nil, nil, time.Now())
	if len(r.Employees) != 0 || r.Summary.TotalTrainees != 0 || !r.Summary.TotalPaid.IsZero() {
		t.Errorf("empty report = %+v", r)
	}
}
