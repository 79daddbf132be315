// Package report groups a program's trainee roster by registering employee.
// Every summary is computed from the lines it covers.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

type Line struct {
	TraineeID    uuid.UUID       `json:"trainee_id"`
	FullName     string          `json:"full_name"`
	Phone        string          `json:"phone"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Discount     decimal.Decimal `json:"discount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
	RegisteredAt time.Time       `json:"registered_at"`
}

type Summary struct {
	TotalTrainees int             `json:"total_trainees"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalUnpaid   decimal.Decimal `json:"total_unpaid"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

type EmployeeSection struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Trainees     []Line    `json:"trainees"`
	Summary      Summary   `json:"summary"`
}

type ProgramHeader struct {
	ProgramID       uuid.UUID                  `json:"program_id"`
	CourseName      string                     `json:"course_name"`
	InstitutionName string                     `json:"institution_name"`
	TrainerName     string                     `json:"trainer_name"`
	StartDate       string                     `json:"start_date"`
	EndDate         string                     `json:"end_date"`
	Status          programModel.ProgramStatus `json:"status"`
}

type Report struct {
	Program     ProgramHeader     `json:"program"`
	Employees   []EmployeeSection `json:"employees"`
	Summary     Summary           `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}

func LineOf(t *traineeModel.Trainee) Line {
	return Line{
		TraineeID:    t.TraineeID,
		FullName:     t.TraineeFullName,
		Phone:        t.TraineePhone,
		TotalPrice:   t.TraineeTotalPrice,
		Discount:     t.TraineeDiscount,
		PaidAmount:   t.Paid(),
		UnpaidAmount: t.TraineeRest,
		RegisteredAt: t.TraineeCreatedAt,
	}
}

func Summarize(lines []Line) Summary {
	s := Summary{TotalTrainees: len(lines)}
	for _, l := range lines {
		s.TotalPaid = s.TotalPaid.Add(l.PaidAmount)
		s.TotalUnpaid = s.TotalUnpaid.Add(l.UnpaidAmount)
		s.TotalPrice = s.TotalPrice.Add(l.TotalPrice)
	}
	return s
}

func HeaderOf(p *programModel.Program, now time.Time) ProgramHeader {
	h := ProgramHeader{
		ProgramID: p.ProgramID,
		StartDate: p.ProgramStartDate.Format("2006-01-02"),
		EndDate:   p.ProgramEndDate.Format("2006-01-02"),
		Status:    p.StatusAt(now),
	}
	if p.Course != nil {
		h.CourseName = p.Course.CourseName
	}
	if p.Institution != nil {
		h.InstitutionName = p.Institution.InstitutionName
	}
	if p.Trainer != nil {
		h.TrainerName = p.Trainer.TrainerFullName
	}
	return h
}

// Assemble builds the per-employee breakdown. names maps employee ids to
// display names; unknown ids fall back to the id itself.
func Assemble(p *programModel.Program, trainees []traineeModel.Trainee, names map[uuid.UUID]string, now time.Time) Report {
	byEmployee := map[uuid.UUID][]Line{}
	all := make([]Line, 0, len(trainees))
	for i := range trainees {
		l := LineOf(&trainees[i])
		byEmployee[trainees[i].TraineeEmployeeID] = append(byEmployee[trainees[i].TraineeEmployeeID], l)
		all = append(all, l)
	}

	sections := make([]EmployeeSection, 0, len(byEmployee))
	for id, lines := range byEmployee {
		sort.SliceStable(lines, func(i, j int) bool {
			return strings.ToLower(lines[i].FullName) < strings.ToLower(lines[j].FullName)
		})
		name := names[id]
		if name == "" {
			name = id.String()
		}
		sections = append(sections, EmployeeSection{
			EmployeeID:   id,
			EmployeeName: name,
			Trainees:     lines,
			Summary:      Summarize(lines),
		})
	}
	sort.Slice(sections, func(i, j int) bool {
		a, b := strings.ToLower(sections[i].EmployeeName), strings.ToLower(sections[j].EmployeeName)
		if a != b {
			return a < b
		}
		return sections[i].EmployeeID.String() < sections[j].EmployeeID.String()
	})

	return Report{
		Program:     HeaderOf(p, now),
		Employees:   sections,
		Summary:     Summarize(all),
		GeneratedAt: now,
	}
}
