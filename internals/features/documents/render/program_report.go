package render

import (
	"fmt"
	"strconv"
	"time"

	"trainingcenter_backend/internals/features/documents/report"
)

var reportColumns = []struct {
	label string
	w     float64
	align string
}{
	{"Trainee", 58, "L"},
	{"Phone", 32, "L"},
	{"Total", 30, "R"},
	{"Paid", 30, "R"},
	{"Unpaid", 30, "R"},
}

// ProgramReport renders the roster of a program grouped by employee.
func ProgramReport(h Header, r report.Report, now time.Time) ([]byte, error) {
	d := newDoc("P", "Program report "+r.Program.CourseName, now)
	d.footer(r.Program.CourseName)
	pdf := d.pdf
	pdf.AddPage()
	d.header(h)
	d.title("PROGRAM REPORT")

	d.field("Course", r.Program.CourseName)
	d.field("Trainer", r.Program.TrainerName)
	d.field("Period", r.Program.StartDate+" - "+r.Program.EndDate)
	d.field("Status", string(r.Program.Status))
	pdf.Ln(4)

	tableHead := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		for _, c := range reportColumns {
			pdf.CellFormat(c.w, 7, c.label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	line := func(values [5]string, style string) {
		pdf.SetFont("Helvetica", style, 9)
		for i, c := range reportColumns {
			pdf.CellFormat(c.w, 6, d.tr(values[i]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	summary := func(label string, s report.Summary) {
		line([5]string{label, strconv.Itoa(s.TotalTrainees) + " trainees",
			Money(s.TotalPrice), Money(s.TotalPaid), Money(s.TotalUnpaid)}, "B")
	}

	for _, sec := range r.Employees {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, d.tr("Registered by "+sec.EmployeeName), "", 1, "L", false, 0, "")
		tableHead()
		for _, l := range sec.Trainees {
			line([5]string{l.FullName, l.Phone, Money(l.TotalPrice), Money(l.PaidAmount), Money(l.UnpaidAmount)}, "")
		}
		summary("Subtotal", sec.Summary)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Overall", "", 1, "L", false, 0, "")
	tableHead()
	summary("Total", r.Summary)
	if len(r.Employees) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "No active trainees.", "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", r.GeneratedAt.Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")
	return d.bytes()
}
