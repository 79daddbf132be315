package render

import (
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"

	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

// Receipt renders the payment receipt of a trainee. t.Program, with its
// course and trainer, must be loaded.
func Receipt(h Header, t *traineeModel.Trainee, issuedBy string, now time.Time) ([]byte, error) {
	if t.Program == nil {
		return nil, fmt.Errorf("receipt: trainee %s has no program loaded", t.TraineeID)
	}
	p := t.Program
	d := newDoc("P", "Receipt "+t.TraineeFullName, now)
	d.footer("Receipt " + t.TraineeID.String())
	d.pdf.AddPage()
	d.header(h)
	d.title("PAYMENT RECEIPT")

	qr, err := qrcode.Encode(t.TraineeID.String(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("receipt qr: %w", err)
	}
	top := d.pdf.GetY()
	w, _ := d.pdf.GetPageSize()
	d.image("qr", qr, w-marginMM-32, top, 32, 32)

	d.field("Trainee", t.TraineeFullName)
	d.field("Phone", t.TraineePhone)
	if t.TraineeEmail != nil {
		d.field("Email", *t.TraineeEmail)
	}
	if p.Course != nil {
		d.field("Course", p.Course.CourseName)
	}
	if p.Trainer != nil {
		d.field("Trainer", p.Trainer.TrainerFullName)
	}
	d.field("Period", p.ProgramStartDate.Format(dateLayout)+" - "+p.ProgramEndDate.Format(dateLayout))
	if y := top + 36; d.pdf.GetY() < y {
		d.pdf.SetY(y)
	}
	d.pdf.Ln(4)

	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range []struct {
		label string
		w     float64
	}{{"Item", 90}, {"Method", 45}, {"Amount", 45}} {
		pdf.CellFormat(col.w, 8, col.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	row := func(item, method, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(90, 8, d.tr(item), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, d.tr(method), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, d.tr(amount), "1", 1, "R", false, 0, "")
	}
	initial := t.TraineeInitialTrancheMethod
	if !t.TraineeDiscount.IsZero() {
		row("Discount", "", "-"+Money(t.TraineeDiscount), false)
	}
	row("Total price", "", Money(t.TraineeTotalPrice), true)
	row("First tranche", methodLabel(&initial), Money(t.TraineeInitialTranche), false)
	row("Second tranche", methodLabel(t.TraineeSecondTrancheMethod), Money(t.TraineeSecondTranche), false)
	row("Remaining balance", "", Money(t.TraineeRest), true)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	issued := "Issued on " + now.Format(dateLayout)
	if issuedBy != "" {
		issued += " by " + issuedBy
	}
	pdf.CellFormat(0, 6, d.tr(issued), "", 1, "L", false, 0, "")
	if t.TraineeRest.IsZero() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, "PAID IN FULL", "", 1, "R", false, 0, "")
	}
	return d.bytes()
}
