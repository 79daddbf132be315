package render

import (
	"errors"
	"fmt"
	"time"

	programModel "trainingcenter_backend/internals/features/programs/programs/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

var (
	ErrProgramNotCompleted = errors.New("the program is not completed yet")
	ErrBalanceOutstanding  = errors.New("the trainee still has an outstanding balance")
)

// CertificateReady reports why a certificate cannot be issued yet, if it cannot.
func CertificateReady(t *traineeModel.Trainee, now time.Time) error {
	if t.Program == nil || t.Program.StatusAt(now) != programModel.ProgramCompleted {
		return ErrProgramNotCompleted
	}
	if t.TraineeRest.IsPositive() {
		return ErrBalanceOutstanding
	}
	return nil
}

// Certificate renders the training certificate in landscape.
func Certificate(h Header, t *traineeModel.Trainee, now time.Time) ([]byte, error) {
	if err := CertificateReady(t, now); err != nil {
		return nil, err
	}
	p := t.Program
	d := newDoc("L", "Certificate "+t.TraineeFullName, now)
	pdf := d.pdf
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, ht := pdf.GetPageSize()
	pdf.SetDrawColor(40, 70, 120)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, w-20, ht-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(14, 14, w-28, ht-28, "D")

	if d.image("logo", h.LogoPNG, w/2-15, 20, 30, 0) {
		pdf.SetY(55)
	} else {
		pdf.SetY(30)
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, d.tr(h.Name), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(40, 70, 120)
	pdf.CellFormat(0, 14, "CERTIFICATE OF TRAINING", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, d.tr(t.TraineeFullName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)

	course := ""
	if p.Course != nil {
		course = p.Course.CourseName
	}
	pdf.CellFormat(0, 8, d.tr("has completed the training"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, d.tr(course), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, d.tr(fmt.Sprintf("held from %s to %s",
		p.ProgramStartDate.Format(dateLayout), p.ProgramEndDate.Format(dateLayout))), "", 1, "C", false, 0, "")
	if p.Trainer != nil {
		pdf.CellFormat(0, 8, d.tr("under the supervision of "+p.Trainer.TrainerFullName), "", 1, "C", false, 0, "")
	}

	pdf.SetY(ht - 40)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(w/2-20, 6, d.tr("Issued on "+now.Format(dateLayout)), "", 0, "C", false, 0, "")
	pdf.CellFormat(w/2-20, 6, "Director", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetY(ht - 22)
	pdf.CellFormat(0, 5, "Ref. "+t.TraineeID.String(), "", 1, "C", false, 0, "")
	return d.bytes()
}
