// Package render draws receipts, certificates and program reports as PDF.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	institutionModel "trainingcenter_backend/internals/features/catalog/institutions/model"
	traineeModel "trainingcenter_backend/internals/features/registrations/trainees/model"
)

const (
	dateLayout = "02/01/2006"
	currency   = "DA"
	marginMM   = 15.0
)

// Header is the issuing institution. LogoPNG is optional.
type Header struct {
	Name    string
	Address string
	Phone   string
	LogoPNG []byte
}

func HeaderOf(in *institutionModel.Institution, logoPNG []byte) Header {
	if in == nil {
		return Header{}
	}
	h := Header{Name: in.InstitutionName, LogoPNG: logoPNG}
	if in.InstitutionAddress != nil {
		h.Address = *in.InstitutionAddress
	}
	if in.InstitutionPhone != nil {
		h.Phone = *in.InstitutionPhone
	}
	return h
}

type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDoc(orientation, title string, now time.Time) *doc {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(title, true)
	pdf.SetCreator("trainingcenter", true)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	return &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// image registers png under name; a broken image is skipped, not fatal.
func (d *doc) image(name string, png []byte, x, y, w, h float64) bool {
	if len(png) == 0 {
		return false
	}
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(png))
	if !d.pdf.Ok() {
		d.pdf.ClearError()
		return false
	}
	d.pdf.ImageOptions(name, x, y, w, h, false, opt, 0, "")
	return true
}

func (d *doc) header(h Header) {
	pdf := d.pdf
	x := marginMM
	if d.image("logo", h.LogoPNG, marginMM, 10, 22, 0) {
		x += 27
	}
	pdf.SetXY(x, 12)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 7, d.tr(h.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{h.Address, h.Phone} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.SetX(x)
		pdf.CellFormat(0, 5, d.tr(line), "", 1, "L", false, 0, "")
	}
	w, _ := pdf.GetPageSize()
	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(marginMM, 36, w-marginMM, 36)
	pdf.SetY(42)
}

func (d *doc) title(s string) {
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.CellFormat(0, 10, d.tr(s), "", 1, "C", false, 0, "")
	d.pdf.Ln(4)
}

// field prints "label: value" on one line.
func (d *doc) field(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(50, 7, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, 7, d.tr(value), "", 1, "L", false, 0, "")
}

func (d *doc) footer(text string) {
	pdf := d.pdf
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("%s - page %d/{nb}", text, pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
}

func (d *doc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Money formats 20000 as "20 000.00 DA".
func Money(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return sign + b.String() + "." + frac + " " + currency
}

func methodLabel(m *traineeModel.PaymentMethod) string {
	if m == nil {
		return "-"
	}
	switch *m {
	case traineeModel.PaymentCash:
		return "Cash"
	case traineeModel.PaymentPostalTransfer:
		return "Postal transfer"
	case traineeModel.PaymentMobilePostal:
		return "Mobile postal"
	}
	return string(*m)
}
