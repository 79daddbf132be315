// Package aggregator rolls per-group monthly trainee figures into yearly,
// monthly and trend views. It does no I/O.
package aggregator

import "github.com/shopspring/decimal"

type Dimension string

const (
	ByCourse      Dimension = "course"
	ByInstitution Dimension = "institution"
	ByEmployee    Dimension = "employee"
)

func ParseDimension(s string) (Dimension, bool) {
	switch d := Dimension(s); d {
	case ByCourse, ByInstitution, ByEmployee:
		return d, true
	}
	return "", false
}

type Totals struct {
	Trainees int64           `json:"total_trainees"`
	Amount   decimal.Decimal `json:"total_amount"`
	Paid     decimal.Decimal `json:"total_paid"`
	Unpaid   decimal.Decimal `json:"total_unpaid"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Trainees: t.Trainees + o.Trainees,
		Amount:   t.Amount.Add(o.Amount),
		Paid:     t.Paid.Add(o.Paid),
		Unpaid:   t.Unpaid.Add(o.Unpaid),
	}
}

// Rate is paid/amount, or not applicable when nothing was billed.
type Rate struct {
	Value decimal.Decimal
	Valid bool
}

func PaymentRate(t Totals) Rate {
	if !t.Amount.IsPositive() {
		return Rate{}
	}
	return Rate{Value: t.Paid.DivRound(t.Amount, 4), Valid: true}
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte(`"N/A"`), nil
	}
	return []byte(r.Value.String()), nil
}

type MonthlyRecord struct {
	Month int
	Totals
}

// Group is one course, institution or employee with its records for a year.
// Months may be sparse or repeated; repeated months are summed.
type Group struct {
	ID      string
	Name    string
	Records []MonthlyRecord
}

type Row struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Totals
	PaymentRate Rate `json:"payment_rate"`
}

const TotalRowID = "total"

func newRow(id, name string, t Totals) Row {
	return Row{GroupID: id, GroupName: name, Totals: t, PaymentRate: PaymentRate(t)}
}

// YearlyAggregate sums every month of each group. Row order follows groups.
func YearlyAggregate(groups []Group) []Row {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		var sum Totals
		for _, r := range g.Records {
			sum = sum.Add(r.Totals)
		}
		rows = append(rows, newRow(g.ID, g.Name, sum))
	}
	return rows
}

// MonthlyCrossSection returns one row per group for month; groups without
// records that month get zeros.
func MonthlyCrossSection(groups []Group, month int) []Row {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		var sum Totals
		for _, r := range g.Records {
			if r.Month == month {
				sum = sum.Add(r.Totals)
			}
		}
		rows = append(rows, newRow(g.ID, g.Name, sum))
	}
	return rows
}

// WithTotal appends the synthetic total row.
func WithTotal(rows []Row, label string) []Row {
	var sum Totals
	for _, r := range rows {
		sum = sum.Add(r.Totals)
	}
	return append(rows, newRow(TotalRowID, label, sum))
}

type TrendPoint struct {
	Month int    `json:"month"`
	Label string `json:"label"`
	Totals
	PaymentRate Rate `json:"payment_rate"`
}

// TrendSeries gives all twelve months across groups, January first.
func TrendSeries(groups []Group, locale string) []TrendPoint {
	var byMonth [12]Totals
	for _, g := range groups {
		for _, r := range g.Records {
			if r.Month >= 1 && r.Month <= 12 {
				byMonth[r.Month-1] = byMonth[r.Month-1].Add(r.Totals)
			}
		}
	}
	out := make([]TrendPoint, 12)
	for i, t := range byMonth {
		out[i] = TrendPoint{Month: i + 1, Label: TitleLabel(locale, MonthLabel(locale, i+1)), Totals: t, PaymentRate: PaymentRate(t)}
	}
	return out
}
