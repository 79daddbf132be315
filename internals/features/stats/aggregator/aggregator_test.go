package aggregator

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func rec(month int, n, amount, paid int64) MonthlyRecord {
	return MonthlyRecord{Month: month, Totals: Totals{Trainees: n, Amount: d(amount), Paid: d(paid), Unpaid: d(amount - paid)}}
}

func employees() []Group {
	return []Group{
		{ID: "e1", Name: "Amina", Records: []MonthlyRecord{rec(1, 2, 40000, 30000), rec(3, 1, 20000, 20000)}},
		{ID: "e2", Name: "Karim", Records: []MonthlyRecord{rec(2, 3, 60000, 10000), rec(11, 1, 20000, 5000)}},
		{ID: "e3", Name: "Sofiane"},
	}
}

func TestMonthlyCrossSectionListsEveryGroup(t *testing.T) {
	rows := MonthlyCrossSection(employees(), 3)
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	karim := rows[1]
	if karim.GroupID != "e2" || karim.Trainees != 0 || !karim.Amount.IsZero() || !karim.Paid.IsZero() || !karim.Unpaid.IsZero() {
		t.Fatalf("karim in march = %+v", karim)
	}
	if karim.PaymentRate.Valid {
		t.Fatalf("rate must be N/A for zero amount")
	}
	if rows[0].Trainees != 1 || !rows[0].Amount.Equal(d(20000)) {
		t.Fatalf("amina in march = %+v", rows[0])
	}
}

func TestYearlyAggregateIsSumOfMonths(t *testing.T) {
	groups := employees()
	yearly := YearlyAggregate(groups)
	for i, g := range groups {
		var sum Totals
		for m := 1; m <= 12; m++ {
			sum = sum.Add(MonthlyCrossSection([]Group{g}, m)[0].Totals)
		}
		got := yearly[i]
		if got.Trainees != sum.Trainees || !got.Amount.Equal(sum.Amount) || !got.Paid.Equal(sum.Paid) || !got.Unpaid.Equal(sum.Unpaid) {
			t.Fatalf("%s: yearly %+v != months %+v", g.Name, got.Totals, sum)
		}
	}
	if yearly[1].Trainees != 4 || !yearly[1].Amount.Equal(d(80000)) {
		t.Fatalf("karim yearly = %+v", yearly[1])
	}
}

func TestPaymentRate(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		want   string
	}{
		{"nothing billed", Totals{}, `"N/A"`},
		{"half paid", Totals{Amount: d(20000), Paid: d(10000)}, `0.5`},
		{"third paid", Totals{Amount: d(3), Paid: d(1)}, `0.3333`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(PaymentRate(tt.totals))
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.want {
				t.Fatalf("got %s want %s", b, tt.want)
			}
		})
	}
}

func TestWithTotal(t *testing.T) {
	rows := WithTotal(YearlyAggregate(employees()), "Total")
	last := rows[len(rows)-1]
	if last.GroupID != TotalRowID || last.Trainees != 7 || !last.Amount.Equal(d(140000)) || !last.Paid.Equal(d(65000)) {
		t.Fatalf("total row = %+v", last)
	}
	if !last.PaymentRate.Valid {
		t.Fatal("total rate should be defined")
	}

	empty := WithTotal(MonthlyCrossSection(employees(), 7), "Total")
	if r := empty[len(empty)-1]; r.PaymentRate.Valid || r.Trainees != 0 {
		t.Fatalf("july total = %+v", r)
	}
}

func TestTrendSeriesCanonicalOrder(t *testing.T) {
	for _, locale := range []string{"en", "fr"} {
		points := TrendSeries(employees(), locale)
		if len(points) != 12 {
			t.Fatalf("%s: want 12 points, got %d", locale, len(points))
		}
		for i, p := range points {
			if p.Month != i+1 {
				t.Fatalf("%s: point %d has month %d", locale, i, p.Month)
			}
			if idx, ok := MonthIndex(locale, p.Label); !ok || idx != p.Month {
				t.Fatalf("%s: label %q parses to %d", locale, p.Label, idx)
			}
		}
		if points[1].Trainees != 3 || points[10].Trainees != 1 || points[6].Trainees != 0 {
			t.Fatalf("%s: unexpected figures %+v", locale, points)
		}
	}
	// alphabetical order would put avril first
	if fr := TrendSeries(nil, "fr"); fr[0].Label != "Janvier" || fr[3].Label != "Avril" {
		t.Fatalf("fr labels: %q %q", fr[0].Label, fr[3].Label)
	}
}

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		locale, label string
		want          int
		ok            bool
	}{
		{"en", "March", 3, true},
		{"en", " march ", 3, true},
		{"fr", "Février", 2, true},
		{"fr", "fevrier", 2, true},
		{"fr", "AOÛT", 8, true},
		{"fr", "March", 0, false},
		{"xx", "December", 12, true},
		{"en", "", 0, false},
	}
	for _, tt := range tests {
		got, ok := MonthIndex(tt.locale, tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MonthIndex(%q, %q) = %d, %v", tt.locale, tt.label, got, ok)
		}
	}
	if MonthLabel("en", 13) != "" || MonthLabel("fr", 12) != "décembre" {
		t.Fatal("MonthLabel bounds")
	}
}

func TestParseDimension(t *testing.T) {
	if _, ok := ParseDimension("employee"); !ok {
		t.Fatal("employee is a dimension")
	}
	if _, ok := ParseDimension("employees"); ok {
		t.Fatal("employees is not")
	}
}
