package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	helper "trainingcenter_backend/internals/helpers"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func price(v int64) *decimal.Decimal {
	p := d(v)
	return &p
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name            string
		price, discount int64
		want            int64
	}{
		{"no discount", 20000, 0, 20000},
		{"partial", 20000, 2000, 18000},
		{"equal", 20000, 20000, 0},
		{"clamped", 20000, 25000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPrice(d(tt.price), d(tt.discount)); !got.Equal(d(tt.want)) {
				t.Errorf("got %s want %d", got, tt.want)
			}
		})
	}
}

// Course 20000, discount 2000, initial 5000 -> 18000 / 13000; confirming settles to 13000 / 0.
func TestRegistrationScenario(t *testing.T) {
	q := Compute(Input{CoursePrice: price(20000), Discount: d(2000), InitialTranche: d(5000)})
	if !q.TotalPrice.Equal(d(18000)) || !q.Rest.Equal(d(13000)) {
		t.Fatalf("total=%s rest=%s", q.TotalPrice, q.Rest)
	}

	c := ConfirmSecondTranche(q)
	if !c.SecondTranche.Equal(d(13000)) || !c.Rest.IsZero() {
		t.Errorf("second=%s rest=%s", c.SecondTranche, c.Rest)
	}
	if !c.Paid.Equal(c.TotalPrice) {
		t.Errorf("paid %s should equal total %s", c.Paid, c.TotalPrice)
	}
}

func TestConfirmAddsToExistingSecond(t *testing.T) {
	q := Compute(Input{CoursePrice: price(10000), InitialTranche: d(3000), SecondTranche: d(2000)})
	c := ConfirmSecondTranche(q)
	if !c.SecondTranche.Equal(d(7000)) || !c.Rest.IsZero() {
		t.Errorf("second=%s rest=%s", c.SecondTranche, c.Rest)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := Input{CoursePrice: price(15000), Discount: d(500), InitialTranche: d(4000), SecondTranche: d(1000)}
	a, b := Compute(in), Compute(in)
	if !a.TotalPrice.Equal(b.TotalPrice) || !a.Rest.Equal(b.Rest) || !a.Paid.Equal(b.Paid) {
		t.Errorf("%+v != %+v", a, b)
	}
	if !a.Rest.Equal(a.TotalPrice.Sub(a.InitialTranche.Add(a.SecondTranche))) {
		t.Errorf("rest invariant broken: %+v", a)
	}
}

func TestComputeWithoutProgram(t *testing.T) {
	q := Compute(Input{InitialTranche: d(0)})
	if !q.CoursePrice.IsZero() || !q.TotalPrice.IsZero() || !q.Rest.IsZero() {
		t.Errorf("missing program should price at zero: %+v", q)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantField string
	}{
		{"ok", Input{CoursePrice: price(20000), Discount: d(2000), InitialTranche: d(5000)}, ""},
		{"fully paid", Input{CoursePrice: price(20000), InitialTranche: d(20000)}, ""},
		{"no program", Input{}, "trainee_program_id"},
		{"discount above price", Input{CoursePrice: price(1000), Discount: d(1500)}, "trainee_discount"},
		{"negative tranche", Input{CoursePrice: price(1000), InitialTranche: d(-1)}, "trainee_initial_tranche"},
		{"overpayment", Input{CoursePrice: price(1000), InitialTranche: d(800), SecondTranche: d(300)}, "trainee_second_tranche"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			fe, ok := err.(helper.FieldErrors)
			if !ok {
				t.Fatalf("err = %T %v", err, err)
			}
			if _, ok := fe[tt.wantField]; !ok {
				t.Errorf("missing %s in %v", tt.wantField, fe)
			}
		})
	}
}
