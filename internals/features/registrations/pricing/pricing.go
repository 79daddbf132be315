// Package pricing derives a registration's total price and outstanding balance.
package pricing

import (
	"github.com/shopspring/decimal"

	helper "trainingcenter_backend/internals/helpers"
)

// Input is what a form or request provides. CoursePrice is nil when no program is selected.
type Input struct {
	CoursePrice    *decimal.Decimal
	Discount       decimal.Decimal
	InitialTranche decimal.Decimal
	SecondTranche  decimal.Decimal
}

type Quote struct {
	CoursePrice    decimal.Decimal `json:"course_price"`
	Discount       decimal.Decimal `json:"discount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	InitialTranche decimal.Decimal `json:"initial_tranche"`
	SecondTranche  decimal.Decimal `json:"second_tranche"`
	Paid           decimal.Decimal `json:"paid"`
	Rest           decimal.Decimal `json:"rest"`
}

// TotalPrice is max(coursePrice - discount, 0).
func TotalPrice(coursePrice, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(coursePrice.Sub(discount), decimal.Zero)
}

// Rest is total - (initial + second). It goes negative on overpayment; Validate rejects that on write.
func Rest(total, initial, second decimal.Decimal) decimal.Decimal {
	return total.Sub(initial.Add(second))
}

// Compute recomputes every dependent field. Same input, same output.
func Compute(in Input) Quote {
	price := decimal.Zero
	if in.CoursePrice != nil {
		price = *in.CoursePrice
	}
	total := TotalPrice(price, in.Discount)
	return Quote{
		CoursePrice:    price,
		Discount:       in.Discount,
		TotalPrice:     total,
		InitialTranche: in.InitialTranche,
		SecondTranche:  in.SecondTranche,
		Paid:           in.InitialTranche.Add(in.SecondTranche),
		Rest:           Rest(total, in.InitialTranche, in.SecondTranche),
	}
}

// ConfirmSecondTranche settles the balance: second becomes second + rest and rest becomes 0.
func ConfirmSecondTranche(q Quote) Quote {
	q.SecondTranche = q.SecondTranche.Add(q.Rest)
	q.Rest = decimal.Zero
	q.Paid = q.InitialTranche.Add(q.SecondTranche)
	return q
}

// Validate returns nil or helper.FieldErrors keyed by the trainee json fields.
func Validate(in Input) error {
	fe := helper.FieldErrors{}
	if in.CoursePrice == nil {
		fe.Add("trainee_program_id", "is required")
	}
	if in.Discount.IsNegative() {
		fe.Add("trainee_discount", "must not be negative")
	}
	if in.InitialTranche.IsNegative() {
		fe.Add("trainee_initial_tranche", "must not be negative")
	}
	if in.SecondTranche.IsNegative() {
		fe.Add("trainee_second_tranche", "must not be negative")
	}
	if in.CoursePrice != nil && in.Discount.GreaterThan(*in.CoursePrice) {
		fe.Add("trainee_discount", "must not exceed the course price")
	}
	if fe.Empty() {
		q := Compute(in)
		if q.Rest.IsNegative() {
			fe.Add("trainee_second_tranche", "payments exceed the total price")
		}
	}
	if fe.Empty() {
		return nil
	}
	return fe
}
