package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/registrations/trainees/model"
	helper "trainingcenter_backend/internals/helpers"
)

func TestUpdateTraineeRequestTriState(t *testing.T) {
	note := "old"
	tr := model.Trainee{
		TraineeFullName: "Yacine",
		TraineeNote:     &note,
		TraineeDiscount: decimal.NewFromInt(500),
	}
	var req UpdateTraineeRequest
	body := `{"trainee_note": null, "trainee_discount": "1000", "trainee_total_price": "1"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	req.Apply(&tr)

	if tr.TraineeNote != nil {
		t.Error("explicit null should clear the note")
	}
	if tr.TraineeFullName != "Yacine" {
		t.Error("absent field should be untouched")
	}
	if !tr.TraineeDiscount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("discount = %s", tr.TraineeDiscount)
	}
}

func TestUpdateTraineeRequestRejectsNullRequired(t *testing.T) {
	var req UpdateTraineeRequest
	if err := json.Unmarshal([]byte(`{"trainee_full_name": null, "trainee_initial_tranche": null}`), &req); err != nil {
		t.Fatal(err)
	}
	fields := helper.ValidationErrors(req.Check())
	if fields["trainee_full_name"] == nil || fields["trainee_initial_tranche"] == nil {
		t.Errorf("fields = %v", fields)
	}
}
