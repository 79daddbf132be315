package repository

import (
	"testing"

	"github.com/shopspring/decimal"

	"trainingcenter_backend/internals/features/stats/aggregator"
)

func TestAssembleKeepsOrder(t *testing.T) {
	byGroup := recordsByGroup([]recordRow{
		{GroupID: "c-live", Month: 3, Trainees: 2, Amount: decimal.NewFromInt(40000)},
		{GroupID: "z-gone", Month: 1, Trainees: 1},
		{GroupID: "a-gone", Month: 2, Trainees: 1},
		{GroupID: "m-gone", Month: 2, Trainees: 4},
		{GroupID: "c-live", Month: 5, Trainees: 1},
	})
	rows := []groupRow{{ID: "c-live", Name: "Pastry"}, {ID: "b-empty", Name: "Bakery"}}

	want := []string{"c-live", "b-empty", "a-gone", "m-gone", "z-gone"}
	for i := 0; i < 20; i++ {
		got := assemble(rows, byGroup)
		if len(got) != len(want) {
			t.Fatalf("groups = %d, want %d", len(got), len(want))
		}
		for j, g := range got {
			if g.ID != want[j] {
				t.Fatalf("run %d: group %d = %q, want %q", i, j, g.ID, want[j])
			}
		}
	}

	got := assemble(rows, byGroup)
	if len(got[0].Records) != 2 {
		t.Errorf("live group records = %d, want 2", len(got[0].Records))
	}
	if got[1].Records != nil {
		t.Errorf("empty group records = %v, want none", got[1].Records)
	}
	if got[2].Name != "a-gone" {
		t.Errorf("orphan name = %q, want its id", got[2].Name)
	}
	if rows := aggregator.YearlyAggregate(got); rows[0].Trainees != 3 {
		t.Errorf("yearly trainees = %d, want 3", rows[0].Trainees)
	}
}
