package dto

import (
	"reflect"
	"testing"

	"trainingcenter_backend/internals/features/registrations/leads/model"
)

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		raw     string
		want    []model.LeadStatus
		wantErr bool
	}{
		{"", model.ActiveLeadStatuses, false},
		{"all", nil, false},
		{"canceled", []model.LeadStatus{model.LeadCanceled}, false},
		{"new, converted", []model.LeadStatus{model.LeadNew, model.LeadConverted}, false},
		{"deleted", nil, true},
		{"ne", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatusFilter(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
