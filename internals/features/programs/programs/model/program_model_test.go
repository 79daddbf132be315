package model

import (
	"testing"
	"time"
)

func TestProgramStatusAt(t *testing.T) {
	p := Program{
		ProgramStartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ProgramEndDate:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		now  time.Time
		want ProgramStatus
	}{
		{time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), ProgramUpcoming},
		{time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), ProgramInProgress},
		{time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC), ProgramInProgress},
		{time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC), ProgramCompleted},
	}
	for _, tt := range tests {
		if got := p.StatusAt(tt.now); got != tt.want {
			t.Errorf("StatusAt(%s) = %s, want %s", tt.now, got, tt.want)
		}
	}
}
