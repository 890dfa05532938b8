package models

import "testing"

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingState
		ok   bool
	}{
		{"ALL", StateAll, true},
		{"CURRENT", StateCurrent, true},
		{"PAST", StatePast, true},
		{"FUTURE", StateFuture, true},
		{"WAITING", StateWaiting, true},
		{"REJECTED", StateRejected, true},
		{"", "", false},
		{"all", "", false},
		{"APPROVED", "", false},
		{"SOMETIMES", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseBookingState(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseBookingState(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseBookingState(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
