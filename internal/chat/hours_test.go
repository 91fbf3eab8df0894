package chat

import (
	"testing"
	"time"
)

func TestWithinBusinessHours(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		spec string
		now  time.Time
		want bool
	}{
		{"inside single window", "09:00-17:00", at(12, 0), true},
		{"before window", "09:00-17:00", at(8, 59), false},
		{"after window", "09:00-17:00", at(17, 1), false},
		{"boundary start", "09:00-17:00", at(9, 0), true},
		{"boundary end", "09:00-17:00", at(17, 0), true},
		{"second window matches", "08:00-12:00,13:00-17:00", at(14, 30), true},
		{"lunch gap", "08:00-12:00,13:00-17:00", at(12, 30), false},
		{"empty spec", "", at(12, 0), false},
		{"malformed window ignored", "9-17,13:00-17:00", at(14, 0), true},
		{"entirely malformed", "whenever", at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinBusinessHours(tt.spec, tt.now); got != tt.want {
				t.Errorf("WithinBusinessHours(%q, %v) = %v, want %v", tt.spec, tt.now, got, tt.want)
			}
		})
	}
}
