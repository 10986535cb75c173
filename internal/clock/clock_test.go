package clock

import (
	"testing"
	"time"
)

func TestNormalizeTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"18:00", "18:00", false},
		{"9:05", "09:05", false},
		{" 07:30 ", "07:30", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"18:60", "", true},
		{"1800", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeTimeOfDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2025-09-20", "2024-02-29"}
	for _, value := range valid {
		if _, err := ParseDate(value); err != nil {
			t.Fatalf("ParseDate(%q): %v", value, err)
		}
	}

	invalid := []string{"20-09-2025", "2025/09/20", "2025-02-30", "2025-9-20", ""}
	for _, value := range invalid {
		if IsISODate(value) {
			t.Fatalf("IsISODate(%q) = true", value)
		}
	}
}

func TestDurationAndHours(t *testing.T) {
	d, err := Duration("18:00", "19:30")
	if err != nil {
		t.Fatalf("duration: %v", err)
	}
	if d != 90*time.Minute {
		t.Fatalf("duration: %s", d)
	}
	if Hours(d) != 1.5 {
		t.Fatalf("hours: %v", Hours(d))
	}
}

func TestSlotStart(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	start, err := SlotStart("2025-09-20", "8:15", loc)
	if err != nil {
		t.Fatalf("slot start: %v", err)
	}
	want := time.Date(2025, 9, 20, 8, 15, 0, 0, loc)
	if !start.Equal(want) {
		t.Fatalf("got %s, want %s", start, want)
	}
}

func TestDaysBetweenAndPreviousMonth(t *testing.T) {
	days, err := DaysBetween("2025-09-20", "2025-10-01")
	if err != nil {
		t.Fatalf("days between: %v", err)
	}
	if days != 11 {
		t.Fatalf("days: %d", days)
	}

	from, to := PreviousMonth(time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC))
	if from != "2025-02-01" || to != "2025-02-28" {
		t.Fatalf("previous month: %s..%s", from, to)
	}
}
