package clock

import (
	"testing"
	"time"
)

func TestSameDay(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

	if !SameDay(base, base.Add(14*time.Hour)) {
		t.Errorf("expected 09:26 and 23:26 of the same date to be the same day")
	}
	if SameDay(base, base.AddDate(0, 0, 1)) {
		t.Errorf("expected consecutive dates to be different days")
	}
	if SameDay(base, base.Add(15*time.Hour)) {
		t.Errorf("expected 00:26 next day to be a different day")
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 14, 23, 50, 0, 0, time.Local)

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", base, base, 0},
		{"same day", base, base.Add(-20 * time.Hour), 0},
		{"adjacent days across midnight", base, base.Add(1 * time.Hour), 1},
		{"two days", base, base.AddDate(0, 0, 2), 2},
		{"reversed is negative", base.AddDate(0, 0, 2), base, -2},
		{"month boundary", time.Date(2025, 1, 31, 12, 0, 0, 0, time.Local), time.Date(2025, 2, 1, 1, 0, 0, 0, time.Local), 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: DaysBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	from := time.Date(2025, 6, 10, 14, 30, 0, 0, time.Local)

	// Later today.
	got := NextOccurrence(18, 0, from)
	want := time.Date(2025, 6, 10, 18, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("future time today: got %v, want %v", got, want)
	}

	// Already passed, rolls to tomorrow.
	got = NextOccurrence(9, 0, from)
	want = time.Date(2025, 6, 11, 9, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("past time rolls over: got %v, want %v", got, want)
	}

	// Exactly now counts as today.
	got = NextOccurrence(14, 30, from)
	if !got.Equal(from) {
		t.Errorf("exact match: got %v, want %v", got, from)
	}
}
