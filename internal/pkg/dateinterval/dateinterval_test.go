package dateinterval

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCount(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2025, 3, 10), date(2025, 3, 10), 1},
		{"three days", date(2025, 3, 10), date(2025, 3, 12), 3},
		{"across month boundary", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"across year boundary", date(2024, 12, 30), date(2025, 1, 2), 4},
		{"leap february", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"full year", date(2025, 1, 1), date(2025, 12, 31), 365},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DayCount(c.start, c.end)
			if err != nil {
				t.Fatalf("DayCount(%v, %v) returned error: %v", c.start, c.end, err)
			}
			if got != c.want {
				t.Errorf("DayCount(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
			}
		})
	}
}

func TestDayCountIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)

	got, err := DayCount(start, end)
	if err != nil {
		t.Fatalf("DayCount returned error: %v", err)
	}
	if got != 2 {
		t.Errorf("DayCount = %d, want 2", got)
	}
}

func TestDayCountInvalidRange(t *testing.T) {
	_, err := DayCount(date(2025, 3, 12), date(2025, 3, 10))
	if err != ErrInvalidRange {
		t.Errorf("DayCount with end before start: err = %v, want ErrInvalidRange", err)
	}
}

func TestDayCountAlwaysAtLeastOne(t *testing.T) {
	start := date(2020, 1, 1)
	for offset := 0; offset < 400; offset++ {
		end := start.AddDate(0, 0, offset)
		got, err := DayCount(start, end)
		if err != nil {
			t.Fatalf("DayCount(%v, %v) returned error: %v", start, end, err)
		}
		if got < 1 {
			t.Fatalf("DayCount(%v, %v) = %d, want >= 1", start, end, got)
		}
		if got != offset+1 {
			t.Fatalf("DayCount(%v, %v) = %d, want %d", start, end, got, offset+1)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           time.Time
		bStart, bEnd           time.Time
		want                   bool
	}{
		{"disjoint", date(2025, 3, 1), date(2025, 3, 5), date(2025, 3, 6), date(2025, 3, 9), false},
		{"touching endpoints", date(2025, 3, 10), date(2025, 3, 12), date(2025, 3, 12), date(2025, 3, 14), true},
		{"contained", date(2025, 3, 1), date(2025, 3, 31), date(2025, 3, 10), date(2025, 3, 12), true},
		{"identical", date(2025, 3, 10), date(2025, 3, 12), date(2025, 3, 10), date(2025, 3, 12), true},
		{"partial", date(2025, 3, 8), date(2025, 3, 11), date(2025, 3, 10), date(2025, 3, 15), true},
		{"adjacent days", date(2025, 3, 1), date(2025, 3, 5), date(2025, 3, 6), date(2025, 3, 6), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd)
			if got != c.want {
				t.Errorf("Overlaps = %v, want %v", got, c.want)
			}

			// Symmetry
			swapped := Overlaps(c.bStart, c.bEnd, c.aStart, c.aEnd)
			if swapped != got {
				t.Errorf("Overlaps is not symmetric: %v vs %v", got, swapped)
			}
		})
	}
}

func TestSameCalendarDate(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata not available")
	}

	cases := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same instant", date(2025, 3, 10), date(2025, 3, 10), true},
		{"different time of day", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC), true},
		{"different days", date(2025, 3, 10), date(2025, 3, 11), false},
		{"same UTC day across zones", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 17, 0, 0, 0, jakarta), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SameCalendarDate(c.a, c.b); got != c.want {
				t.Errorf("SameCalendarDate = %v, want %v", got, c.want)
			}
		})
	}
}
