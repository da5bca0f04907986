package booking

import (
	"strings"
	"testing"
	"time"
)

func at(d int, hour int) time.Time {
	return time.Date(2026, 9, d, hour, 0, 0, 0, time.Local)
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{at(10, 9), at(10, 23), 0},  // same day, time of day irrelevant
		{at(10, 23), at(11, 1), 1},  // next day even across a short gap
		{at(10, 0), at(12, 0), 2},
		{at(12, 0), at(10, 0), -2},
	}
	for _, c := range cases {
		if got := daysUntil(c.from, c.to); got != c.want {
			t.Errorf("daysUntil(%v, %v) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func TestTotalDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int64
	}{
		{at(10, 8), at(10, 20), 0},
		{at(10, 23), at(11, 0), 1},
		{at(10, 0), at(17, 12), 7},
	}
	for _, c := range cases {
		if got := totalDays(c.start, c.end); got != c.want {
			t.Errorf("totalDays(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestNewBookingNumber(t *testing.T) {
	n := newBookingNumber(time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local))
	if !strings.HasPrefix(n, "BK-20260831-") {
		t.Fatalf("unexpected booking number %q", n)
	}
	if len(n) != len("BK-20260831-0000") {
		t.Fatalf("unexpected booking number length: %q", n)
	}
}
