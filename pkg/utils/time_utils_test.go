package utils

import (
	"testing"
	"time"
)

func TestCalendarDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-05-01", "2024-05-01", 0},
		{"2024-05-01", "2024-05-02", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"2024-05-02", "2024-05-01", -1},
		{"2023-12-31", "2024-01-01", 1},
		{"2000-01-01", "2400-01-01", 146097},
		{"2000-01-01", "9999-12-31", 2921939},
		{"9999-12-31", "2000-01-01", -2921939},
	}

	for _, tt := range tests {
		a, err := ParseDateJST(tt.a)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.a, err)
		}
		b, err := ParseDateJST(tt.b)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.b, err)
		}
		if got := CalendarDaysBetween(a, b); got != tt.want {
			t.Errorf("CalendarDaysBetween(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDateOnlyUsesJSTCalendarDay(t *testing.T) {
	// 2024-05-01 20:00 UTC is already 2024-05-02 in Tokyo.
	ts := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	if got := FormatDate(DateOnly(ts)); got != "2024-05-02" {
		t.Fatalf("FormatDate(DateOnly) = %s, want 2024-05-02", got)
	}
}
