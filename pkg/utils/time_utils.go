// utils/timeutil.go
package utils

import "time"

const DateLayout = "2006-01-02"

// Japan time location (JST, +09:00)
var jpLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Tokyo"); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*3600)
}()

// ParseDateJST parses a YYYY-MM-DD calendar date at midnight JST.
func ParseDateJST(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, jpLoc)
}

// DateOnly truncates t to midnight of its JST calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.In(jpLoc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, jpLoc)
}

// CalendarDaysBetween counts whole calendar days from a to b; negative when b is before a.
// Computed on UTC dates in unix seconds; time.Duration tops out near 292 years.
func CalendarDaysBetween(a, b time.Time) int {
	a, b = a.In(jpLoc), b.In(jpLoc)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(jpLoc).Format(DateLayout)
}

func FormatRFC3339JST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(jpLoc).Format(time.RFC3339)
}

// FromUnixSeconds converts a stored unix timestamp to JST. Zero stays zero.
func FromUnixSeconds(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).In(jpLoc)
}
