package dateutil

import "time"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// WithinOneDay reports whether last is on the same calendar day as now or
// on the immediately preceding one. A gap of more than one calendar day
// breaks a streak.
func WithinOneDay(last, now time.Time) bool {
	return !StartOfDay(now).After(StartOfDay(last).AddDate(0, 0, 1))
}
