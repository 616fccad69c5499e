// Package timeutil holds the one day-normalization helper shared by every
// piece of code that stores or compares attendance dates. The truncated day
// is the uniqueness key for attendance, so all callers must go through the
// same function with the same location.
package timeutil

import "time"

// DayStart truncates t to midnight in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayEnd is the last instant of the calendar day containing t, used for
// inclusive range queries.
func DayEnd(t time.Time, loc *time.Location) time.Time {
	return DayStart(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
