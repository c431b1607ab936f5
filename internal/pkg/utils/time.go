package utils

import (
	"bitecare-service/internal/pkg/constvars"
	"time"
)

// StartOfDay returns local midnight of t in t's own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// CalendarDaysBetween counts the calendar days from the date of `from` to the
// date of `to`. Each date is read in its own location, so the result does not
// depend on zone offsets or DST transitions.
func CalendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// IsBeforeToday reports whether date falls on a calendar day earlier than now.
func IsBeforeToday(date, now time.Time) bool {
	return CalendarDaysBetween(now, date) < 0
}

// IsAfterToday reports whether date falls on a calendar day later than now.
func IsAfterToday(date, now time.Time) bool {
	return CalendarDaysBetween(now, date) > 0
}

func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, value, time.Local)
}

func FormatDate(t time.Time) string {
	return t.Format(constvars.DateLayout)
}
