// Package calendar provides the calendar-day arithmetic used for bucketing
// and streaks. All functions work on the local calendar day of the given
// instant, where "local" is the location carried by the time.Time.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date string format, "YYYY-MM-DD".
const DateLayout = "2006-01-02"

// MonthLayout is the month key format, "YYYY-MM".
const MonthLayout = "2006-01"

// DateString formats the calendar day of t as "YYYY-MM-DD".
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats the calendar month of t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days and returns the resulting midnight.
// Unlike t.Add(n*24h) it is not thrown off by DST transitions.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	return AddDays(t, -int(t.Weekday()))
}

// WeekEnd returns midnight of the Saturday ending t's week.
func WeekEnd(t time.Time) time.Time {
	return AddDays(WeekStart(t), 6)
}

// MonthStart returns midnight of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the given month (1-12) of year,
// honouring Gregorian leap years.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate parses a "YYYY-MM-DD" string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b is before a. Wall-clock time is ignored.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
