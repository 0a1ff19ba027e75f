// Package calendar provides calendar-date utilities for the internship
// hours tracker: ISO date formatting, week/month ranges, and the work-day
// test used by the prediction engine.
//
// All comparisons are by calendar date only - two values representing the
// same calendar day compare equal regardless of their time-of-day or
// timezone component. Dates are normalized to midnight UTC.
// No external dependencies - uses only standard library.
package calendar

import "time"

// FormatISO is the canonical date layout (YYYY-MM-DD) used for keys,
// wire formats, and holiday-set membership.
const FormatISO = "2006-01-02"

// DateSet is a membership set of ISO date strings.
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from ISO date strings.
func NewDateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the calendar date of t.
func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[ISO(t)]
	return ok
}

// Add inserts the calendar date of t into the set.
func (s DateSet) Add(t time.Time) {
	s[ISO(t)] = struct{}{}
}

// ISO formats a time as its ISO calendar date (YYYY-MM-DD).
func ISO(t time.Time) string {
	return t.Format(FormatISO)
}

// ParseISO parses an ISO date string into a midnight-UTC time.
func ParseISO(value string) (time.Time, error) {
	return time.Parse(FormatISO, value)
}

// Date creates a midnight-UTC time for the given calendar date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Truncate returns the calendar date of t at midnight UTC.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), int(t.Month()), t.Day())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ISOWeekday returns the ISO weekday number of t (Monday = 1 .. Sunday = 7).
// Go reports Sunday as 0; ISO treats it as 7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// ISOWeek returns the ISO 8601 week number of t.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// WeekRange returns the Monday and Sunday of the ISO week containing t,
// both at midnight UTC (inclusive bounds).
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := Truncate(t).AddDate(0, 0, -(ISOWeekday(t) - 1))
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last calendar day of the given month
// (1-indexed), both at midnight UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := Date(year, month, 1)
	return start, start.AddDate(0, 1, -1)
}

// DaysBetween returns the number of calendar days from a to b (b - a),
// negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// IsWorkDay reports whether t is a working day: its ISO weekday must be in
// workingDays (ISO numbering, Sunday = 7) and its calendar date must not be
// in the holiday set. Either condition alone disqualifies the day.
func IsWorkDay(t time.Time, holidays DateSet, workingDays []int) bool {
	wd := ISOWeekday(t)
	allowed := false
	for _, d := range workingDays {
		if d == wd {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	return !holidays.Contains(t)
}
