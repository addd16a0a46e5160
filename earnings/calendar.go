package earnings

import "time"

// =============================================================================
// CALENDAR UTILITY - Pure day-counting functions
// =============================================================================
// All functions are parameterized by a reference instant and have no state.
// A malformed calendar (anything outside a 28-31 day month) falls back to
// fallbackDaysInMonth instead of failing; this subsystem has no fatal errors.

const fallbackDaysInMonth = 30

// DayStart truncates an instant to midnight in its own location. Day-start
// instants identify DailyEarnings records and challenge dates.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthKey renders the year-month marker used for rollover detection,
// e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	n := last.Day()
	if n < 28 || n > 31 {
		return fallbackDaysInMonth
	}
	return n
}

// WorkingDaysInMonth counts Mon-Fri days in the month containing t.
func WorkingDaysInMonth(t time.Time) int {
	count := 0
	day := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	for day.Month() == t.Month() {
		if IsWorkingDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// RemainingDaysInMonth counts days from today through month end, today
// included. Never negative.
func RemainingDaysInMonth(t time.Time) int {
	remaining := DaysInMonth(t) - t.Day() + 1
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingWorkingDaysInMonth counts Mon-Fri days from today through month
// end, today included.
func RemainingWorkingDaysInMonth(t time.Time) int {
	count := 0
	day := DayStart(t)
	for day.Month() == t.Month() {
		if IsWorkingDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// IsWorkingDay reports whether t falls on Mon-Fri.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
