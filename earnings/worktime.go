package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WORKING-TIME CALCULATOR
// =============================================================================

const minutesPerDay = 24 * 60

// WorkingTimeInfo is the read-only view of the current shift state.
type WorkingTimeInfo struct {
	ShiftDurationHours float64         `json:"shift_duration_hours"`
	IsCurrentlyWorking bool            `json:"is_currently_working"`
	HoursWorkedToday   float64         `json:"hours_worked_today"`
	EstimatedEarnings  decimal.Decimal `json:"estimated_earnings"`
}

// ShiftMinutes returns the shift length in minutes. An end at or before the
// start means the shift wraps past midnight, so a full day is added.
func (c WorkingHoursConfig) ShiftMinutes() int {
	d := c.EndMinute - c.StartMinute
	if d <= 0 {
		d += minutesPerDay
	}
	return d
}

// ShiftDurationHours returns the shift length in hours.
func (c WorkingHoursConfig) ShiftDurationHours() float64 {
	return float64(c.ShiftMinutes()) / 60
}

// minuteOfDay converts an instant to wall-clock minutes since midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ElapsedMinutes returns minutes worked so far today, clamped to
// [0, shift length]. For a non-wrapping shift, an instant before the start
// yields 0 and an instant after the end yields the full shift. A wrapping
// shift measures time since the most recent shift start, modulo 24h: at
// 21:00 a 22:00-06:00 shift reads as the full shift, because the shift that
// counts toward today began yesterday evening and has already ended. "Before
// the start" has no stable meaning on a window that crosses midnight.
func (c WorkingHoursConfig) ElapsedMinutes(now time.Time) int {
	shift := c.ShiftMinutes()
	elapsed := minuteOfDay(now) - c.StartMinute
	if c.EndMinute <= c.StartMinute {
		// Overnight shift: distance from start, wrapping at midnight.
		elapsed = ((elapsed % minutesPerDay) + minutesPerDay) % minutesPerDay
	}
	if elapsed < 0 {
		return 0
	}
	if elapsed > shift {
		return shift
	}
	return elapsed
}

// HoursWorked returns ElapsedMinutes expressed in hours.
func (c WorkingHoursConfig) HoursWorked(now time.Time) float64 {
	return float64(c.ElapsedMinutes(now)) / 60
}

// InShift reports whether now falls inside [start, end), with wraparound
// handling for overnight shifts.
func (c WorkingHoursConfig) InShift(now time.Time) bool {
	m := minuteOfDay(now)
	if c.EndMinute > c.StartMinute {
		return m >= c.StartMinute && m < c.EndMinute
	}
	return m >= c.StartMinute || m < c.EndMinute
}

// EstimateEarnings computes the time-prorated earnings estimate for now:
// hours worked today times the hourly slice of the daily target. It returns
// zero when auto-calculate is disabled, and zero under the working-days
// policy on a non-working day.
func EstimateEarnings(p UserProfile, now time.Time) decimal.Decimal {
	if !p.WorkingHours.AutoCalculate {
		return decimal.Zero
	}
	if p.Policy == PolicyWorkingDays && !IsWorkingDay(now) {
		return decimal.Zero
	}
	shift := p.WorkingHours.ShiftMinutes()
	if shift <= 0 {
		return decimal.Zero
	}
	elapsed := p.WorkingHours.ElapsedMinutes(now)
	return p.DailyTarget.
		Mul(decimal.NewFromInt(int64(elapsed))).
		Div(decimal.NewFromInt(int64(shift)))
}

// WorkingTime assembles the full working-time view for now.
func WorkingTime(p UserProfile, now time.Time) WorkingTimeInfo {
	return WorkingTimeInfo{
		ShiftDurationHours: p.WorkingHours.ShiftDurationHours(),
		IsCurrentlyWorking: p.WorkingHours.InShift(now),
		HoursWorkedToday:   p.WorkingHours.HoursWorked(now),
		EstimatedEarnings:  EstimateEarnings(p, now),
	}
}
