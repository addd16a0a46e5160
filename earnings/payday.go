package earnings

import "time"

// =============================================================================
// PAYDAY DERIVATIONS
// =============================================================================

// PaydayInfo is the read-only payday view.
type PaydayInfo struct {
	NextPayday time.Time `json:"next_payday"`
	DaysUntil  int       `json:"days_until"`
}

// PaydayFor returns the payday date within the month containing t. A
// day-of-month beyond the month length clamps to the last day.
func (c PaydayConfig) PaydayFor(t time.Time) time.Time {
	days := DaysInMonth(t)
	day := c.DayOfMonth
	if c.LastDay || day > days {
		day = days
	}
	if day < 1 {
		day = 1
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location())
}

// NextPayday returns this month's payday, or next month's once it has passed.
// A payday falling on today has not passed.
func (c PaydayConfig) NextPayday(now time.Time) time.Time {
	today := DayStart(now)
	payday := c.PaydayFor(now)
	if payday.Before(today) {
		payday = c.PaydayFor(today.AddDate(0, 1, -today.Day()+1))
	}
	return payday
}

// DaysUntilPayday counts whole days from today until the next payday.
// Zero means today is payday. Counts midnights rather than dividing a
// duration, so a 23-hour DST day cannot skew the result.
func (c PaydayConfig) DaysUntilPayday(now time.Time) int {
	payday := c.NextPayday(now)
	days := 0
	for d := DayStart(now); d.Before(payday); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// PaydayState assembles the payday view for now.
func (c PaydayConfig) PaydayState(now time.Time) PaydayInfo {
	return PaydayInfo{
		NextPayday: c.NextPayday(now),
		DaysUntil:  c.DaysUntilPayday(now),
	}
}
