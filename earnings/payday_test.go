package earnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaydayFor_ClampsToMonthLength(t *testing.T) {
	cfg := PaydayConfig{DayOfMonth: 31}
	// June has 30 days, so payday clamps to the 30th.
	got := cfg.PaydayFor(date(2025, time.June, 10))
	assert.Equal(t, date(2025, time.June, 30), got)
}

func TestPaydayFor_LastDay(t *testing.T) {
	cfg := PaydayConfig{LastDay: true}
	assert.Equal(t, date(2025, time.February, 28), cfg.PaydayFor(date(2025, time.February, 3)))
	assert.Equal(t, date(2024, time.February, 29), cfg.PaydayFor(date(2024, time.February, 3)))
}

func TestNextPayday_RollsToNextMonthOncePassed(t *testing.T) {
	cfg := PaydayConfig{DayOfMonth: 15}

	// Before this month's payday: stays in June.
	assert.Equal(t, date(2025, time.June, 15), cfg.NextPayday(date(2025, time.June, 10)))

	// On payday itself: today still counts.
	assert.Equal(t, date(2025, time.June, 15), cfg.NextPayday(date(2025, time.June, 15)))

	// After it: rolls to July.
	assert.Equal(t, date(2025, time.July, 15), cfg.NextPayday(date(2025, time.June, 16)))
}

func TestNextPayday_EndOfMonthRoll(t *testing.T) {
	// Jan 31: payday on the 15th already passed, next is Feb 15.
	cfg := PaydayConfig{DayOfMonth: 15}
	assert.Equal(t, date(2025, time.February, 15), cfg.NextPayday(date(2025, time.January, 31)))
}

func TestDaysUntilPayday(t *testing.T) {
	cfg := PaydayConfig{DayOfMonth: 20}
	assert.Equal(t, 4, cfg.DaysUntilPayday(date(2025, time.June, 16)))
	assert.Equal(t, 0, cfg.DaysUntilPayday(date(2025, time.June, 20)))
}

func TestDaysUntilPayday_AcrossDSTTransition(t *testing.T) {
	// GIVEN: a location where March 9 2025 is a 23-hour day
	// WHEN: counting from March 5 to a payday on the 15th
	// THEN: 10 calendar days, not 9 (239h / 24 truncated)
	nyc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cfg := PaydayConfig{DayOfMonth: 15}
	now := time.Date(2025, time.March, 5, 8, 0, 0, 0, nyc)
	assert.Equal(t, 10, cfg.DaysUntilPayday(now))
}

func TestPaydayState(t *testing.T) {
	cfg := PaydayConfig{LastDay: true}
	info := cfg.PaydayState(date(2025, time.June, 16))
	assert.Equal(t, date(2025, time.June, 30), info.NextPayday)
	assert.Equal(t, 14, info.DaysUntil)
}
