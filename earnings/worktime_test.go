package earnings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func hours(h, m int) int { return h*60 + m }

func at(hour, minute int) time.Time {
	// Monday June 16 2025.
	return time.Date(2025, time.June, 16, hour, minute, 0, 0, time.UTC)
}

func TestShiftDuration_Standard(t *testing.T) {
	cfg := WorkingHoursConfig{StartMinute: hours(9, 0), EndMinute: hours(17, 0)}
	assert.Equal(t, 8.0, cfg.ShiftDurationHours())
}

func TestShiftDuration_Overnight(t *testing.T) {
	// 22:00-06:00 wraps past midnight: still an 8 hour shift.
	cfg := WorkingHoursConfig{StartMinute: hours(22, 0), EndMinute: hours(6, 0)}
	assert.Equal(t, 8.0, cfg.ShiftDurationHours())
}

func TestHoursWorked_Standard(t *testing.T) {
	cfg := WorkingHoursConfig{StartMinute: hours(9, 0), EndMinute: hours(17, 0)}

	cases := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before shift", at(8, 0), 0},
		{"at start", at(9, 0), 0},
		{"mid shift", at(13, 0), 4},
		{"at end", at(17, 0), 8},
		{"after shift clamps to full", at(20, 0), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cfg.HoursWorked(tc.now))
		})
	}
}

func TestOvernightShift_At2AM(t *testing.T) {
	// GIVEN: shift 22:00-06:00
	// WHEN: now is 02:00
	// THEN: currently working, 8h shift, 4h worked
	cfg := WorkingHoursConfig{StartMinute: hours(22, 0), EndMinute: hours(6, 0)}
	now := at(2, 0)

	assert.True(t, cfg.InShift(now))
	assert.Equal(t, 8.0, cfg.ShiftDurationHours())
	assert.Equal(t, 4.0, cfg.HoursWorked(now))
}

func TestOvernightShift_BetweenEndAndStart(t *testing.T) {
	// GIVEN: shift 22:00-06:00
	// WHEN: now is 21:00, between this morning's end and tonight's start
	// THEN: not working, and the shift that began yesterday evening counts
	// as fully worked
	cfg := WorkingHoursConfig{StartMinute: hours(22, 0), EndMinute: hours(6, 0)}
	now := at(21, 0)

	assert.False(t, cfg.InShift(now))
	assert.Equal(t, 8.0, cfg.HoursWorked(now))
}

func TestInShift(t *testing.T) {
	day := WorkingHoursConfig{StartMinute: hours(9, 0), EndMinute: hours(17, 0)}
	night := WorkingHoursConfig{StartMinute: hours(22, 0), EndMinute: hours(6, 0)}

	assert.True(t, day.InShift(at(9, 0)))
	assert.True(t, day.InShift(at(16, 59)))
	assert.False(t, day.InShift(at(17, 0)), "end is exclusive")
	assert.False(t, day.InShift(at(8, 59)))

	assert.True(t, night.InShift(at(23, 0)))
	assert.True(t, night.InShift(at(2, 0)))
	assert.False(t, night.InShift(at(6, 0)), "end is exclusive")
	assert.False(t, night.InShift(at(12, 0)))
}

func TestEstimateEarnings_Prorated(t *testing.T) {
	// GIVEN: 09:00-17:00, auto-calculate on, daily target 80
	// WHEN: now is 13:00
	// THEN: 4h of 8h worked, estimate 40.00
	p := UserProfile{
		Policy:      PolicyNaturalDays,
		DailyTarget: decimal.NewFromInt(80),
		WorkingHours: WorkingHoursConfig{
			StartMinute:   hours(9, 0),
			EndMinute:     hours(17, 0),
			AutoCalculate: true,
		},
	}
	got := EstimateEarnings(p, at(13, 0))
	assert.True(t, got.Equal(decimal.NewFromInt(40)), "estimate = %s", got)
}

func TestEstimateEarnings_ZeroWhenDisabled(t *testing.T) {
	p := UserProfile{
		Policy:      PolicyNaturalDays,
		DailyTarget: decimal.NewFromInt(80),
		WorkingHours: WorkingHoursConfig{
			StartMinute: hours(9, 0),
			EndMinute:   hours(17, 0),
		},
	}
	assert.True(t, EstimateEarnings(p, at(13, 0)).IsZero())
}

func TestEstimateEarnings_ZeroOnWeekendUnderWorkingDaysPolicy(t *testing.T) {
	p := UserProfile{
		Policy:      PolicyWorkingDays,
		DailyTarget: decimal.NewFromInt(80),
		WorkingHours: WorkingHoursConfig{
			StartMinute:   hours(9, 0),
			EndMinute:     hours(17, 0),
			AutoCalculate: true,
		},
	}
	saturday := time.Date(2025, time.June, 14, 13, 0, 0, 0, time.UTC)
	assert.True(t, EstimateEarnings(p, saturday).IsZero())

	// The same instant on a Monday estimates normally.
	assert.False(t, EstimateEarnings(p, at(13, 0)).IsZero())
}

func TestWorkingTime_View(t *testing.T) {
	p := UserProfile{
		Policy:      PolicyNaturalDays,
		DailyTarget: decimal.NewFromInt(80),
		WorkingHours: WorkingHoursConfig{
			StartMinute:   hours(9, 0),
			EndMinute:     hours(17, 0),
			AutoCalculate: true,
		},
	}
	info := WorkingTime(p, at(13, 0))
	assert.True(t, info.IsCurrentlyWorking)
	assert.Equal(t, 8.0, info.ShiftDurationHours)
	assert.Equal(t, 4.0, info.HoursWorkedToday)
	assert.Equal(t, "40.00", info.EstimatedEarnings.StringFixed(2))
}
