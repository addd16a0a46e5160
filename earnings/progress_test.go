package earnings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testProfile(income int64, policy CalculationPolicy, now time.Time) UserProfile {
	p := UserProfile{
		MonthlyIncome: decimal.NewFromInt(income),
		Policy:        policy,
		SetupComplete: true,
	}
	p.DailyTarget = p.ComputeDailyTarget(now)
	return p
}

func TestComputeDailyTarget(t *testing.T) {
	june := date(2025, time.June, 16)

	// 3000 over 30 natural days = 100.00.
	natural := testProfile(3000, PolicyNaturalDays, june)
	assert.Equal(t, "100.00", natural.DailyTarget.StringFixed(2))

	// 3000 over 21 working days.
	working := testProfile(3000, PolicyWorkingDays, june)
	assert.Equal(t, "142.86", working.DailyTarget.StringFixed(2))
}

func TestComputeMonthInfo(t *testing.T) {
	info := ComputeMonthInfo(date(2025, time.June, 16))
	assert.Equal(t, 30, info.TotalDays)
	assert.Equal(t, 21, info.WorkingDays)
	assert.Equal(t, 15, info.RemainingDays)
	assert.Equal(t, 11, info.RemainingWorkingDays)
}

func TestComputeDetailedProgress(t *testing.T) {
	now := date(2025, time.June, 16)
	p := testProfile(3000, PolicyNaturalDays, now)
	today := DailyEarnings{Date: DayStart(now), Amount: decimal.NewFromInt(100)}

	d := ComputeDetailedProgress(p, today, now, DefaultOnTrackTolerance)
	assert.Equal(t, "100.00", d.TodayEarnings.StringFixed(2))
	assert.Equal(t, "100.00", d.DailyTarget.StringFixed(2))
	assert.Equal(t, "3000.00", d.MonthlyTarget.StringFixed(2))
	assert.Equal(t, "2900.00", d.RemainingTarget.StringFixed(2))
	// 2900 over 15 remaining days.
	assert.Equal(t, "193.33", d.AverageNeededPerDay.StringFixed(2))
	// 193.33 > 100 * 1.10: not on track.
	assert.False(t, d.OnTrack)
}

func TestComputeDetailedProgress_OnTrackWithinTolerance(t *testing.T) {
	// Last day of the month with the full daily slice earned already.
	now := date(2025, time.June, 30)
	p := testProfile(3000, PolicyNaturalDays, now)
	today := DailyEarnings{Date: DayStart(now), Amount: decimal.NewFromInt(2900)}

	d := ComputeDetailedProgress(p, today, now, DefaultOnTrackTolerance)
	// 100 remaining over 1 day = 100 <= 110.
	assert.True(t, d.OnTrack)
}

func TestComputeDetailedProgress_RemainingNeverNegative(t *testing.T) {
	now := date(2025, time.June, 16)
	p := testProfile(3000, PolicyNaturalDays, now)
	today := DailyEarnings{Date: DayStart(now), Amount: decimal.NewFromInt(5000)}

	d := ComputeDetailedProgress(p, today, now, DefaultOnTrackTolerance)
	assert.True(t, d.RemainingTarget.IsZero())
	assert.True(t, d.OnTrack)
}

func TestDailyEarnings_Progress_ZeroTarget(t *testing.T) {
	today := DailyEarnings{Amount: decimal.NewFromInt(50)}
	assert.Equal(t, 0.0, today.Progress(decimal.Zero))
}

func TestDailyEarnings_Progress_Capped(t *testing.T) {
	today := DailyEarnings{Amount: decimal.NewFromInt(150)}
	assert.Equal(t, 1.0, today.Progress(decimal.NewFromInt(100)))
}

func TestMotivationalMessage_Tiers(t *testing.T) {
	cases := []struct {
		progress float64
		want     string
	}{
		{1.2, MotivationalMessage(1.0)},
		{1.0, MotivationalMessage(1.0)},
		{0.7, MotivationalMessage(0.7)},
		{0.69, MotivationalMessage(0.4)},
		{0.4, MotivationalMessage(0.4)},
		{0.1, MotivationalMessage(0.1)},
		{0.05, MotivationalMessage(0)},
		{0, MotivationalMessage(0)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MotivationalMessage(tc.progress), "progress %v", tc.progress)
	}

	// The five tiers are distinct.
	tiers := map[string]bool{
		MotivationalMessage(1.0): true,
		MotivationalMessage(0.7): true,
		MotivationalMessage(0.4): true,
		MotivationalMessage(0.1): true,
		MotivationalMessage(0):   true,
	}
	assert.Len(t, tiers, 5)
}
