/*
progress.go - Derived aggregate views and the motivational message tiers

PURPOSE:
  Pure derivations of the cached read models. MonthInfo and
  DetailedProgressInfo are functions of UserProfile + DailyEarnings + now;
  they carry no state of their own and are recomputed on cache miss.

ON-TRACK RULE:
  The user is "on track" when the average still needed per remaining
  relevant day does not exceed today's target by more than the configured
  tolerance (default 10%).

SEE ALSO:
  - cache.go: TTL cache serving these views
  - engine.go: invalidates the cache on every mutation
*/
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOnTrackTolerance is the multiplier applied to the daily target when
// judging whether the remaining average is still achievable.
const DefaultOnTrackTolerance = 1.10

// MonthInfo is the aggregate calendar view for the current month.
type MonthInfo struct {
	TotalDays            int `json:"total_days"`
	WorkingDays          int `json:"working_days"`
	RemainingDays        int `json:"remaining_days"`
	RemainingWorkingDays int `json:"remaining_working_days"`
}

// DetailedProgressInfo is the aggregate earnings view for the current month.
type DetailedProgressInfo struct {
	TodayEarnings       decimal.Decimal `json:"today_earnings"`
	DailyTarget         decimal.Decimal `json:"daily_target"`
	MonthlyTarget       decimal.Decimal `json:"monthly_target"`
	RemainingTarget     decimal.Decimal `json:"remaining_target"`
	AverageNeededPerDay decimal.Decimal `json:"average_needed_per_day"`
	OnTrack             bool            `json:"on_track"`
}

// ComputeMonthInfo derives the calendar view for the month containing now.
func ComputeMonthInfo(now time.Time) MonthInfo {
	return MonthInfo{
		TotalDays:            DaysInMonth(now),
		WorkingDays:          WorkingDaysInMonth(now),
		RemainingDays:        RemainingDaysInMonth(now),
		RemainingWorkingDays: RemainingWorkingDaysInMonth(now),
	}
}

// ComputeDetailedProgress derives the earnings view for the month containing
// now. tolerance is the on-track multiplier (e.g. 1.10 for 10%).
func ComputeDetailedProgress(p UserProfile, today DailyEarnings, now time.Time, tolerance float64) DetailedProgressInfo {
	monthly := p.MonthlyIncome
	remaining := monthly.Sub(today.Amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	remainingDays := RemainingDaysInMonth(now)
	if p.Policy == PolicyWorkingDays {
		remainingDays = RemainingWorkingDaysInMonth(now)
	}

	average := decimal.Zero
	if remainingDays > 0 {
		average = remaining.Div(decimal.NewFromInt(int64(remainingDays)))
	}

	allowed := p.DailyTarget.Mul(decimal.NewFromFloat(tolerance))
	onTrack := !average.GreaterThan(allowed)

	return DetailedProgressInfo{
		TodayEarnings:       today.Amount,
		DailyTarget:         p.DailyTarget,
		MonthlyTarget:       monthly,
		RemainingTarget:     remaining,
		AverageNeededPerDay: average,
		OnTrack:             onTrack,
	}
}

// =============================================================================
// MOTIVATIONAL MESSAGE
// =============================================================================

// MotivationalMessage maps current progress to one of five fixed tiers.
func MotivationalMessage(progress float64) string {
	switch {
	case progress >= 1.0:
		return "Excellent! You hit today's goal."
	case progress >= 0.7:
		return "Great pace, the goal is within reach."
	case progress >= 0.4:
		return "Solid progress, keep it going."
	case progress >= 0.1:
		return "A slow start, time to push."
	default:
		return "A fresh day, let's get started."
	}
}
