/*
Package earnings implements the earnings state and synchronization engine.

PURPOSE:
  This package contains the domain model and orchestration logic for turning
  a monthly income target into a live daily progress indicator. It derives
  daily/monthly targets from a chosen day-counting policy, advances
  auto-calculated earnings over the course of a work day, caches the derived
  aggregate views, throttles persistence writes, and drives achievement and
  challenge state transitions.

KEY CONCEPTS IN THIS FILE (types.go):
  - UserProfile: income, calculation policy, derived daily target
  - WorkingHoursConfig: shift window used for time-prorated estimation
  - PaydayConfig: day-of-month or last-day payday rule
  - DailyEarnings: today's recorded amount, identified by day start
  - Achievement / Challenge: unlockable milestones and daily goals

DESIGN PRINCIPLES:
  1. Precision: all currency values use decimal.Decimal, never float64
  2. Single owner: UserProfile and DailyEarnings are mutated only through
     Engine entry points, never directly by callers
  3. Derivations live next to the type they derive from and are pure

SEE ALSO:
  - calendar.go: day-counting primitives behind the calculation policies
  - engine.go: the single mutation path that owns all of this state
*/
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CALCULATION POLICY
// =============================================================================

// CalculationPolicy selects which days of the month the income is spread over.
type CalculationPolicy string

const (
	// PolicyNaturalDays divides monthly income by every calendar day.
	PolicyNaturalDays CalculationPolicy = "natural_days"
	// PolicyWorkingDays divides monthly income by Mon-Fri days only.
	PolicyWorkingDays CalculationPolicy = "working_days"
)

func (p CalculationPolicy) Valid() bool {
	return p == PolicyNaturalDays || p == PolicyWorkingDays
}

// =============================================================================
// USER PROFILE
// =============================================================================

// UserProfile holds the user's income configuration and its derived daily
// target. DailyTarget must stay consistent with MonthlyIncome, Policy and the
// current calendar month; the Engine recomputes it on income/policy changes
// and on month rollover.
type UserProfile struct {
	MonthlyIncome decimal.Decimal    `json:"monthly_income"`
	Policy        CalculationPolicy  `json:"policy"`
	DailyTarget   decimal.Decimal    `json:"daily_target"`
	SetupComplete bool               `json:"setup_complete"`
	DisplayName   string             `json:"display_name,omitempty"`
	WorkingHours  WorkingHoursConfig `json:"working_hours"`
	Payday        PaydayConfig       `json:"payday"`
}

// RelevantDayCount returns the day count the active policy divides income by,
// for the month containing at.
func (p UserProfile) RelevantDayCount(at time.Time) int {
	if p.Policy == PolicyWorkingDays {
		return WorkingDaysInMonth(at)
	}
	return DaysInMonth(at)
}

// ComputeDailyTarget derives the daily target for the month containing at.
// A month with zero relevant days yields a zero target rather than dividing
// by zero.
func (p UserProfile) ComputeDailyTarget(at time.Time) decimal.Decimal {
	days := p.RelevantDayCount(at)
	if days <= 0 {
		return decimal.Zero
	}
	return p.MonthlyIncome.Div(decimal.NewFromInt(int64(days)))
}

// =============================================================================
// WORKING HOURS
// =============================================================================

// WorkingHoursConfig describes the daily shift window as wall-clock minutes
// since midnight. End may be less than or equal to Start, modeling an
// overnight shift that wraps past midnight.
type WorkingHoursConfig struct {
	StartMinute   int  `json:"start_minute"`
	EndMinute     int  `json:"end_minute"`
	AutoCalculate bool `json:"auto_calculate"`
}

// =============================================================================
// PAYDAY
// =============================================================================

// PaydayConfig is either "day N of the month" (N clamped to the actual month
// length) or "last day of the month".
type PaydayConfig struct {
	DayOfMonth int  `json:"day_of_month"`
	LastDay    bool `json:"last_day"`
}

// =============================================================================
// DAILY EARNINGS
// =============================================================================

// DailyEarnings records what was earned on one calendar day. Date is always
// the day-start instant and identifies the record; a different day never
// overwrites a prior day's record.
type DailyEarnings struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	GoalReached bool            `json:"goal_reached"`
}

// NewDailyEarnings returns a zeroed record for the day containing at.
func NewDailyEarnings(at time.Time) DailyEarnings {
	return DailyEarnings{Date: DayStart(at), Amount: decimal.Zero}
}

// Progress returns amount/target capped at 1.0, or 0 for a zero target.
func (d DailyEarnings) Progress(target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	p, _ := d.Amount.Div(target).Float64()
	if p > 1.0 {
		return 1.0
	}
	if p < 0 {
		return 0
	}
	return p
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

// Achievement pairs a static catalog entry with its mutable unlock state.
// Unlocking is one-way: once Unlocked is true it never flips back.
type Achievement struct {
	Index       int        `json:"index"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// =============================================================================
// CHALLENGES
// =============================================================================

// Challenge is the daily goal generated for one calendar day. Exactly one
// challenge exists per day; stale entries are purged on month rollover.
type Challenge struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Reward       string          `json:"reward"`
	Date         time.Time       `json:"date"`
	Completed    bool            `json:"completed"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsFor reports whether the challenge belongs to the day containing at.
func (c Challenge) IsFor(at time.Time) bool {
	return c.Date.Equal(DayStart(at))
}
