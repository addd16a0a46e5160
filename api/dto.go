/*
dto.go - Request/response data structures for the HTTP surface

Currency fields travel as fixed two-decimal strings; decimals never pass
through float64 on the way out.
*/
package api

import (
	"time"

	"github.com/earnwise/earnings-engine/earnings"
)

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// COMMAND PAYLOADS
// =============================================================================

type UpdateEarningsRequest struct {
	Amount string `json:"amount"`
}

type SetupProfileRequest struct {
	MonthlyIncome string `json:"monthly_income"`
	DisplayName   string `json:"display_name,omitempty"`
	Policy        string `json:"policy"`
}

type WorkingHoursRequest struct {
	Start         string `json:"start"` // "HH:MM"
	End           string `json:"end"`   // "HH:MM", may wrap past midnight
	AutoCalculate bool   `json:"auto_calculate"`
}

type PaydayRequest struct {
	DayOfMonth int  `json:"day_of_month,omitempty"`
	LastDay    bool `json:"last_day,omitempty"`
}

// =============================================================================
// QUERY VIEWS
// =============================================================================

type ProfileDTO struct {
	MonthlyIncome string `json:"monthly_income"`
	Policy        string `json:"policy"`
	DailyTarget   string `json:"daily_target"`
	SetupComplete bool   `json:"setup_complete"`
	DisplayName   string `json:"display_name,omitempty"`
}

type EarningsDTO struct {
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	GoalReached bool    `json:"goal_reached"`
	Progress    float64 `json:"progress"`
	Message     string  `json:"message"`
}

type DetailedProgressDTO struct {
	TodayEarnings       string `json:"today_earnings"`
	DailyTarget         string `json:"daily_target"`
	MonthlyTarget       string `json:"monthly_target"`
	RemainingTarget     string `json:"remaining_target"`
	AverageNeededPerDay string `json:"average_needed_per_day"`
	OnTrack             bool   `json:"on_track"`
}

type WorkingTimeDTO struct {
	ShiftDurationHours float64 `json:"shift_duration_hours"`
	IsCurrentlyWorking bool    `json:"is_currently_working"`
	HoursWorkedToday   float64 `json:"hours_worked_today"`
	EstimatedEarnings  string  `json:"estimated_earnings"`
}

type PaydayDTO struct {
	NextPayday string `json:"next_payday"`
	DaysUntil  int    `json:"days_until"`
}

type AchievementDTO struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedAt  string `json:"unlocked_at,omitempty"`
}

type ChallengeDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount"`
	Reward       string `json:"reward"`
	Date         string `json:"date"`
	Completed    bool   `json:"completed"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toProfileDTO(p earnings.UserProfile) ProfileDTO {
	return ProfileDTO{
		MonthlyIncome: p.MonthlyIncome.StringFixed(2),
		Policy:        string(p.Policy),
		DailyTarget:   p.DailyTarget.StringFixed(2),
		SetupComplete: p.SetupComplete,
		DisplayName:   p.DisplayName,
	}
}

func toDetailedProgressDTO(d earnings.DetailedProgressInfo) DetailedProgressDTO {
	return DetailedProgressDTO{
		TodayEarnings:       d.TodayEarnings.StringFixed(2),
		DailyTarget:         d.DailyTarget.StringFixed(2),
		MonthlyTarget:       d.MonthlyTarget.StringFixed(2),
		RemainingTarget:     d.RemainingTarget.StringFixed(2),
		AverageNeededPerDay: d.AverageNeededPerDay.StringFixed(2),
		OnTrack:             d.OnTrack,
	}
}

func toWorkingTimeDTO(w earnings.WorkingTimeInfo) WorkingTimeDTO {
	return WorkingTimeDTO{
		ShiftDurationHours: w.ShiftDurationHours,
		IsCurrentlyWorking: w.IsCurrentlyWorking,
		HoursWorkedToday:   w.HoursWorkedToday,
		EstimatedEarnings:  w.EstimatedEarnings.StringFixed(2),
	}
}

func toAchievementDTO(a earnings.Achievement) AchievementDTO {
	dto := AchievementDTO{
		Index:       a.Index,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Unlocked:    a.Unlocked,
	}
	if a.UnlockedAt != nil {
		dto.UnlockedAt = a.UnlockedAt.Format(time.RFC3339)
	}
	return dto
}

func toChallengeDTO(c earnings.Challenge) ChallengeDTO {
	return ChallengeDTO{
		Title:        c.Title,
		Description:  c.Description,
		TargetAmount: c.TargetAmount.StringFixed(2),
		Reward:       c.Reward,
		Date:         c.Date.Format("2006-01-02"),
		Completed:    c.Completed,
	}
}
