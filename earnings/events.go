/*
events.go - Domain event feed and collaborator contracts

PURPOSE:
  Defines the named events the engine emits on successful state transitions
  and the interfaces of its external collaborators. Events are
  fire-and-forget: a failing or slow consumer must never block or fail an
  engine mutation, so implementations are expected to be non-blocking and
  the engine additionally shields itself from consumer panics.

EVENTS:
  GoalAchieved         daily target crossed (fires once per transition)
  AchievementUnlocked  catalog entry flipped to unlocked
  ChallengeCompleted   today's challenge target reached
  EarningsUpdated      any amount change (manual or auto)
  ProfileConfigured    setup/reconfigure applied
  WorkingHoursChanged  shift window replaced
  PaydaySettingsChanged payday rule replaced

SEE ALSO:
  - notify/: default Notifier and Analytics implementations
*/
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateMethod distinguishes manual entries from tick-driven estimates.
type UpdateMethod string

const (
	MethodManual UpdateMethod = "manual"
	MethodAuto   UpdateMethod = "auto"
)

// Event is a named domain event. All events represent successful state
// transitions; failures are never propagated into the feed.
type Event interface {
	EventName() string
}

type GoalAchieved struct {
	Target decimal.Decimal
	Actual decimal.Decimal
	At     time.Time
}

type AchievementUnlocked struct {
	Title string
	Index int
}

type ChallengeCompleted struct {
	Title          string
	TargetAmount   decimal.Decimal
	ElapsedSeconds int64
}

type EarningsUpdated struct {
	Amount      decimal.Decimal
	GoalReached bool
	Progress    float64
	Method      UpdateMethod
}

type ProfileConfigured struct {
	Income decimal.Decimal
	Policy CalculationPolicy
}

type WorkingHoursChanged struct {
	StartMinute   int
	EndMinute     int
	AutoCalculate bool
}

type PaydaySettingsChanged struct {
	DayOfMonth int
	LastDay    bool
}

func (GoalAchieved) EventName() string          { return "goal_achieved" }
func (AchievementUnlocked) EventName() string   { return "achievement_unlocked" }
func (ChallengeCompleted) EventName() string    { return "challenge_completed" }
func (EarningsUpdated) EventName() string       { return "earnings_updated" }
func (ProfileConfigured) EventName() string     { return "profile_configured" }
func (WorkingHoursChanged) EventName() string   { return "working_hours_changed" }
func (PaydaySettingsChanged) EventName() string { return "payday_settings_changed" }

// Notifier receives user-visible alert events (goal, achievement, challenge)
// plus a one-time permission request at engine start. Implementations must
// not block.
type Notifier interface {
	RequestPermission() error
	Notify(ev Event)
}

// Analytics receives every named domain event, best-effort. Implementations
// must not block; dropping under pressure is acceptable.
type Analytics interface {
	Track(ev Event)
}

// NopNotifier is the default collaborator when none is injected.
type NopNotifier struct{}

func (NopNotifier) RequestPermission() error { return nil }
func (NopNotifier) Notify(Event)             {}

// NopAnalytics is the default sink when none is injected.
type NopAnalytics struct{}

func (NopAnalytics) Track(Event) {}
