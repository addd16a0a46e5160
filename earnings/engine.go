/*
engine.go - The earnings orchestrator

PURPOSE:
  Owns the live UserProfile / DailyEarnings / achievement / challenge state,
  runs the periodic auto-update tick, applies manual updates, invalidates the
  progress cache, and schedules debounced persistence. All mutating entry
  points serialize on one mutex, so no two mutations ever interleave on the
  same state and tests can drive "tick then manual update" deterministically.

LIFECYCLE:
  engine := earnings.New(store, earnings.Options{...})
  engine.Start(ctx)   // load-or-default, seed, rollover check, start tick
  defer engine.Close() // stop tick, flush pending save

MONOTONICITY:
  The periodic tick only ever raises today's amount. A manual update may set
  any non-negative value, higher or lower.

FAILURE SEMANTICS:
  Persistence failures are logged and swallowed; in-memory state stays
  authoritative for the session. Collaborator panics are recovered so a
  failing notifier or analytics sink can never affect engine state.

SEE ALSO:
  - cache.go: the TTL cache this engine invalidates on every mutation
  - saver.go: the debounce window behind schedule-save
*/
package earnings

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is deliberately coarse; the tick bounds CPU/IO cost and
// is not correctness-critical.
const DefaultTickInterval = 180 * time.Second

const saveTimeout = 5 * time.Second

// Options configures an Engine. Zero values fall back to the defaults named
// on each field.
type Options struct {
	TickInterval     time.Duration // DefaultTickInterval
	CacheTTL         time.Duration // DefaultCacheTTL
	SaveDebounce     time.Duration // DefaultSaveDebounce
	OnTrackTolerance float64       // DefaultOnTrackTolerance

	Logger    *logrus.Logger
	Notifier  Notifier
	Analytics Analytics

	// Now and Rand are injectable for deterministic tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// Engine is the single owner of all mutable earnings state.
type Engine struct {
	mu sync.Mutex

	log       *logrus.Logger
	store     Gateway
	notifier  Notifier
	analytics Analytics

	tickInterval time.Duration
	tolerance    float64
	now          func() time.Time
	rng          *rand.Rand

	profile         UserProfile
	today           DailyEarnings
	achievements    []Achievement
	challenges      []Challenge
	lastMonth       string
	currentProgress float64

	// priorDays holds records whose day rolled over before their last
	// mutation was flushed. They ride along with every save until one
	// succeeds, so a rollover inside the debounce window loses nothing.
	priorDays []DailyEarnings

	cache *ProgressCache
	saver *saver

	lifecycle sync.Mutex
	ticker    *time.Ticker
	stop      chan struct{}
	wg        sync.WaitGroup
	started   bool
	closed    bool
}

// New constructs an Engine around the given gateway. Call Start before using
// the command or query surfaces.
func New(store Gateway, opts Options) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.OnTrackTolerance <= 0 {
		opts.OnTrackTolerance = DefaultOnTrackTolerance
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Analytics == nil {
		opts.Analytics = NopAnalytics{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		log:          opts.Logger,
		store:        store,
		notifier:     opts.Notifier,
		analytics:    opts.Analytics,
		tickInterval: opts.TickInterval,
		tolerance:    opts.OnTrackTolerance,
		now:          opts.Now,
		rng:          opts.Rand,
		cache:        NewProgressCache(opts.CacheTTL, opts.Now),
	}
	e.saver = newSaver(opts.SaveDebounce, e.persist)
	return e
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start loads persisted state (or defaults), seeds the achievement catalog if
// empty, ensures today's challenge exists, runs the month-rollover check and
// launches the periodic tick.
func (e *Engine) Start(ctx context.Context) error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()
	if e.started || e.closed {
		return nil
	}

	now := e.now()
	snap, err := e.store.Load(ctx, DayStart(now))
	if err != nil {
		e.log.WithError(err).Warn("load failed, starting from defaults")
		snap = DefaultSnapshot(now)
	}

	e.mu.Lock()
	e.profile = snap.Profile
	e.today = snap.Today
	e.achievements = snap.Achievements
	e.challenges = snap.Challenges
	e.lastMonth = snap.LastCalculatedMonth
	if len(e.achievements) == 0 {
		e.achievements = SeedAchievements()
	}
	if snap.FirstRun {
		e.log.Info("first run, seeding initial state")
	}
	e.currentProgress = e.today.Progress(e.profile.DailyTarget)
	e.challenges = purgeStaleChallenges(e.challenges, now)
	e.ensureChallengeLocked(now)
	e.checkMonthRolloverLocked(now)
	e.mu.Unlock()

	// Fire-and-forget; a denied or failing permission request never blocks
	// startup.
	go func() {
		if err := e.notifier.RequestPermission(); err != nil {
			e.log.WithError(err).Debug("notification permission request failed")
		}
	}()

	e.ticker = time.NewTicker(e.tickInterval)
	e.stop = make(chan struct{})
	e.wg.Add(1)
	go e.run()

	e.started = true
	e.log.WithField("tick_interval", e.tickInterval).Info("earnings engine started")
	return nil
}

// Close stops the periodic tick and flushes any pending debounced save. The
// tick never fires into a torn-down engine.
func (e *Engine) Close() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.started {
		e.ticker.Stop()
		close(e.stop)
		e.wg.Wait()
	}
	e.saver.Stop()
	e.log.Info("earnings engine stopped")
}

func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.ticker.C:
			e.RunAutoUpdate()
		case <-e.stop:
			return
		}
	}
}

// =============================================================================
// PERIODIC TICK
// =============================================================================

// RunAutoUpdate is one tick-equivalent evaluation: compute the time-based
// estimate and apply it only if it raises today's amount. No-op when the
// profile is not set up or auto-calculate is disabled. Exposed so enabling
// auto-calculate (and tests) can evaluate immediately.
func (e *Engine) RunAutoUpdate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.profile.SetupComplete || !e.profile.WorkingHours.AutoCalculate {
		return
	}
	now := e.now()
	e.rollDayLocked(now)
	e.checkMonthRolloverLocked(now)

	estimate := EstimateEarnings(e.profile, now)
	if estimate.GreaterThan(e.today.Amount) {
		e.applyEarningsLocked(estimate, MethodAuto, now)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// UpdateTodayEarnings sets today's recorded amount. Unlike the tick it may
// lower the amount. Rejects negative amounts and commands before setup.
func (e *Engine) UpdateTodayEarnings(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.profile.SetupComplete {
		return ErrNotConfigured
	}
	now := e.now()
	e.rollDayLocked(now)
	e.checkMonthRolloverLocked(now)
	e.applyEarningsLocked(amount, MethodManual, now)
	return nil
}

// SetupProfile configures (or reconfigures) income, display name and the
// calculation policy, recomputes the daily target for the current month and
// stamps the last-calculated-month marker.
func (e *Engine) SetupProfile(income decimal.Decimal, name string, policy CalculationPolicy) error {
	if !income.IsPositive() {
		return ErrInvalidIncome
	}
	if !policy.Valid() {
		return ErrInvalidPolicy
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.rollDayLocked(now)

	e.profile.MonthlyIncome = income
	e.profile.DisplayName = name
	e.profile.Policy = policy
	e.profile.DailyTarget = e.profile.ComputeDailyTarget(now)
	e.profile.SetupComplete = true
	e.lastMonth = MonthKey(now)

	// The target changed, so an uncompleted challenge for today is sized
	// against stale numbers. Completed ones keep their history.
	if idx := challengeFor(e.challenges, now); idx >= 0 && !e.challenges[idx].Completed {
		e.challenges = append(e.challenges[:idx], e.challenges[idx+1:]...)
	}
	e.ensureChallengeLocked(now)

	e.today.GoalReached = e.profile.DailyTarget.IsPositive() &&
		e.today.Amount.GreaterThanOrEqual(e.profile.DailyTarget)
	e.currentProgress = e.today.Progress(e.profile.DailyTarget)

	e.cache.Invalidate()
	e.saver.Schedule()
	e.track(ProfileConfigured{Income: income, Policy: policy})
	e.log.WithFields(logrus.Fields{
		"income": income.StringFixed(2),
		"policy": policy,
		"target": e.profile.DailyTarget.StringFixed(2),
	}).Info("profile configured")
	return nil
}

// UpdateWorkingHours replaces the shift window. If auto-calculate was just
// enabled, one tick-equivalent evaluation runs immediately (still subject to
// the monotonicity rule).
func (e *Engine) UpdateWorkingHours(cfg WorkingHoursConfig) error {
	if cfg.StartMinute < 0 || cfg.StartMinute >= minutesPerDay ||
		cfg.EndMinute < 0 || cfg.EndMinute >= minutesPerDay {
		return ErrInvalidWorkingHours
	}
	e.mu.Lock()
	wasAuto := e.profile.WorkingHours.AutoCalculate
	e.profile.WorkingHours = cfg
	e.cache.Invalidate()
	e.saver.Schedule()
	e.track(WorkingHoursChanged{
		StartMinute:   cfg.StartMinute,
		EndMinute:     cfg.EndMinute,
		AutoCalculate: cfg.AutoCalculate,
	})
	e.mu.Unlock()

	if !wasAuto && cfg.AutoCalculate {
		e.RunAutoUpdate()
	}
	return nil
}

// UpdatePaydaySettings replaces the payday rule.
func (e *Engine) UpdatePaydaySettings(cfg PaydayConfig) error {
	if !cfg.LastDay && (cfg.DayOfMonth < 1 || cfg.DayOfMonth > 31) {
		return ErrInvalidPaydayDay
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Payday = cfg
	e.cache.Invalidate()
	e.saver.Schedule()
	e.track(PaydaySettingsChanged{DayOfMonth: cfg.DayOfMonth, LastDay: cfg.LastDay})
	return nil
}

// CheckMonthRollover compares the persisted year-month marker with the
// current month and recalculates on mismatch. Cheap and idempotent, safe to
// call repeatedly (e.g. from a daily cron job).
func (e *Engine) CheckMonthRollover() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.rollDayLocked(now)
	e.checkMonthRolloverLocked(now)
}

// =============================================================================
// QUERIES
// =============================================================================

// CurrentMonthInfo serves the cached calendar view for the current month.
func (e *Engine) CurrentMonthInfo() MonthInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	return e.cache.MonthInfo(func() MonthInfo {
		return ComputeMonthInfo(now)
	})
}

// DetailedProgress serves the cached earnings view for the current month.
func (e *Engine) DetailedProgress() DetailedProgressInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	return e.cache.Detailed(func() DetailedProgressInfo {
		return ComputeDetailedProgress(e.profile, e.today, now, e.tolerance)
	})
}

// WorkingTimeInfo derives the live shift view for now.
func (e *Engine) WorkingTimeInfo() WorkingTimeInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return WorkingTime(e.profile, e.now())
}

// PaydayInfo derives the next payday and the days remaining until it.
func (e *Engine) PaydayInfo() PaydayInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Payday.PaydayState(e.now())
}

// Message returns the motivational tier for the current progress.
func (e *Engine) Message() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return MotivationalMessage(e.currentProgress)
}

// Profile returns a copy of the current profile.
func (e *Engine) Profile() UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile
}

// TodayEarnings returns a copy of today's record. Queries are read-only:
// day rollover happens on the mutating entry points, the tick, and the
// rollover check (run daily by the server's cron job), not on reads, so
// shortly after midnight this may still be yesterday's record.
func (e *Engine) TodayEarnings() DailyEarnings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.today
}

// Progress returns the capped progress ratio for today.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentProgress
}

// Achievements returns a copy of the achievement list.
func (e *Engine) Achievements() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Achievement, len(e.achievements))
	copy(out, e.achievements)
	return out
}

// TodayChallenge returns today's challenge, if one exists.
func (e *Engine) TodayChallenge() (Challenge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := challengeFor(e.challenges, e.now())
	if idx < 0 {
		return Challenge{}, false
	}
	return e.challenges[idx], true
}

// =============================================================================
// INTERNAL MUTATION PATH
// =============================================================================

// applyEarningsLocked is the single path both the tick and manual updates go
// through once past their gating rules.
func (e *Engine) applyEarningsLocked(amount decimal.Decimal, method UpdateMethod, now time.Time) {
	prevReached := e.today.GoalReached
	e.today.Amount = amount

	target := e.profile.DailyTarget
	ratio := 0.0
	if target.IsPositive() {
		ratio, _ = amount.Div(target).Float64()
	}
	e.today.GoalReached = target.IsPositive() && amount.GreaterThanOrEqual(target)
	e.currentProgress = ratio
	if e.currentProgress > 1.0 {
		e.currentProgress = 1.0
	}

	for _, idx := range evaluateAchievements(e.achievements, amount, ratio, now) {
		e.alert(AchievementUnlocked{Title: e.achievements[idx].Title, Index: idx})
		e.log.WithField("achievement", e.achievements[idx].Title).Info("achievement unlocked")
	}

	if ci := challengeFor(e.challenges, now); ci >= 0 {
		c := &e.challenges[ci]
		if !c.Completed && amount.GreaterThanOrEqual(c.TargetAmount) {
			c.Completed = true
			elapsed := int64(now.Sub(c.CreatedAt).Seconds())
			e.alert(ChallengeCompleted{Title: c.Title, TargetAmount: c.TargetAmount, ElapsedSeconds: elapsed})
			e.log.WithField("challenge", c.Title).Info("challenge completed")
		}
	}

	if !prevReached && e.today.GoalReached {
		e.alert(GoalAchieved{Target: target, Actual: amount, At: now})
		e.log.WithFields(logrus.Fields{
			"target": target.StringFixed(2),
			"actual": amount.StringFixed(2),
		}).Info("daily goal achieved")
	}

	e.track(EarningsUpdated{
		Amount:      amount,
		GoalReached: e.today.GoalReached,
		Progress:    e.currentProgress,
		Method:      method,
	})

	e.cache.Invalidate()
	e.saver.Schedule()
}

// rollDayLocked swaps in a fresh DailyEarnings when the calendar day has
// changed since the current record. The outgoing record is carried on
// priorDays so a pending debounced save still writes it under its own key.
func (e *Engine) rollDayLocked(now time.Time) {
	day := DayStart(now)
	if e.today.Date.Equal(day) {
		return
	}
	e.log.WithField("day", day.Format("2006-01-02")).Info("day rollover")
	e.priorDays = append(e.priorDays, e.today)
	e.today = NewDailyEarnings(now)
	e.currentProgress = 0
	e.ensureChallengeLocked(now)
	e.cache.Invalidate()
	e.saver.Schedule()
}

// checkMonthRolloverLocked recomputes the daily target and regenerates the
// challenge set when the year-month marker no longer matches now. Idempotent
// within a month.
func (e *Engine) checkMonthRolloverLocked(now time.Time) {
	month := MonthKey(now)
	if e.lastMonth == month {
		return
	}
	e.log.WithFields(logrus.Fields{"from": e.lastMonth, "to": month}).Info("month rollover")
	e.lastMonth = month
	if e.profile.SetupComplete {
		e.profile.DailyTarget = e.profile.ComputeDailyTarget(now)
		e.today.GoalReached = e.profile.DailyTarget.IsPositive() &&
			e.today.Amount.GreaterThanOrEqual(e.profile.DailyTarget)
		e.currentProgress = e.today.Progress(e.profile.DailyTarget)
	}
	e.challenges = purgeStaleChallenges(e.challenges, now)
	e.ensureChallengeLocked(now)
	e.cache.Invalidate()
	e.saver.Schedule()
}

func (e *Engine) ensureChallengeLocked(now time.Time) {
	if challengeFor(e.challenges, now) >= 0 {
		return
	}
	e.challenges = append(e.challenges, GenerateChallenge(e.profile.DailyTarget, now, e.rng))
}

func (e *Engine) snapshotLocked() Snapshot {
	achievements := make([]Achievement, len(e.achievements))
	copy(achievements, e.achievements)
	challenges := make([]Challenge, len(e.challenges))
	copy(challenges, e.challenges)
	priorDays := make([]DailyEarnings, len(e.priorDays))
	copy(priorDays, e.priorDays)
	return Snapshot{
		Profile:             e.profile,
		Today:               e.today,
		Achievements:        achievements,
		Challenges:          challenges,
		LastCalculatedMonth: e.lastMonth,
		PriorDays:           priorDays,
	}
}

// persist is the debounced save callback. A failed write is dropped; the
// next scheduled save retries with fresher state, carried prior-day records
// included.
func (e *Engine) persist() {
	e.mu.Lock()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := e.store.Save(ctx, snap); err != nil {
		e.log.WithError(err).Warn("save failed, keeping in-memory state")
		return
	}

	// The carried records are durable now. A rollover during the save may
	// have appended more; only the ones this save wrote are dropped.
	e.mu.Lock()
	e.priorDays = e.priorDays[len(snap.PriorDays):]
	e.mu.Unlock()
}

// =============================================================================
// EVENT EMISSION
// =============================================================================
// Collaborators are best-effort: panics are recovered and the mutation that
// triggered the event is unaffected.

func (e *Engine) track(ev Event) {
	defer e.recoverCollaborator("analytics", ev)
	e.analytics.Track(ev)
}

func (e *Engine) alert(ev Event) {
	e.track(ev)
	defer e.recoverCollaborator("notifier", ev)
	e.notifier.Notify(ev)
}

func (e *Engine) recoverCollaborator(name string, ev Event) {
	if r := recover(); r != nil {
		e.log.WithFields(logrus.Fields{
			"collaborator": name,
			"event":        ev.EventName(),
			"panic":        r,
		}).Warn("collaborator panicked")
	}
}
