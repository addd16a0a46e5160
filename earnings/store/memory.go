// Package store provides Gateway implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/earnwise/earnings-engine/earnings"
)

// =============================================================================
// MEMORY GATEWAY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	hasProfile bool
	profile    earnings.UserProfile
	// Earnings keyed by day-start epoch so one day never overwrites another.
	days         map[int64]earnings.DailyEarnings
	achievements []earnings.Achievement
	challenges   []earnings.Challenge
	lastMonth    string
	seen         bool

	fail error
}

func NewMemory() *Memory {
	return &Memory{days: make(map[int64]earnings.DailyEarnings)}
}

// FailWith makes subsequent Load/Save calls return err, for exercising the
// best-effort persistence contract. Pass nil to clear.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

func (m *Memory) Load(_ context.Context, dayStart time.Time) (earnings.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.fail != nil {
		return earnings.Snapshot{}, m.fail
	}

	snap := earnings.DefaultSnapshot(dayStart)
	snap.FirstRun = !m.seen
	if m.hasProfile {
		snap.Profile = m.profile
	}
	if today, ok := m.days[dayStart.Unix()]; ok {
		snap.Today = today
	}
	snap.Achievements = append([]earnings.Achievement(nil), m.achievements...)
	snap.Challenges = append([]earnings.Challenge(nil), m.challenges...)
	snap.LastCalculatedMonth = m.lastMonth
	return snap, nil
}

func (m *Memory) Save(_ context.Context, snap earnings.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}

	m.hasProfile = true
	m.profile = snap.Profile
	m.days[earnings.DayStart(snap.Today.Date).Unix()] = snap.Today
	for _, d := range snap.PriorDays {
		m.days[earnings.DayStart(d.Date).Unix()] = d
	}
	m.achievements = append([]earnings.Achievement(nil), snap.Achievements...)
	m.challenges = append([]earnings.Challenge(nil), snap.Challenges...)
	m.lastMonth = snap.LastCalculatedMonth
	m.seen = true
	return nil
}

// SavedDays reports how many distinct day records have been written.
func (m *Memory) SavedDays() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.days)
}

// DayRecord returns the persisted record for the day containing at.
func (m *Memory) DayRecord(at time.Time) (earnings.DailyEarnings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.days[earnings.DayStart(at).Unix()]
	return d, ok
}
