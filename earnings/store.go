/*
store.go - Persistence gateway contract

PURPOSE:
  Defines the interface between the engine and its best-effort local store.
  The key space is fixed: profile, today's earnings (keyed by day-start
  epoch), achievements list, challenges list, the last-calculated-month
  marker, and the first-run marker. Absence of any key is a valid state and
  yields type defaults, never an error.

BEST-EFFORT CONTRACT:
  Load returns defaults for missing or corrupt records. Save persists a full
  snapshot; callers never issue writes synchronously, the engine coalesces
  them through a debounce window (see saver.go). A failed write is dropped
  and the next debounced save retries; in-memory state stays authoritative
  for the session.

IMPLEMENTATIONS:
  - store/sqlite: production key/value records in SQLite
  - earnings/store: in-memory gateway for tests and dev
*/
package earnings

import (
	"context"
	"time"
)

// Snapshot is the full persisted state of the engine.
type Snapshot struct {
	Profile             UserProfile
	Today               DailyEarnings
	Achievements        []Achievement
	Challenges          []Challenge
	LastCalculatedMonth string
	FirstRun            bool

	// PriorDays carries records whose calendar day ended while their final
	// mutation was still inside the debounce window. Each is written under
	// its own day key; the engine drops them once a save succeeds.
	PriorDays []DailyEarnings
}

// Gateway is the persistence abstraction.
type Gateway interface {
	// Load reads the snapshot for the day starting at dayStart. The earnings
	// record is looked up under that day's key, so a day rollover never
	// surfaces a prior day's record as today's. Missing keys yield defaults.
	Load(ctx context.Context, dayStart time.Time) (Snapshot, error)

	// Save persists the snapshot. The earnings record is written under the
	// key derived from Snapshot.Today.Date, never overwriting another day.
	// Any PriorDays records are written under their own day keys.
	Save(ctx context.Context, snap Snapshot) error
}

// DefaultSnapshot is the state of a fresh install for the day containing at.
func DefaultSnapshot(at time.Time) Snapshot {
	return Snapshot{
		Today:    NewDailyEarnings(at),
		FirstRun: true,
	}
}
