/*
Package sqlite provides a SQLite-backed implementation of the persistence
gateway.

PURPOSE:
  Persists the engine snapshot as structured key/value records. The key
  space is fixed: profile, per-day earnings (keyed by day-start epoch),
  achievements list, challenges list, the last-calculated-month marker and
  the first-run marker. Absence of any key is a valid state; Load fills in
  type defaults instead of failing.

KEY TABLE:
  records(key TEXT PRIMARY KEY, value TEXT)
  Values are JSON documents. Earnings keys look like "earnings:1756598400"
  so a day rollover never overwrites a prior day's record.

BEST-EFFORT CONTRACT:
  Corrupt records are treated like missing ones (logged upstream, defaults
  apply). Save replaces the whole snapshot atomically in one transaction.

WAL MODE:
  SQLite is opened with WAL for better crash recovery; a single local
  writer is the expected workload.

USAGE:
  gw, err := sqlite.New("./data/earnwise.db")
  defer gw.Close()
  engine := earnings.New(gw, earnings.Options{})

SEE ALSO:
  - earnings/store.go: gateway contract
  - earnings/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/earnwise/earnings-engine/earnings"
)

const (
	keyProfile      = "profile"
	keyAchievements = "achievements"
	keyChallenges   = "challenges"
	keyMonthMarker  = "last_calculated_month"
	keyFirstRun     = "first_run_complete"
	earningsPrefix  = "earnings:"
)

// Gateway implements earnings.Gateway on SQLite.
type Gateway struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Gateway, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	g := &Gateway{db: db}
	if err := g.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return g, nil
}

// Close closes the database connection.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) migrate() error {
	_, err := g.db.Exec(`
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

func earningsKey(dayStart time.Time) string {
	return earningsPrefix + strconv.FormatInt(earnings.DayStart(dayStart).Unix(), 10)
}

// Load reads the snapshot for the day starting at dayStart. Missing or
// corrupt records yield type defaults.
func (g *Gateway) Load(ctx context.Context, dayStart time.Time) (earnings.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := earnings.DefaultSnapshot(dayStart)

	var seen bool
	if g.get(ctx, keyFirstRun, &seen) && seen {
		snap.FirstRun = false
	}
	g.get(ctx, keyProfile, &snap.Profile)
	g.get(ctx, earningsKey(dayStart), &snap.Today)
	g.get(ctx, keyAchievements, &snap.Achievements)
	g.get(ctx, keyChallenges, &snap.Challenges)
	g.get(ctx, keyMonthMarker, &snap.LastCalculatedMonth)

	// Guard against a record that decoded but belongs to another day.
	if !earnings.DayStart(snap.Today.Date).Equal(earnings.DayStart(dayStart)) {
		snap.Today = earnings.NewDailyEarnings(dayStart)
	}
	return snap, nil
}

// get decodes the JSON value under key into out. Returns false when the key
// is absent or the value does not decode; defaults apply in both cases.
func (g *Gateway) get(ctx context.Context, key string, out any) bool {
	var raw string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

// Save writes the snapshot in one transaction. The earnings record goes
// under the key derived from snap.Today.Date.
func (g *Gateway) Save(ctx context.Context, snap earnings.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	type put struct {
		key   string
		value any
	}
	puts := []put{
		{keyProfile, snap.Profile},
		{earningsKey(snap.Today.Date), snap.Today},
		{keyAchievements, snap.Achievements},
		{keyChallenges, snap.Challenges},
		{keyMonthMarker, snap.LastCalculatedMonth},
		{keyFirstRun, true},
	}
	for _, d := range snap.PriorDays {
		puts = append(puts, put{earningsKey(d.Date), d})
	}
	for _, p := range puts {
		raw, err := json.Marshal(p.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.key, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			p.key, string(raw))
		if err != nil {
			return fmt.Errorf("write %s: %w", p.key, err)
		}
	}
	return tx.Commit()
}
