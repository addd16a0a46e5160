package earnings

import "time"

// =============================================================================
// PROGRESS CACHE - TTL cache over the derived aggregate views
// =============================================================================
// The cache is NOT safe for concurrent use on its own; reads and
// invalidations are serialized through the Engine's single mutation path.

// DefaultCacheTTL bounds how stale a served aggregate view can be.
const DefaultCacheTTL = 30 * time.Second

// ProgressCache holds the last-computed MonthInfo and DetailedProgressInfo
// with a shared freshness stamp. A hit within the TTL returns the cached
// value; a miss recomputes via the supplied derivation and re-stamps.
type ProgressCache struct {
	ttl time.Duration
	now func() time.Time

	lastRefresh time.Time
	monthInfo   *MonthInfo
	detailed    *DetailedProgressInfo
}

// NewProgressCache creates an empty cache. A non-positive ttl falls back to
// DefaultCacheTTL; a nil clock falls back to time.Now.
func NewProgressCache(ttl time.Duration, now func() time.Time) *ProgressCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ProgressCache{ttl: ttl, now: now}
}

func (c *ProgressCache) fresh() bool {
	return c.now().Sub(c.lastRefresh) < c.ttl
}

// MonthInfo serves the cached month view or recomputes it on miss.
func (c *ProgressCache) MonthInfo(compute func() MonthInfo) MonthInfo {
	if c.monthInfo != nil && c.fresh() {
		return *c.monthInfo
	}
	info := compute()
	c.monthInfo = &info
	c.lastRefresh = c.now()
	return info
}

// Detailed serves the cached progress view or recomputes it on miss.
func (c *ProgressCache) Detailed(compute func() DetailedProgressInfo) DetailedProgressInfo {
	if c.detailed != nil && c.fresh() {
		return *c.detailed
	}
	info := compute()
	c.detailed = &info
	c.lastRefresh = c.now()
	return info
}

// Invalidate clears both cached views and resets the freshness stamp to the
// distant past, forcing recomputation on the next access.
func (c *ProgressCache) Invalidate() {
	c.monthInfo = nil
	c.detailed = nil
	c.lastRefresh = time.Time{}
}
