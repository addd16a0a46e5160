package earnings

import (
	"sync"
	"time"
)

// =============================================================================
// DEBOUNCED SAVER - Coalesces bursts of mutations into one write
// =============================================================================

// DefaultSaveDebounce is the window within which repeated mutations collapse
// into a single persistence write.
const DefaultSaveDebounce = 500 * time.Millisecond

// saver schedules a single deferred call to fn. Schedule during a pending
// window is a no-op, so the first mutation's deadline holds for the burst.
// Callers never block on the write itself.
type saver struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	pending bool
	stopped bool
}

func newSaver(delay time.Duration, fn func()) *saver {
	if delay <= 0 {
		delay = DefaultSaveDebounce
	}
	return &saver{delay: delay, fn: fn}
}

// Schedule arms the debounce timer if no write is already pending.
func (s *saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.pending {
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *saver) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.mu.Unlock()
	s.fn()
}

// Stop cancels any pending timer and, if a write was still owed, runs it
// synchronously. No writes occur after Stop returns.
func (s *saver) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	flush := s.pending
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	if flush {
		s.fn()
	}
}
