package earnings

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaver_CoalescesBurst(t *testing.T) {
	var writes atomic.Int32
	s := newSaver(30*time.Millisecond, func() { writes.Add(1) })
	defer s.Stop()

	// A burst of mutations inside the window collapses into one write.
	for i := 0; i < 10; i++ {
		s.Schedule()
	}

	assert.Eventually(t, func() bool { return writes.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// A later mutation schedules a fresh write.
	s.Schedule()
	assert.Eventually(t, func() bool { return writes.Load() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestSaver_StopFlushesPendingWrite(t *testing.T) {
	var writes atomic.Int32
	s := newSaver(time.Hour, func() { writes.Add(1) })

	s.Schedule()
	s.Stop()

	assert.Equal(t, int32(1), writes.Load(), "pending write must flush on Stop")
}

func TestSaver_StopWithoutPendingIsQuiet(t *testing.T) {
	var writes atomic.Int32
	s := newSaver(time.Hour, func() { writes.Add(1) })

	s.Stop()
	s.Schedule() // after Stop: ignored

	assert.Equal(t, int32(0), writes.Load())
}
