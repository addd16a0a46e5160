package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/earnwise/earnings-engine/earnings"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestAsyncAnalytics_DeliversInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string
	a := NewAsyncAnalytics(quietLog(), func(ev earnings.Event) {
		mu.Lock()
		got = append(got, ev.EventName())
		mu.Unlock()
	})

	a.Track(earnings.EarningsUpdated{})
	a.Track(earnings.GoalAchieved{})
	a.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"earnings_updated", "goal_achieved"}, got)
	assert.Zero(t, a.Dropped())
}

func TestAsyncAnalytics_DropsWhenQueueIsFull(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	a := NewAsyncAnalytics(quietLog(), func(earnings.Event) {
		once.Do(func() { close(started) })
		<-block
	})

	// One event in flight, defaultQueueSize queued, the rest dropped.
	a.Track(earnings.EarningsUpdated{})
	<-started
	for i := 0; i < defaultQueueSize+10; i++ {
		a.Track(earnings.EarningsUpdated{})
	}
	assert.Equal(t, 10, a.Dropped())

	close(block)
	a.Close()
}

func TestAsyncAnalytics_CloseDrainsQueue(t *testing.T) {
	var mu sync.Mutex
	delivered := 0
	a := NewAsyncAnalytics(quietLog(), func(earnings.Event) {
		mu.Lock()
		delivered++
		mu.Unlock()
		time.Sleep(time.Millisecond)
	})

	const n = 20
	for i := 0; i < n; i++ {
		a.Track(earnings.EarningsUpdated{})
	}
	a.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, n, delivered)
}

func TestAsyncAnalytics_TrackAfterCloseIsQuiet(t *testing.T) {
	a := NewAsyncAnalytics(quietLog(), nil)
	a.Close()

	// Must not panic or count as a drop.
	a.Track(earnings.EarningsUpdated{})
	a.Close()
	assert.Zero(t, a.Dropped())
}

func TestAsyncAnalytics_HandlerPanicIsContained(t *testing.T) {
	a := NewAsyncAnalytics(quietLog(), func(earnings.Event) {
		panic("sink exploded")
	})
	a.Track(earnings.GoalAchieved{})
	a.Close()
}
