/*
Package notify provides the default engine collaborators: a logrus-backed
notifier for user-visible alerts and an asynchronous, best-effort analytics
sink.

Both honor the fire-and-forget contract: neither blocks the engine, and
failures stay inside this package.
*/
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/earnwise/earnings-engine/earnings"
)

// =============================================================================
// LOG NOTIFIER
// =============================================================================

// LogNotifier renders alert events as log lines. It stands in for a platform
// notification dispatcher in server and test environments.
type LogNotifier struct {
	Log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{Log: log}
}

func (n *LogNotifier) RequestPermission() error { return nil }

func (n *LogNotifier) Notify(ev earnings.Event) {
	n.Log.WithField("event", ev.EventName()).Info("notification")
}

// =============================================================================
// ASYNC ANALYTICS
// =============================================================================

// defaultQueueSize bounds the analytics backlog; events beyond it are
// dropped rather than blocking the engine.
const defaultQueueSize = 256

// Handler consumes a delivered analytics event.
type Handler func(ev earnings.Event)

// AsyncAnalytics forwards events to a handler on a background goroutine.
// Track never blocks: when the queue is full the event is dropped and
// counted.
type AsyncAnalytics struct {
	log     *logrus.Logger
	handler Handler
	ch      chan earnings.Event
	done    chan struct{}
	closed  chan struct{}
	once    sync.Once

	mu      sync.Mutex
	dropped int
}

// NewAsyncAnalytics starts the sink. A nil handler logs each event at Debug.
func NewAsyncAnalytics(log *logrus.Logger, handler Handler) *AsyncAnalytics {
	a := &AsyncAnalytics{
		log:     log,
		handler: handler,
		ch:      make(chan earnings.Event, defaultQueueSize),
		done:    make(chan struct{}),
		closed:  make(chan struct{}),
	}
	if a.handler == nil {
		a.handler = func(ev earnings.Event) {
			log.WithField("event", ev.EventName()).Debug("analytics event")
		}
	}
	go a.run()
	return a
}

// Track enqueues the event, dropping it when the queue is full.
func (a *AsyncAnalytics) Track(ev earnings.Event) {
	select {
	case <-a.done:
		return
	default:
	}
	select {
	case a.ch <- ev:
	default:
		a.mu.Lock()
		a.dropped++
		a.mu.Unlock()
	}
}

// Dropped reports how many events were discarded under pressure.
func (a *AsyncAnalytics) Dropped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// Close stops accepting events and drains what is already queued.
func (a *AsyncAnalytics) Close() {
	a.once.Do(func() { close(a.done) })
	<-a.closed
}

func (a *AsyncAnalytics) run() {
	defer close(a.closed)
	for {
		select {
		case ev := <-a.ch:
			a.deliver(ev)
		case <-a.done:
			for {
				select {
				case ev := <-a.ch:
					a.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (a *AsyncAnalytics) deliver(ev earnings.Event) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithField("panic", r).Warn("analytics handler panicked")
		}
	}()
	a.handler(ev)
}
