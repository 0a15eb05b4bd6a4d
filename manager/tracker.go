package manager

import (
	"sync"
	"time"
)

// relayMetrics holds the counters of relayed diagnoses.
type relayMetrics struct {
	inFlight    int
	completed   int
	failed      int
	lastLogTime time.Time
	changed     bool
	mu          sync.Mutex
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	InFlight  int
	Completed int
	Failed    int
}

// Tracker counts relays and periodically logs the counters. It never blocks
// or rejects a request.
type Tracker struct {
	metrics      *relayMetrics
	logRateLimit time.Duration
	closed       chan struct{}
	closeOnce    sync.Once
}

// NewTracker starts a Tracker that logs at most once per logRateLimit.
func NewTracker(logRateLimit time.Duration) *Tracker {
	if logRateLimit <= 0 {
		logRateLimit = time.Second
	}
	t := &Tracker{
		metrics:      &relayMetrics{},
		logRateLimit: logRateLimit,
		closed:       make(chan struct{}),
	}
	go t.monitor()
	return t
}

// Begin records a relay entering the upstream call. The returned func records
// its outcome; calling it more than once has no further effect.
func (t *Tracker) Begin() func(ok bool) {
	t.metrics.incrementInFlight()
	var once sync.Once
	return func(ok bool) {
		once.Do(func() {
			t.metrics.finish(ok)
		})
	}
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Snapshot {
	m := t.metrics
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{InFlight: m.inFlight, Completed: m.completed, Failed: m.failed}
}

// Shutdown stops the monitor goroutine.
func (t *Tracker) Shutdown() {
	t.closeOnce.Do(func() {
		close(t.closed)
	})
}

// monitor logs the counters when they changed and the rate limit allows.
func (t *Tracker) monitor() {
	ticker := time.NewTicker(t.logRateLimit / 2)
	defer ticker.Stop()

	for {
		select {
		case <-t.closed:
			return
		case <-ticker.C:
			t.logMetrics()
		}
	}
}

func (t *Tracker) logMetrics() {
	m := t.metrics
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if m.changed && now.Sub(m.lastLogTime) >= t.logRateLimit {
		log.Infof("Relay | In flight: %d | Completed: %d | Failed: %d", m.inFlight, m.completed, m.failed)
		m.lastLogTime = now
		m.changed = false
	}
}

func (m *relayMetrics) incrementInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight++
	m.changed = true
}

func (m *relayMetrics) finish(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight > 0 {
		m.inFlight--
	}
	if ok {
		m.completed++
	} else {
		m.failed++
	}
	m.changed = true
}
