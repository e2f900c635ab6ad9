package transaction

import (
	"sync/atomic"
	"time"
)

// Metrics records processing attempts, outcomes, and cumulative latency.
// All counters are updated atomically; the recorder is safe for concurrent use.
type Metrics struct {
	attempts     atomic.Int64
	successes    atomic.Int64
	failures     atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// MetricsSnapshot is a point-in-time copy of the recorded counters.
type MetricsSnapshot struct {
	Attempts     int64
	Successes    int64
	Failures     int64
	TotalLatency time.Duration
}

// NewMetrics creates an empty recorder.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordAttempt() {
	m.attempts.Add(1)
}

func (m *Metrics) recordOutcome(err error, elapsed time.Duration) {
	if err != nil {
		m.failures.Add(1)
	} else {
		m.successes.Add(1)
	}
	m.totalLatency.Add(int64(elapsed))
}

// Snapshot returns a consistent-enough copy of the counters for logging and tests.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Attempts:     m.attempts.Load(),
		Successes:    m.successes.Load(),
		Failures:     m.failures.Load(),
		TotalLatency: time.Duration(m.totalLatency.Load()),
	}
}
