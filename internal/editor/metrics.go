package editor

import (
	"sync"
	"time"
)

// Metrics tracks command execution statistics for an editor.
type Metrics struct {
	mu            sync.Mutex
	executed      uint64
	noOps         uint64
	failures      uint64
	totalDuration time.Duration
}

// MetricsSnapshot is a point-in-time copy of editor metrics.
type MetricsSnapshot struct {
	Executed      uint64
	NoOps         uint64
	Failures      uint64
	TotalDuration time.Duration
}

// Record adds one batch outcome to the metrics.
func (m *Metrics) Record(status Status, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed++
	m.totalDuration += d
	switch status {
	case StatusNoOp:
		m.noOps++
	case StatusError:
		m.failures++
	}
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSnapshot{
		Executed:      m.executed,
		NoOps:         m.noOps,
		Failures:      m.failures,
		TotalDuration: m.totalDuration,
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = 0
	m.noOps = 0
	m.failures = 0
	m.totalDuration = 0
}
