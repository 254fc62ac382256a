package transport

import (
	"sync"
	"time"

	"github.com/vietddude/outcall/internal/core/domain"
)

// Stats is a point-in-time snapshot of transport health.
type Stats struct {
	Requests       int           `json:"requests"`
	Failures       int           `json:"failures"`
	Timeouts       int           `json:"timeouts"`
	Throttled      int           `json:"throttled"`
	AverageLatency time.Duration `json:"average_latency_ns"`
	LastRetryAfter string        `json:"last_retry_after,omitempty"`
}

// Monitor tracks latency and failure counts for a transport. Safe for
// concurrent use across orchestration calls sharing one transport.
type Monitor struct {
	mu sync.RWMutex

	recentLatencies  []time.Duration
	maxLatencyWindow int

	requests       int
	failures       int
	timeouts       int
	throttled      int
	lastRetryAfter string
}

// NewMonitor creates a monitor with a 100-sample latency window.
func NewMonitor() *Monitor {
	return &Monitor{
		recentLatencies:  make([]time.Duration, 0, 100),
		maxLatencyWindow: 100,
	}
}

// RecordRequest records a completed round trip with its latency.
func (m *Monitor) RecordRequest(latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.recentLatencies = append(m.recentLatencies, latency)
	if len(m.recentLatencies) > m.maxLatencyWindow {
		m.recentLatencies = m.recentLatencies[1:]
	}
}

// RecordFailure records an attempt that ended without a status code.
func (m *Monitor) RecordFailure(kind domain.TransportErrorKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failures++
	if kind == domain.TransportErrTimeout {
		m.timeouts++
	}
}

// RecordThrottle records a 429 response and its Retry-After header.
func (m *Monitor) RecordThrottle(retryAfter string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.throttled++
	if retryAfter != "" {
		m.lastRetryAfter = retryAfter
	}
}

// Stats returns a snapshot of the current counters.
func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var avg time.Duration
	if len(m.recentLatencies) > 0 {
		var total time.Duration
		for _, l := range m.recentLatencies {
			total += l
		}
		avg = total / time.Duration(len(m.recentLatencies))
	}

	return Stats{
		Requests:       m.requests,
		Failures:       m.failures,
		Timeouts:       m.timeouts,
		Throttled:      m.throttled,
		AverageLatency: avg,
		LastRetryAfter: m.lastRetryAfter,
	}
}
