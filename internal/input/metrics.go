package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks chord resolution.
type Metrics struct {
	keysTotal     atomic.Uint64
	actionsTotal  atomic.Uint64
	insertsTotal  atomic.Uint64
	droppedKeys   atomic.Uint64
	overflows     atomic.Uint64
	chordTimeouts atomic.Uint64
	unbound       atomic.Uint64

	// Latency ring buffer
	mu                sync.RWMutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int

	peakKeyLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		keyLatencies:      make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKey records a handled key with its processing time.
func (m *Metrics) RecordKey(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keysTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordAction records an emitted action.
func (m *Metrics) RecordAction(insert bool) {
	if !m.enabled.Load() {
		return
	}
	m.actionsTotal.Add(1)
	if insert {
		m.insertsTotal.Add(1)
	}
}

// RecordDroppedKey records a key that produced nothing.
func (m *Metrics) RecordDroppedKey() {
	if m.enabled.Load() {
		m.droppedKeys.Add(1)
	}
}

// RecordOverflow records a key dropped because the pending chord was full.
func (m *Metrics) RecordOverflow() {
	if m.enabled.Load() {
		m.overflows.Add(1)
	}
}

// RecordChordTimeout records a pending chord flushed by timeout.
func (m *Metrics) RecordChordTimeout() {
	if m.enabled.Load() {
		m.chordTimeouts.Add(1)
	}
}

// RecordUnbound records a chord that ended on a node with no action.
func (m *Metrics) RecordUnbound() {
	if m.enabled.Load() {
		m.unbound.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeysTotal     uint64
	ActionsTotal  uint64
	InsertsTotal  uint64
	DroppedKeys   uint64
	Overflows     uint64
	ChordTimeouts uint64
	Unbound       uint64

	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	KeysPerSecond float64
	Uptime        time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := slices.Clone(m.keyLatencies)
	start := m.startTime
	m.mu.RUnlock()

	keys := m.keysTotal.Load()
	uptime := time.Since(start)

	snap := MetricsSnapshot{
		KeysTotal:      keys,
		ActionsTotal:   m.actionsTotal.Load(),
		InsertsTotal:   m.insertsTotal.Load(),
		DroppedKeys:    m.droppedKeys.Load(),
		Overflows:      m.overflows.Load(),
		ChordTimeouts:  m.chordTimeouts.Load(),
		Unbound:        m.unbound.Load(),
		PeakKeyLatency: time.Duration(m.peakKeyLatency.Load()),
		Uptime:         uptime,
	}
	if uptime > 0 {
		snap.KeysPerSecond = float64(keys) / uptime.Seconds()
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		maxLat = max(maxLat, l)
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := min(int(float64(len(valid))*0.99), len(valid)-1)
	return avg, maxLat, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keysTotal.Store(0)
	m.actionsTotal.Store(0)
	m.insertsTotal.Store(0)
	m.droppedKeys.Store(0)
	m.overflows.Store(0)
	m.chordTimeouts.Store(0)
	m.unbound.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool
	Overflows        uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck returns the current health status.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		Overflows:        m.overflows.Load(),
		PeakLatency:      time.Duration(m.peakKeyLatency.Load()),
		LatencyThreshold: latencyThreshold,
	}

	switch {
	case status.Overflows > 0:
		status.Healthy = false
		status.Message = "pending chord overflowed"
	case status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	default:
		status.Message = "healthy"
	}
	return status
}
