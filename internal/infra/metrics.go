package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	ticksReceived     atomic.Uint64
	orderUpdates      atomic.Uint64
	errorsTotal       atomic.Uint64
	reconnectAttempts atomic.Uint64

	// Gauges
	connected      atomic.Int32 // 1 = connected, 0 = not
	lastTickUnixNs atomic.Int64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordTick records a received tick.
func (m *Metrics) RecordTick() {
	m.ticksReceived.Add(1)
	m.lastTickUnixNs.Store(time.Now().UnixNano())
}

// RecordOrderUpdate records an order postback.
func (m *Metrics) RecordOrderUpdate() {
	m.orderUpdates.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// RecordReconnect records one reconnect attempt.
func (m *Metrics) RecordReconnect() {
	m.reconnectAttempts.Add(1)
}

// SetConnected sets the connection gauge.
func (m *Metrics) SetConnected(up bool) {
	if up {
		m.connected.Store(1)
	} else {
		m.connected.Store(0)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	TicksReceived     uint64
	OrderUpdates      uint64
	ErrorsTotal       uint64
	ReconnectAttempts uint64
	Connected         bool
	LastTickAt        time.Time
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var lastTick time.Time
	if ns := m.lastTickUnixNs.Load(); ns > 0 {
		lastTick = time.Unix(0, ns)
	}

	return MetricsSnapshot{
		TicksReceived:     m.ticksReceived.Load(),
		OrderUpdates:      m.orderUpdates.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		ReconnectAttempts: m.reconnectAttempts.Load(),
		Connected:         m.connected.Load() == 1,
		LastTickAt:        lastTick,
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ticksReceived.Store(0)
	m.orderUpdates.Store(0)
	m.errorsTotal.Store(0)
	m.reconnectAttempts.Store(0)
	m.connected.Store(0)
	m.lastTickUnixNs.Store(0)
}
