package infra

import (
	"testing"
)

func TestMetrics_RecordTick(t *testing.T) {
	m := &Metrics{}

	m.RecordTick()
	m.RecordTick()
	m.RecordTick()

	snap := m.Snapshot()

	if snap.TicksReceived != 3 {
		t.Errorf("Expected 3 ticks, got %d", snap.TicksReceived)
	}

	if snap.LastTickAt.IsZero() {
		t.Error("Expected last tick time to be recorded")
	}
}

func TestMetrics_Connected(t *testing.T) {
	m := &Metrics{}

	snap := m.Snapshot()
	if snap.Connected {
		t.Error("Expected disconnected initially")
	}

	m.SetConnected(true)
	snap = m.Snapshot()
	if !snap.Connected {
		t.Error("Expected connected")
	}

	m.SetConnected(false)
	snap = m.Snapshot()
	if snap.Connected {
		t.Error("Expected disconnected")
	}
}

func TestMetrics_Reconnects(t *testing.T) {
	m := &Metrics{}

	m.RecordReconnect()
	m.RecordReconnect()

	snap := m.Snapshot()
	if snap.ReconnectAttempts != 2 {
		t.Errorf("Expected 2 reconnect attempts, got %d", snap.ReconnectAttempts)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordTick()
	m.RecordError()
	m.RecordOrderUpdate()
	m.SetConnected(true)

	m.Reset()
	snap := m.Snapshot()

	if snap.TicksReceived != 0 {
		t.Error("Expected 0 ticks after reset")
	}
	if snap.ErrorsTotal != 0 {
		t.Error("Expected 0 errors after reset")
	}
	if snap.OrderUpdates != 0 {
		t.Error("Expected 0 order updates after reset")
	}
	if snap.Connected {
		t.Error("Expected disconnected after reset")
	}
	if !snap.LastTickAt.IsZero() {
		t.Error("Expected last tick time cleared after reset")
	}
}
