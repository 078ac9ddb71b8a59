package domain

import (
	"context"
	"time"
)

// StreamClient is the vendor streaming connection the tap drives.
// Implemented by the Kite ticker adapter in infra; replaced with a fake
// in tests.
type StreamClient interface {
	// Run blocks until the connection is torn down or ctx is canceled
	Run(ctx context.Context) error
	// Close releases the connection. Safe to call more than once.
	Close()
	Subscribe(tokens []uint32) error
	SetMode(mode Mode, tokens []uint32) error
}

// StreamListener receives the client's lifecycle and data callbacks.
// The client delivers callbacks sequentially, never two at once.
// Implementations must not panic: the client's delivery loop depends on
// callback stability.
type StreamListener interface {
	OnConnect()
	OnTick(tick Tick)
	OnClose(code int, reason string)
	OnError(err error)
	OnReconnect(attempt int, delay time.Duration)
	OnNoReconnect(attempt int)
	OnOrderUpdate(order OrderUpdate)
}

// InstrumentRepository defines how instrument metadata is persisted
type InstrumentRepository interface {
	UpsertInstrument(inst *Instrument) error
	GetInstrument(token uint32) (*Instrument, error)
	GetAllInstruments() ([]Instrument, error)
}
