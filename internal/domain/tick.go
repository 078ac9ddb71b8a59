package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode is the tick delivery granularity requested from the feed.
type Mode string

const (
	ModeLTP   Mode = "ltp"   // last traded price only
	ModeQuote Mode = "quote" // price + quantities + OHLC
	ModeFull  Mode = "full"  // quote + timestamps + depth
)

// ParseMode validates a mode string from configuration
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLTP, ModeQuote, ModeFull:
		return Mode(s), nil
	}
	return "", ErrInvalidMode
}

// OHLC holds the open/high/low/close summary carried on quote and full ticks
type OHLC struct {
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// Tick represents one market update for a single instrument.
// Fields the feed did not deliver are nil, never zero-faked: LTP packets
// carry only a price, and index packets never carry volume.
type Tick struct {
	InstrumentToken uint32 `json:"instrument_token"`
	Mode            Mode   `json:"mode"`
	IsTradable      bool   `json:"is_tradable"`

	LastPrice    decimal.Decimal  `json:"last_price"`
	LastQuantity *int64           `json:"last_quantity,omitempty"`
	Volume       *int64           `json:"volume,omitempty"`
	BuyQuantity  *int64           `json:"buy_quantity,omitempty"`
	SellQuantity *int64           `json:"sell_quantity,omitempty"`
	OHLC         *OHLC            `json:"ohlc,omitempty"`
	Change       *decimal.Decimal `json:"change,omitempty"`

	Timestamp     *time.Time `json:"timestamp,omitempty"`
	LastTradeTime *time.Time `json:"last_trade_time,omitempty"`
}

// ChangeDirection returns "positive", "negative", or "neutral"
func (t *Tick) ChangeDirection() string {
	if t.Change == nil {
		return "neutral"
	}
	if t.Change.IsPositive() {
		return "positive"
	}
	if t.Change.IsNegative() {
		return "negative"
	}
	return "neutral"
}

// HasDayRange reports whether the tick carries a usable OHLC summary
func (t *Tick) HasDayRange() bool {
	return t.OHLC != nil && !t.OHLC.High.IsZero()
}
