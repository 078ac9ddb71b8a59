package tap

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"kite_tap/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	divider      = "============================================================"
	unknownField = "unknown"
)

// Renderer formats ticks as labeled console blocks. Fields the feed did
// not deliver print as "unknown" instead of a fake zero.
type Renderer struct {
	labels map[uint32]string
}

// NewRenderer creates a renderer with an optional token -> symbol map
func NewRenderer(labels map[uint32]string) *Renderer {
	return &Renderer{labels: labels}
}

// Render writes one tick as a single block. The block is assembled in
// memory first so the sink sees exactly one write per tick.
func (r *Renderer) Render(w io.Writer, tick domain.Tick) error {
	var b strings.Builder

	header := r.labels[tick.InstrumentToken]
	if header == "" {
		header = strconv.FormatUint(uint64(tick.InstrumentToken), 10)
	}

	b.WriteString("\n" + divider + "\n")
	fmt.Fprintf(&b, "  %s TICK DATA\n", header)
	b.WriteString(divider + "\n")

	writeField(&b, "Instrument Token", strconv.FormatUint(uint64(tick.InstrumentToken), 10))
	writeField(&b, "Last Price", tick.LastPrice.String())
	writeField(&b, "Last Quantity", fmtQty(tick.LastQuantity))
	writeField(&b, "Volume", fmtQty(tick.Volume))
	writeField(&b, "Buy Quantity", fmtQty(tick.BuyQuantity))
	writeField(&b, "Sell Quantity", fmtQty(tick.SellQuantity))

	if tick.OHLC != nil {
		writeField(&b, "Open", tick.OHLC.Open.String())
		writeField(&b, "High", tick.OHLC.High.String())
		writeField(&b, "Low", tick.OHLC.Low.String())
		writeField(&b, "Close", tick.OHLC.Close.String())
	} else {
		writeField(&b, "Open", unknownField)
		writeField(&b, "High", unknownField)
		writeField(&b, "Low", unknownField)
		writeField(&b, "Close", unknownField)
	}

	writeField(&b, "Change", fmtPrice(tick.Change))
	writeField(&b, "Timestamp", fmtTime(tick.Timestamp))
	writeField(&b, "Last Trade Time", fmtTime(tick.LastTradeTime))
	b.WriteString(divider + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-18s%s\n", label+":", value)
}

func fmtQty(v *int64) string {
	if v == nil {
		return unknownField
	}
	return strconv.FormatInt(*v, 10)
}

func fmtPrice(d *decimal.Decimal) string {
	if d == nil {
		return unknownField
	}
	return d.String()
}

func fmtTime(ts *time.Time) string {
	if ts == nil {
		return unknownField
	}
	return ts.Format("2006-01-02 15:04:05")
}
