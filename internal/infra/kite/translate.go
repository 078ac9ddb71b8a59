package kite

import (
	"kite_tap/internal/domain"

	"github.com/shopspring/decimal"
	kiteconnect "github.com/zerodha/gokiteconnect/v4"
	"github.com/zerodha/gokiteconnect/v4/models"
)

// toDomainTick converts an SDK tick into the domain model. The SDK zero-fills
// fields the packet did not carry, so conversion is mode-aware: an LTP packet
// becomes a price-only tick and an index packet never grows quantities.
func toDomainTick(t models.Tick) domain.Tick {
	out := domain.Tick{
		InstrumentToken: t.InstrumentToken,
		Mode:            domain.Mode(t.Mode),
		IsTradable:      t.IsTradable,
		LastPrice:       decimal.NewFromFloat(t.LastPrice),
	}

	if out.Mode == domain.ModeLTP {
		return out
	}

	change := decimal.NewFromFloat(t.NetChange)
	out.Change = &change
	out.OHLC = &domain.OHLC{
		Open:  decimal.NewFromFloat(t.OHLC.Open),
		High:  decimal.NewFromFloat(t.OHLC.High),
		Low:   decimal.NewFromFloat(t.OHLC.Low),
		Close: decimal.NewFromFloat(t.OHLC.Close),
	}

	// Index packets carry no trade quantities
	if !t.IsIndex {
		lastQty := int64(t.LastTradedQuantity)
		volume := int64(t.VolumeTraded)
		buyQty := int64(t.TotalBuyQuantity)
		sellQty := int64(t.TotalSellQuantity)

		out.LastQuantity = &lastQty
		out.Volume = &volume
		out.BuyQuantity = &buyQty
		out.SellQuantity = &sellQty
	}

	if ts := t.Timestamp.Time; !ts.IsZero() {
		out.Timestamp = &ts
	}
	if ltt := t.LastTradeTime.Time; !ltt.IsZero() {
		out.LastTradeTime = &ltt
	}

	return out
}

// toOrderUpdate trims the vendor order postback to the fields worth logging
func toOrderUpdate(o kiteconnect.Order) domain.OrderUpdate {
	return domain.OrderUpdate{
		OrderID:         o.OrderID,
		Status:          o.Status,
		TradingSymbol:   o.TradingSymbol,
		TransactionType: o.TransactionType,
	}
}
