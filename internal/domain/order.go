package domain

// OrderUpdate is a trimmed projection of the vendor's order postback.
// The payload schema belongs to the broker; the tap only logs it.
type OrderUpdate struct {
	OrderID         string `json:"order_id"`
	Status          string `json:"status"`
	TradingSymbol   string `json:"trading_symbol"`
	TransactionType string `json:"transaction_type"`
}
