package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventQuoteSaved = "quote.saved"
	EventOrderSaved = "order.saved"
)

type QuoteSavedEvent struct {
	QuoteID    uint64          `json:"quoteId"`
	CustomerID uint64          `json:"customerId"`
	ItemCount  int             `json:"itemCount"`
	Grandtotal decimal.Decimal `json:"grandtotal"`
	SavedAt    time.Time       `json:"savedAt"`
}

type OrderSavedEvent struct {
	OrderID    uint64          `json:"orderId"`
	CustomerID uint64          `json:"customerId"`
	Status     OrderStatus     `json:"status"`
	ItemCount  int             `json:"itemCount"`
	Grandtotal decimal.Decimal `json:"grandtotal"`
	SavedAt    time.Time       `json:"savedAt"`
}
