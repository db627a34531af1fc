package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusComplete   OrderStatus = "complete"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusComplete, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64          `json:"customer_id" gorm:"not null;index"`
	QuoteID    *uint64         `json:"quote_id" gorm:"index"`
	Status     OrderStatus     `json:"status" gorm:"type:enum('pending','processing','complete','cancelled');default:'pending'"`
	Contact                    `gorm:"embedded"`
	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(9,2);not null"`
	Grandtotal decimal.Decimal `json:"grandtotal" gorm:"type:decimal(9,2);not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Order) TableName() string { return "order" }

type OrderItem struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID uint64 `json:"order_id" gorm:"not null;index"`
	Line
}

func (OrderItem) TableName() string { return "order_item" }

func (i *OrderItem) SetParentID(id uint64) { i.OrderID = id }
func (i *OrderItem) RowID() uint64         { return i.ID }

type OrderDraft struct {
	Order   Order
	Items   []OrderItem
	Payment *OrderPayment
}

type OrderAggregate struct {
	Order
	Items   []OrderItem   `json:"items"`
	Payment *OrderPayment `json:"payment"`
}

type OrderPatch struct {
	CustomerID *uint64
	QuoteID    *uint64
	Status     *OrderStatus
	Contact    ContactPatch
	Subtotal   *decimal.Decimal
	Grandtotal *decimal.Decimal
	Items      []LinePatch
	Payment    *PaymentPatch
}

func (p OrderPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.CustomerID != nil {
		cols["customer_id"] = *p.CustomerID
	}
	if p.QuoteID != nil {
		cols["quote_id"] = *p.QuoteID
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	p.Contact.apply(cols)
	if p.Subtotal != nil {
		cols["subtotal"] = *p.Subtotal
	}
	if p.Grandtotal != nil {
		cols["grandtotal"] = *p.Grandtotal
	}
	return cols
}

func (p OrderPatch) IsEmpty() bool {
	return len(p.Columns()) == 0 && len(p.Items) == 0 && p.Payment == nil
}
