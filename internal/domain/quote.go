package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the cart-like aggregate root.
type Quote struct {
	ID         uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64          `json:"customer_id" gorm:"not null;index"`
	IsActive   bool            `json:"is_active" gorm:"not null"`
	Contact                    `gorm:"embedded"`
	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(9,2);not null"`
	Grandtotal decimal.Decimal `json:"grandtotal" gorm:"type:decimal(9,2);not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Quote) TableName() string { return "quote" }

// Line holds the columns shared by quote and order items.
type Line struct {
	Name      string          `json:"name" gorm:"size:50;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(9,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	ProductID uint64          `json:"product_id" gorm:"not null;index"`
	RowTotal  decimal.Decimal `json:"row_total" gorm:"type:decimal(9,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

type QuoteItem struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	QuoteID uint64 `json:"quote_id" gorm:"not null;index"`
	Line
}

func (QuoteItem) TableName() string { return "quote_item" }

func (i *QuoteItem) SetParentID(id uint64) { i.QuoteID = id }
func (i *QuoteItem) RowID() uint64         { return i.ID }

// QuoteDraft is the payload of a quote save: the root plus optional children.
type QuoteDraft struct {
	Quote   Quote
	Items   []QuoteItem
	Payment *QuotePayment
}

// QuoteAggregate is the value returned by reads. Children are only filled by
// loads that asked for them.
type QuoteAggregate struct {
	Quote
	Items   []QuoteItem   `json:"items"`
	Payment *QuotePayment `json:"payment"`
}

// QuotePatch is a partial quote update; nil fields are left untouched.
type QuotePatch struct {
	CustomerID *uint64
	IsActive   *bool
	Contact    ContactPatch
	Subtotal   *decimal.Decimal
	Grandtotal *decimal.Decimal
	Items      []LinePatch
	Payment    *PaymentPatch
}

// Columns returns the root columns present in the patch.
func (p QuotePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.CustomerID != nil {
		cols["customer_id"] = *p.CustomerID
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
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

func (p QuotePatch) IsEmpty() bool {
	return len(p.Columns()) == 0 && len(p.Items) == 0 && p.Payment == nil
}
