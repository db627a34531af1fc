package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentDeclined    PaymentStatus = "declined"
	PaymentSystemError PaymentStatus = "system_error"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentDeclined, PaymentSystemError:
		return true
	}
	return false
}

// Payment columns shared by quote and order payments.
type Payment struct {
	Method     string          `json:"method" gorm:"size:10;not null"`
	Name       string          `json:"name" gorm:"size:50;not null"`
	Grandtotal decimal.Decimal `json:"grandtotal" gorm:"type:decimal(9,2);not null"`
	Status     PaymentStatus   `json:"status" gorm:"type:enum('pending','paid','declined','system_error');not null"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

type QuotePayment struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	QuoteID uint64 `json:"quote_id" gorm:"not null;uniqueIndex"`
	Payment
}

func (QuotePayment) TableName() string { return "quote_payment" }

func (p *QuotePayment) SetParentID(id uint64) { p.QuoteID = id }
func (p *QuotePayment) RowID() uint64         { return p.ID }

type OrderPayment struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID uint64 `json:"order_id" gorm:"not null;uniqueIndex"`
	Payment
}

func (OrderPayment) TableName() string { return "order_payment" }

func (p *OrderPayment) SetParentID(id uint64) { p.OrderID = id }
func (p *OrderPayment) RowID() uint64         { return p.ID }
