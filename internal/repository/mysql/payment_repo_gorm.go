package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sales-service/internal/domain"
	"sales-service/internal/platform/dbctx"
	"sales-service/internal/platform/logger"
)

// PaymentRepo stores the single payment row of an aggregate.
type PaymentRepo[T any, PT childRow[T]] struct {
	db           *gorm.DB
	parentColumn string
	log          *logger.Logger
}

type (
	QuotePaymentRepo = PaymentRepo[domain.QuotePayment, *domain.QuotePayment]
	OrderPaymentRepo = PaymentRepo[domain.OrderPayment, *domain.OrderPayment]
)

func NewQuotePaymentRepo(db *gorm.DB, log *logger.Logger) *QuotePaymentRepo {
	return &QuotePaymentRepo{db: db, parentColumn: "quote_id", log: log}
}

func NewOrderPaymentRepo(db *gorm.DB, log *logger.Logger) *OrderPaymentRepo {
	return &OrderPaymentRepo{db: db, parentColumn: "order_id", log: log}
}

// Save inserts the payment for parentID and returns its id.
func (r *PaymentRepo[T, PT]) Save(dbc dbctx.Context, parentID uint64, payment PT) (uint64, error) {
	tx := dbc.DB()
	if tx == nil {
		return 0, ErrTxRequired
	}
	payment.SetParentID(parentID)
	if err := tx.Create(payment).Error; err != nil {
		return 0, err
	}
	return payment.RowID(), nil
}

// Update writes cols to the payment paymentID of parentID and returns the
// matched-row count.
func (r *PaymentRepo[T, PT]) Update(dbc dbctx.Context, parentID, paymentID uint64, cols map[string]any) (int64, error) {
	tx := dbc.DB()
	if tx == nil {
		return 0, ErrTxRequired
	}
	res := tx.Model(PT(new(T))).
		Where("id = ? AND "+r.parentColumn+" = ?", paymentID, parentID).
		Updates(cols)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PaymentRepo[T, PT]) FindByParentID(ctx context.Context, parentID uint64) (PT, error) {
	return r.find(r.db.WithContext(ctx), parentID)
}

// current reads the payment through the open transaction so the update sees
// rows written earlier in the same unit.
func (r *PaymentRepo[T, PT]) current(dbc dbctx.Context, parentID uint64) (PT, error) {
	tx := dbc.DB()
	if tx == nil {
		return nil, ErrTxRequired
	}
	return r.find(tx, parentID)
}

func (r *PaymentRepo[T, PT]) find(db *gorm.DB, parentID uint64) (PT, error) {
	var row T
	if err := db.Where(r.parentColumn+" = ?", parentID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return PT(&row), nil
}
