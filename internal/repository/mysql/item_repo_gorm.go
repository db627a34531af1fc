package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sales-service/internal/domain"
	"sales-service/internal/platform/dbctx"
	"sales-service/internal/platform/logger"
)

// childRow is a row owned by an aggregate root.
type childRow[T any] interface {
	*T
	SetParentID(id uint64)
	RowID() uint64
}

// ItemRepo stores the item collection of one aggregate type. Writes must run
// inside the caller's transaction.
type ItemRepo[T any, PT childRow[T]] struct {
	db           *gorm.DB
	parentColumn string
	log          *logger.Logger
}

type (
	QuoteItemRepo = ItemRepo[domain.QuoteItem, *domain.QuoteItem]
	OrderItemRepo = ItemRepo[domain.OrderItem, *domain.OrderItem]
)

func NewQuoteItemRepo(db *gorm.DB, log *logger.Logger) *QuoteItemRepo {
	return &QuoteItemRepo{db: db, parentColumn: "quote_id", log: log}
}

func NewOrderItemRepo(db *gorm.DB, log *logger.Logger) *OrderItemRepo {
	return &OrderItemRepo{db: db, parentColumn: "order_id", log: log}
}

// SaveMany stamps parentID on every item and inserts them in one statement.
// Generated ids are written back into items and returned in input order.
func (r *ItemRepo[T, PT]) SaveMany(dbc dbctx.Context, parentID uint64, items []T) ([]uint64, error) {
	tx := dbc.DB()
	if tx == nil {
		return nil, ErrTxRequired
	}
	if len(items) == 0 {
		return []uint64{}, nil
	}
	for i := range items {
		PT(&items[i]).SetParentID(parentID)
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}

	ids := make([]uint64, len(items))
	for i := range items {
		ids[i] = PT(&items[i]).RowID()
	}
	return ids, nil
}

// BulkUpdate applies each patch to the row with the patch id, scoped to
// parentID, and returns the matched-row count per patch in input order.
// Rows of other parents are never touched.
func (r *ItemRepo[T, PT]) BulkUpdate(dbc dbctx.Context, parentID uint64, patches []domain.LinePatch) ([]int64, error) {
	tx := dbc.DB()
	if tx == nil {
		return nil, ErrTxRequired
	}

	affected := make([]int64, 0, len(patches))
	for i, p := range patches {
		if p.ItemID() == 0 {
			return nil, fmt.Errorf("%w: position %d", ErrItemIDMissing, i)
		}
		res := tx.Model(PT(new(T))).
			Where("id = ? AND "+r.parentColumn+" = ?", p.ItemID(), parentID).
			Updates(p.Columns())
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			r.log.Debug("item update matched no row", "parent_id", parentID, "item_id", p.ItemID())
		}
		affected = append(affected, res.RowsAffected)
	}
	return affected, nil
}

func (r *ItemRepo[T, PT]) FindByParentID(ctx context.Context, parentID uint64) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where(r.parentColumn+" = ?", parentID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns nil, nil when the item does not exist.
func (r *ItemRepo[T, PT]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
