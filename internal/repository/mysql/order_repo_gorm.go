package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sales-service/internal/domain"
	"sales-service/internal/platform/dbctx"
	"sales-service/internal/platform/logger"
	"sales-service/internal/repository"
)

type orderRepo struct {
	db      *gorm.DB
	tx      TxRunner
	items   *OrderItemRepo
	payment *OrderPaymentRepo
	log     *logger.Logger
}

func NewOrderRepository(db *gorm.DB, log *logger.Logger) repository.OrderRepository {
	return &orderRepo{
		db:      db,
		tx:      NewGormTxRunner(db),
		items:   NewOrderItemRepo(db, log),
		payment: NewOrderPaymentRepo(db, log),
		log:     log,
	}
}

func (r *orderRepo) Save(ctx context.Context, draft *domain.OrderDraft) (uint64, error) {
	if draft == nil {
		return 0, errors.New("order draft is nil")
	}
	trace := newWriteTrace(r.log, "order.save")

	err := r.tx.InTx(ctx, func(dbc dbctx.Context) error {
		order := draft.Order
		order.ID = 0
		if order.Status == "" {
			order.Status = domain.StatusPending
		}
		if err := dbc.DB().Create(&order).Error; err != nil {
			return err
		}
		trace.advance(stageParentWritten)

		if len(draft.Items) > 0 {
			if _, err := r.items.SaveMany(dbc, order.ID, draft.Items); err != nil {
				return err
			}
			trace.advance(stageItemsWritten)
		}
		if draft.Payment != nil {
			if _, err := r.payment.Save(dbc, order.ID, draft.Payment); err != nil {
				return err
			}
			trace.advance(stagePaymentWritten)
		}
		draft.Order = order
		return nil
	})
	trace.finish(err)
	if err != nil {
		return 0, err
	}
	return draft.Order.ID, nil
}

func (r *orderRepo) Update(ctx context.Context, id uint64, patch domain.OrderPatch) (bool, error) {
	trace := newWriteTrace(r.log, "order.update")

	err := r.tx.InTx(ctx, func(dbc dbctx.Context) error {
		res := dbc.DB().Model(&domain.Order{}).Where("id = ?", id).Updates(patch.Columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errNoMatch
		}
		trace.advance(stageParentWritten)

		if len(patch.Items) > 0 {
			affected, err := r.items.BulkUpdate(dbc, id, patch.Items)
			if err != nil {
				return err
			}
			if !allMatched(affected) {
				return errNoMatch
			}
			trace.advance(stageItemsWritten)
		}

		if patch.Payment != nil {
			current, err := r.payment.current(dbc, id)
			if err != nil {
				return err
			}
			if current == nil {
				return errNoMatch
			}
			n, err := r.payment.Update(dbc, id, current.ID, patch.Payment.Columns())
			if err != nil {
				return err
			}
			if n != 1 {
				return errNoMatch
			}
			trace.advance(stagePaymentWritten)
		}
		return nil
	})
	trace.finish(err)

	if errors.Is(err, errNoMatch) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.OrderAggregate, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.OrderAggregate{Order: o}, nil
}

func (r *orderRepo) Items(ctx context.Context, agg *domain.OrderAggregate) ([]domain.OrderItem, error) {
	if agg == nil || agg.ID == 0 {
		return nil, domain.ErrAggregateNotLoaded
	}
	return r.items.FindByParentID(ctx, agg.ID)
}

func (r *orderRepo) Payment(ctx context.Context, agg *domain.OrderAggregate) (*domain.OrderPayment, error) {
	if agg == nil || agg.ID == 0 {
		return nil, domain.ErrAggregateNotLoaded
	}
	return r.payment.FindByParentID(ctx, agg.ID)
}

func (r *orderRepo) Load(ctx context.Context, id uint64) (*domain.OrderAggregate, error) {
	agg, err := r.FindByID(ctx, id)
	if err != nil || agg == nil {
		return agg, err
	}
	if agg.Items, err = r.Items(ctx, agg); err != nil {
		return nil, err
	}
	if agg.Payment, err = r.Payment(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *orderRepo) FindItemByID(ctx context.Context, id uint64) (*domain.OrderItem, error) {
	return r.items.FindByID(ctx, id)
}
