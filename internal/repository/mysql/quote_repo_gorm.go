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

type quoteRepo struct {
	db      *gorm.DB
	tx      TxRunner
	items   *QuoteItemRepo
	payment *QuotePaymentRepo
	log     *logger.Logger
}

func NewQuoteRepository(db *gorm.DB, log *logger.Logger) repository.QuoteRepository {
	return &quoteRepo{
		db:      db,
		tx:      NewGormTxRunner(db),
		items:   NewQuoteItemRepo(db, log),
		payment: NewQuotePaymentRepo(db, log),
		log:     log,
	}
}

// Save writes the quote, its items and its payment in one transaction. On
// success draft carries the generated ids.
func (r *quoteRepo) Save(ctx context.Context, draft *domain.QuoteDraft) (uint64, error) {
	if draft == nil {
		return 0, errors.New("quote draft is nil")
	}
	trace := newWriteTrace(r.log, "quote.save")

	err := r.tx.InTx(ctx, func(dbc dbctx.Context) error {
		quote := draft.Quote
		quote.ID = 0
		if err := dbc.DB().Create(&quote).Error; err != nil {
			return err
		}
		trace.advance(stageParentWritten)

		if len(draft.Items) > 0 {
			if _, err := r.items.SaveMany(dbc, quote.ID, draft.Items); err != nil {
				return err
			}
			trace.advance(stageItemsWritten)
		}
		if draft.Payment != nil {
			if _, err := r.payment.Save(dbc, quote.ID, draft.Payment); err != nil {
				return err
			}
			trace.advance(stagePaymentWritten)
		}
		draft.Quote = quote
		return nil
	})
	trace.finish(err)
	if err != nil {
		return 0, err
	}
	return draft.Quote.ID, nil
}

// Update applies patch to quote id. It reports false, with nothing written,
// when the quote, a patched item or the payment does not exist.
func (r *quoteRepo) Update(ctx context.Context, id uint64, patch domain.QuotePatch) (bool, error) {
	trace := newWriteTrace(r.log, "quote.update")

	err := r.tx.InTx(ctx, func(dbc dbctx.Context) error {
		res := dbc.DB().Model(&domain.Quote{}).Where("id = ?", id).Updates(patch.Columns())
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

// FindByID returns the quote without children, or nil when it does not exist.
func (r *quoteRepo) FindByID(ctx context.Context, id uint64) (*domain.QuoteAggregate, error) {
	var q domain.Quote
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.QuoteAggregate{Quote: q}, nil
}

func (r *quoteRepo) Items(ctx context.Context, agg *domain.QuoteAggregate) ([]domain.QuoteItem, error) {
	if agg == nil || agg.ID == 0 {
		return nil, domain.ErrAggregateNotLoaded
	}
	return r.items.FindByParentID(ctx, agg.ID)
}

func (r *quoteRepo) Payment(ctx context.Context, agg *domain.QuoteAggregate) (*domain.QuotePayment, error) {
	if agg == nil || agg.ID == 0 {
		return nil, domain.ErrAggregateNotLoaded
	}
	return r.payment.FindByParentID(ctx, agg.ID)
}

// Load returns the quote with items and payment filled in.
func (r *quoteRepo) Load(ctx context.Context, id uint64) (*domain.QuoteAggregate, error) {
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

// Delete removes the quote; items and payment go with it through the
// cascading foreign keys.
func (r *quoteRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Quote{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *quoteRepo) FindItemByID(ctx context.Context, id uint64) (*domain.QuoteItem, error) {
	return r.items.FindByID(ctx, id)
}

func allMatched(affected []int64) bool {
	for _, n := range affected {
		if n != 1 {
			return false
		}
	}
	return true
}
