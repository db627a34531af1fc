package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sales-service/internal/platform/dbctx"
)

var (
	// ErrTxRequired is returned by child writes invoked outside a transaction.
	ErrTxRequired = errors.New("child write requires an active transaction")
	// ErrItemIDMissing is returned by a bulk update when an item has no id.
	ErrItemIDMissing = errors.New("item id is required for update")

	// errNoMatch aborts an update whose target rows do not all exist.
	errNoMatch = errors.New("update matched no row")
)

// TxRunner owns the transaction boundary of an aggregate write. fn's error
// rolls the transaction back and is returned as is.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return errors.New("transaction runner has nil db")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
