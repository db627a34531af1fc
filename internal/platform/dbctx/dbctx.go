package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with the transaction a write must join.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction bound to the request context.
func (c Context) DB() *gorm.DB {
	if c.Tx == nil {
		return nil
	}
	return c.Tx.WithContext(c.ctx())
}

func (c Context) ctx() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
