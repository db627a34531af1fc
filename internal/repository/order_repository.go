package repository

import (
	"context"

	"sales-service/internal/domain"
)

// OrderRepository persists the order aggregate. Save and Update run in a
// single transaction; storage errors are returned unchanged.
type OrderRepository interface {
	Save(ctx context.Context, draft *domain.OrderDraft) (uint64, error)
	// Update reports false when the order or any addressed child row does not
	// exist; nothing is written in that case.
	Update(ctx context.Context, id uint64, patch domain.OrderPatch) (bool, error)
	FindByID(ctx context.Context, id uint64) (*domain.OrderAggregate, error)
	Items(ctx context.Context, agg *domain.OrderAggregate) ([]domain.OrderItem, error)
	Payment(ctx context.Context, agg *domain.OrderAggregate) (*domain.OrderPayment, error)
	Load(ctx context.Context, id uint64) (*domain.OrderAggregate, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	FindItemByID(ctx context.Context, id uint64) (*domain.OrderItem, error)
}
