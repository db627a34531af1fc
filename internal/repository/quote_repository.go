package repository

import (
	"context"

	"sales-service/internal/domain"
)

type QuoteRepository interface {
	Save(ctx context.Context, draft *domain.QuoteDraft) (uint64, error)
	Update(ctx context.Context, id uint64, patch domain.QuotePatch) (bool, error)
	FindByID(ctx context.Context, id uint64) (*domain.QuoteAggregate, error)
	Items(ctx context.Context, agg *domain.QuoteAggregate) ([]domain.QuoteItem, error)
	Payment(ctx context.Context, agg *domain.QuoteAggregate) (*domain.QuotePayment, error)
	Load(ctx context.Context, id uint64) (*domain.QuoteAggregate, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	FindItemByID(ctx context.Context, id uint64) (*domain.QuoteItem, error)
}
