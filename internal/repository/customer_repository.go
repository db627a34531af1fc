package repository

import (
	"context"

	"sales-service/internal/domain"
)

type CustomerRepository interface {
	Save(ctx context.Context, c *domain.Customer) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, id uint64, patch domain.CustomerPatch) (bool, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}
