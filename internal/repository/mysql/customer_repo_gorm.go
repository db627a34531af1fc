package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sales-service/internal/domain"
	"sales-service/internal/platform/logger"
	"sales-service/internal/repository"
)

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepository(db *gorm.DB, log *logger.Logger) repository.CustomerRepository {
	return &customerRepo{db: db, log: log}
}

// Save inserts c and sets its generated id.
func (r *customerRepo) Save(ctx context.Context, c *domain.Customer) (uint64, error) {
	if c == nil {
		return 0, errors.New("customer is nil")
	}
	c.ID = 0
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *customerRepo) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) FindAll(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update reports false when no customer has id.
func (r *customerRepo) Update(ctx context.Context, id uint64, patch domain.CustomerPatch) (bool, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return false, errors.New("customer patch is empty")
	}
	res := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete removes the customer and, through the cascade, its quotes. A
// customer that still has orders is refused by the order foreign key.
func (r *customerRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Customer{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
