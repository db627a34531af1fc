package services

import (
	"context"

	"sales-service/internal/dberr"
	"sales-service/internal/domain"
	"sales-service/internal/platform/logger"
	"sales-service/internal/repository"
	"sales-service/internal/schema"
)

// mysqlRowIsReferenced is ER_ROW_IS_REFERENCED_2, raised when a delete would
// orphan rows of a non-cascading child table.
const mysqlRowIsReferenced = 1451

type CustomerService struct {
	repo repository.CustomerRepository
	log  *logger.Logger
}

func NewCustomerService(r repository.CustomerRepository, log *logger.Logger) *CustomerService {
	return &CustomerService{repo: r, log: log.With("service", "CustomerService")}
}

func (s *CustomerService) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	id, err := s.repo.Save(ctx, c)
	if err != nil {
		return nil, classify(s.log, "customer.save", schema.Customer(), err)
	}
	if id == 0 {
		return nil, saveFailed(schema.EntityCustomer)
	}
	c.ID = id
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint64) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "customer.get", schema.Customer(), err)
	}
	if c == nil {
		return nil, dberr.NotFound(schema.EntityCustomer)
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, classify(s.log, "customer.list", schema.Customer(), err)
	}
	if all == nil {
		all = []domain.Customer{}
	}
	return all, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint64, patch domain.CustomerPatch) error {
	ok, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return classify(s.log, "customer.update", schema.Customer(), err)
	}
	if !ok {
		return dberr.NotFound(schema.EntityCustomer)
	}
	return nil
}

// Delete removes the customer. A customer that still has orders is a
// conflict.
func (s *CustomerService) Delete(ctx context.Context, id uint64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if dberr.Number(err) == mysqlRowIsReferenced {
			s.log.Warn("customer delete refused", "customer_id", id, "error", err)
			return dberr.Conflict(schema.EntityCustomer, "The customer still has orders.")
		}
		return classify(s.log, "customer.delete", schema.Customer(), err)
	}
	if n == 0 {
		return dberr.NotFound(schema.EntityCustomer)
	}
	return nil
}
