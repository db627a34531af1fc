package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"sales-service/internal/dberr"
	"sales-service/internal/domain"
	"sales-service/internal/infra/cache"
	rabbit "sales-service/internal/infra/rabbitmq"
	"sales-service/internal/platform/logger"
	"sales-service/internal/repository"
	"sales-service/internal/schema"
)

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbit.PublisherInterface
	cache     cache.Cache
	cacheTTL  time.Duration
	loads     singleflight.Group
	gens      generations
	events    sync.WaitGroup
	log       *logger.Logger
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface, log *logger.Logger) *OrderService {
	if pub == nil {
		pub = rabbit.NopPublisher{}
	}
	return &OrderService{
		repo:      r,
		publisher: pub,
		cacheTTL:  defaultCacheTTL,
		log:       log.With("service", "OrderService"),
	}
}

func (s *OrderService) SetPublisher(pub rabbit.PublisherInterface) {
	if pub == nil {
		pub = rabbit.NopPublisher{}
	}
	s.publisher = pub
}

func (s *OrderService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

func (s *OrderService) Save(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderAggregate, error) {
	id, err := s.repo.Save(ctx, draft)
	if err != nil {
		return nil, classify(s.log, "order.save", schema.Order(), err)
	}
	if id == 0 {
		return nil, saveFailed(schema.EntityOrder)
	}

	agg := &domain.OrderAggregate{Order: draft.Order, Items: draft.Items, Payment: draft.Payment}
	agg.ID = id
	s.publishSaved(agg)
	return agg, nil
}

func (s *OrderService) Get(ctx context.Context, id uint64) (*domain.OrderAggregate, error) {
	key := orderCacheKey(id)
	if s.cache != nil {
		var cached domain.OrderAggregate
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("order cache read failed", "order_id", id, "error", err)
		} else if found {
			return &cached, nil
		}
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		gen := s.gens.current(key)
		// Shared by every caller waiting on key, so one caller's
		// cancellation must not fail the others.
		lctx := context.WithoutCancel(ctx)
		agg, err := s.repo.Load(lctx, id)
		if err != nil {
			return nil, err
		}
		if agg == nil {
			return nil, dberr.NotFound(schema.EntityOrder)
		}
		if s.cache != nil && s.gens.current(key) == gen {
			if err := s.cache.Set(lctx, key, agg, s.cacheTTL); err != nil {
				s.log.Warn("order cache write failed", "order_id", id, "error", err)
			}
		}
		return agg, nil
	})
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, err
		}
		return nil, classify(s.log, "order.get", schema.Order(), err)
	}
	return v.(*domain.OrderAggregate), nil
}

func (s *OrderService) Update(ctx context.Context, id uint64, patch domain.OrderPatch) error {
	ok, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return classify(s.log, "order.update", schema.Order(), err)
	}
	if !ok {
		return dberr.NotFound(schema.EntityOrder)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id uint64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classify(s.log, "order.delete", schema.Order(), err)
	}
	if n == 0 {
		return dberr.NotFound(schema.EntityOrder)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *OrderService) GetItem(ctx context.Context, id uint64) (*domain.OrderItem, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "order.get_item", schema.Order(), err)
	}
	if item == nil {
		return nil, dberr.NotFound("order_item")
	}
	return item, nil
}

func (s *OrderService) Wait() {
	s.events.Wait()
}

// invalidate drops the cached order and detaches loads that started before
// the write, so the next Get reads committed state.
func (s *OrderService) invalidate(ctx context.Context, id uint64) {
	key := orderCacheKey(id)
	s.gens.bump(key)
	s.loads.Forget(key)
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key); err != nil {
		s.log.Warn("order cache invalidation failed", "order_id", id, "error", err)
	}
}

func (s *OrderService) publishSaved(agg *domain.OrderAggregate) {
	evt := domain.OrderSavedEvent{
		OrderID:    agg.ID,
		CustomerID: agg.CustomerID,
		Status:     agg.Status,
		ItemCount:  len(agg.Items),
		Grandtotal: agg.Grandtotal,
		SavedAt:    time.Now().UTC(),
	}

	s.events.Add(1)
	go func() {
		defer s.events.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, domain.EventOrderSaved, evt); err != nil {
			s.log.Warn("publish order.saved failed", "order_id", evt.OrderID, "error", err)
		}
	}()
}

func orderCacheKey(id uint64) string {
	return fmt.Sprintf("order:%d", id)
}
