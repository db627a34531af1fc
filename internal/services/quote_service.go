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

const (
	defaultCacheTTL = 5 * time.Minute
	publishTimeout  = 5 * time.Second
)

type QuoteService struct {
	repo      repository.QuoteRepository
	publisher rabbit.PublisherInterface
	cache     cache.Cache
	cacheTTL  time.Duration
	loads     singleflight.Group
	gens      generations
	events    sync.WaitGroup
	log       *logger.Logger
}

func NewQuoteService(r repository.QuoteRepository, pub rabbit.PublisherInterface, log *logger.Logger) *QuoteService {
	if pub == nil {
		pub = rabbit.NopPublisher{}
	}
	return &QuoteService{
		repo:      r,
		publisher: pub,
		cacheTTL:  defaultCacheTTL,
		log:       log.With("service", "QuoteService"),
	}
}

// SetPublisher replaces the event publisher. A nil publisher disables events.
func (s *QuoteService) SetPublisher(pub rabbit.PublisherInterface) {
	if pub == nil {
		pub = rabbit.NopPublisher{}
	}
	s.publisher = pub
}

// SetCache enables read-through caching of loaded quotes.
func (s *QuoteService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// Save persists the draft and returns it as an aggregate carrying the
// generated ids.
func (s *QuoteService) Save(ctx context.Context, draft *domain.QuoteDraft) (*domain.QuoteAggregate, error) {
	id, err := s.repo.Save(ctx, draft)
	if err != nil {
		return nil, classify(s.log, "quote.save", schema.Quote(), err)
	}
	if id == 0 {
		return nil, saveFailed(schema.EntityQuote)
	}

	agg := &domain.QuoteAggregate{Quote: draft.Quote, Items: draft.Items, Payment: draft.Payment}
	agg.ID = id
	s.publishSaved(agg)
	return agg, nil
}

func (s *QuoteService) Get(ctx context.Context, id uint64) (*domain.QuoteAggregate, error) {
	key := quoteCacheKey(id)
	if s.cache != nil {
		var cached domain.QuoteAggregate
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("quote cache read failed", "quote_id", id, "error", err)
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
			return nil, dberr.NotFound(schema.EntityQuote)
		}
		if s.cache != nil && s.gens.current(key) == gen {
			if err := s.cache.Set(lctx, key, agg, s.cacheTTL); err != nil {
				s.log.Warn("quote cache write failed", "quote_id", id, "error", err)
			}
		}
		return agg, nil
	})
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, err
		}
		return nil, classify(s.log, "quote.get", schema.Quote(), err)
	}
	return v.(*domain.QuoteAggregate), nil
}

// Update applies patch. A quote, item or payment that does not exist yields
// a not-found error and nothing is written.
func (s *QuoteService) Update(ctx context.Context, id uint64, patch domain.QuotePatch) error {
	ok, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return classify(s.log, "quote.update", schema.Quote(), err)
	}
	if !ok {
		return dberr.NotFound(schema.EntityQuote)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *QuoteService) Delete(ctx context.Context, id uint64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classify(s.log, "quote.delete", schema.Quote(), err)
	}
	if n == 0 {
		return dberr.NotFound(schema.EntityQuote)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *QuoteService) GetItem(ctx context.Context, id uint64) (*domain.QuoteItem, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, classify(s.log, "quote.get_item", schema.Quote(), err)
	}
	if item == nil {
		return nil, dberr.NotFound("quote_item")
	}
	return item, nil
}

// Wait blocks until in-flight event publishes finish.
func (s *QuoteService) Wait() {
	s.events.Wait()
}

// invalidate drops the cached quote and detaches loads that started before
// the write, so the next Get reads committed state.
func (s *QuoteService) invalidate(ctx context.Context, id uint64) {
	key := quoteCacheKey(id)
	s.gens.bump(key)
	s.loads.Forget(key)
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key); err != nil {
		s.log.Warn("quote cache invalidation failed", "quote_id", id, "error", err)
	}
}

func (s *QuoteService) publishSaved(agg *domain.QuoteAggregate) {
	evt := domain.QuoteSavedEvent{
		QuoteID:    agg.ID,
		CustomerID: agg.CustomerID,
		ItemCount:  len(agg.Items),
		Grandtotal: agg.Grandtotal,
		SavedAt:    time.Now().UTC(),
	}

	s.events.Add(1)
	go func() {
		defer s.events.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, domain.EventQuoteSaved, evt); err != nil {
			s.log.Warn("publish quote.saved failed", "quote_id", evt.QuoteID, "error", err)
		}
	}()
}

func quoteCacheKey(id uint64) string {
	return fmt.Sprintf("quote:%d", id)
}
