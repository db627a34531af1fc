package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"sales-service/internal/domain"
	"sales-service/internal/platform/logger"
)

const (
	TestQuoteID    = uint64(1)
	TestOrderID    = uint64(1)
	TestCustomerID = uint64(7)
)

func testLogger() *logger.Logger { return logger.Nop() }

func CreateMockQuoteDraft(items int) *domain.QuoteDraft {
	d := &domain.QuoteDraft{
		Quote: domain.Quote{
			CustomerID: TestCustomerID,
			IsActive:   true,
			Contact: domain.Contact{
				FirstName: "Jane",
				LastName:  "Doe",
				Address:   "1 Main St",
				ZipCode:   "10001",
				Email:     "jane@example.com",
			},
			Subtotal:   decimal.NewFromInt(int64(500 * items)),
			Grandtotal: decimal.NewFromInt(int64(500 * items)),
		},
	}
	for i := 0; i < items; i++ {
		d.Items = append(d.Items, domain.QuoteItem{Line: domain.Line{
			Name:      "Desk",
			Price:     decimal.NewFromInt(500),
			Quantity:  1,
			ProductID: 1,
			RowTotal:  decimal.NewFromInt(500),
		}})
	}
	return d
}

func CreateMockQuoteAggregate(id uint64) *domain.QuoteAggregate {
	d := CreateMockQuoteDraft(2)
	agg := &domain.QuoteAggregate{Quote: d.Quote, Items: d.Items}
	agg.ID = id
	for i := range agg.Items {
		agg.Items[i].ID = uint64(i + 1)
		agg.Items[i].QuoteID = id
	}
	return agg
}

func CreateMockOrderDraft() *domain.OrderDraft {
	q := CreateMockQuoteDraft(1)
	return &domain.OrderDraft{
		Order: domain.Order{
			CustomerID: TestCustomerID,
			Status:     domain.StatusPending,
			Contact:    q.Quote.Contact,
			Subtotal:   q.Quote.Subtotal,
			Grandtotal: q.Quote.Grandtotal,
		},
		Items: []domain.OrderItem{{Line: q.Items[0].Line}},
	}
}

func fkError(table, column, ref string) error {
	return &mysql.MySQLError{
		Number: 1452,
		Message: "Cannot add or update a child row: a foreign key constraint fails (`sales`.`" + table +
			"`, CONSTRAINT `" + table + "_" + column + "_foreign` FOREIGN KEY (`" + column +
			"`) REFERENCES `" + ref + "` (`id`))",
	}
}

func duplicateError(value, key string) error {
	return &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '" + value + "' for key '" + key + "'",
	}
}

// memoryCache is an in-process cache.Cache storing JSON like the redis one.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
