package mysql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sales-service/internal/domain"
	"sales-service/internal/platform/logger"
)

// sqliteSchema mirrors the MySQL migrations closely enough for the
// repository contracts: foreign keys, cascades and the unique payment parent.
var sqliteSchema = []string{
	`CREATE TABLE customer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth DATE,
		gender TEXT,
		address TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE product (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE quote (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customer(id),
		is_active BOOLEAN NOT NULL DEFAULT 0,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth DATE,
		gender TEXT,
		address TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		subtotal DECIMAL(9,2) NOT NULL,
		grandtotal DECIMAL(9,2) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE quote_item (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quote_id INTEGER NOT NULL REFERENCES quote(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price DECIMAL(9,2) NOT NULL,
		quantity INTEGER NOT NULL,
		product_id INTEGER NOT NULL REFERENCES product(id),
		row_total DECIMAL(9,2) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE quote_payment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		quote_id INTEGER NOT NULL UNIQUE REFERENCES quote(id) ON DELETE CASCADE,
		method TEXT NOT NULL,
		name TEXT NOT NULL,
		grandtotal DECIMAL(9,2) NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	"CREATE TABLE `order` (" + `
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customer(id),
		quote_id INTEGER REFERENCES quote(id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth DATE,
		gender TEXT,
		address TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		email TEXT NOT NULL,
		subtotal DECIMAL(9,2) NOT NULL,
		grandtotal DECIMAL(9,2) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE order_item (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL REFERENCES ` + "`order`" + `(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price DECIMAL(9,2) NOT NULL,
		quantity INTEGER NOT NULL,
		product_id INTEGER NOT NULL REFERENCES product(id),
		row_total DECIMAL(9,2) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE order_payment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL UNIQUE REFERENCES ` + "`order`" + `(id) ON DELETE CASCADE,
		method TEXT NOT NULL,
		name TEXT NOT NULL,
		grandtotal DECIMAL(9,2) NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

// newTestDB opens a private in-memory database with the schema applied, one
// customer (id 1) and two products (ids 1 and 2).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Exec("INSERT INTO customer (id, first_name, last_name, email) VALUES (1, 'Jane', 'Doe', 'jane@example.com')").Error)
	require.NoError(t, db.Exec("INSERT INTO product (id, name) VALUES (1, 'Desk'), (2, 'Chair')").Error)
	return db
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func testContact(email string) domain.Contact {
	return domain.Contact{
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   "1 Main St",
		ZipCode:   "10001",
		Email:     email,
	}
}

func line(name, price string, qty int, productID uint64) domain.Line {
	p := dec(price)
	return domain.Line{
		Name:      name,
		Price:     p,
		Quantity:  qty,
		ProductID: productID,
		RowTotal:  p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func quoteDraft(email string, lines ...domain.Line) *domain.QuoteDraft {
	d := &domain.QuoteDraft{
		Quote: domain.Quote{
			CustomerID: 1,
			IsActive:   true,
			Contact:    testContact(email),
			Subtotal:   dec("0"),
			Grandtotal: dec("0"),
		},
	}
	total := decimal.Zero
	for _, l := range lines {
		d.Items = append(d.Items, domain.QuoteItem{Line: l})
		total = total.Add(l.RowTotal)
	}
	d.Quote.Subtotal = total
	d.Quote.Grandtotal = total
	return d
}
