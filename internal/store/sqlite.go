package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chaiwat/pcnova/internal/domain"
	"github.com/chaiwat/pcnova/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	writeMu sync.Mutex // serializes writes to avoid SQLITE_BUSY under load
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS customer_sessions (
		token TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(customer_id),
		expires_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires ON customer_sessions(expires_at);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(customer_id),
		order_number TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		total REAL NOT NULL,
		order_status TEXT NOT NULL,
		payment_status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at);

	CREATE TABLE IF NOT EXISTS order_items (
		order_id TEXT NOT NULL REFERENCES orders(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (order_id, position)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetCustomerBySession resolves a sign-in token to a customer. Unknown and
// expired tokens both return (nil, nil).
func (s *SQLiteStore) GetCustomerBySession(ctx context.Context, token string) (*domain.Customer, error) {
	query := `
		SELECT c.customer_id, c.email, c.display_name, c.created_at, c.updated_at
		FROM customer_sessions s
		JOIN customers c ON c.customer_id = s.customer_id
		WHERE s.token = ? AND s.expires_at > ?`

	row := s.db.QueryRowContext(ctx, query, token, time.Now().Unix())

	var customer domain.Customer
	var createdAt, updatedAt int64
	err := row.Scan(&customer.CustomerID, &customer.Email, &customer.DisplayName, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan customer row: %w", err)
	}

	customer.CreatedAt = time.Unix(createdAt, 0)
	customer.UpdatedAt = time.Unix(updatedAt, 0)
	return &customer, nil
}

// CreateCustomer inserts a customer record.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	return s.writeWithRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO customers (customer_id, email, display_name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			customer.CustomerID, customer.Email, customer.DisplayName,
			customer.CreatedAt.Unix(), customer.UpdatedAt.Unix())
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		return nil
	})
}

// CreateSession stores a sign-in session token for a customer.
func (s *SQLiteStore) CreateSession(ctx context.Context, token, customerID string, expiresAt time.Time) error {
	return s.writeWithRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO customer_sessions (token, customer_id, expires_at)
			VALUES (?, ?, ?)`,
			token, customerID, expiresAt.Unix())
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	})
}

// CreateOrder inserts an order with its line items in one transaction.
func (s *SQLiteStore) CreateOrder(ctx context.Context, customerID string, order *domain.Order) error {
	return s.writeWithRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, order_number, created_at, total, order_status, payment_status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, customerID, order.OrderNumber, order.CreatedAt.Unix(),
			order.Total, order.OrderStatus, order.PaymentStatus)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, item := range order.Items {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, position, name, quantity)
				VALUES (?, ?, ?, ?)`,
				order.ID, i, item.Name, item.Quantity)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit order: %w", err)
		}
		return nil
	})
}

// ListOrders returns the customer's orders most-recent-first.
func (s *SQLiteStore) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_number, created_at, total, order_status, payment_status
		FROM orders WHERE customer_id = ?
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var createdAt int64
		if err := rows.Scan(&order.ID, &order.OrderNumber, &createdAt,
			&order.Total, &order.OrderStatus, &order.PaymentStatus); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.CreatedAt = time.Unix(createdAt, 0)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		items, err := s.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *SQLiteStore) listOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity FROM order_items
		WHERE order_id = ? ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return items, nil
}

// writeWithRetry runs a write under the write mutex, retrying with
// exponential backoff on SQLITE_BUSY / database-is-locked errors.
func (s *SQLiteStore) writeWithRetry(ctx context.Context, fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	const maxRetries = 3
	baseDelay := 50 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil || !shared.IsSQLiteConflictError(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		time.Sleep(baseDelay * time.Duration(1<<i))
	}
	return err
}
