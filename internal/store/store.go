// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/chaiwat/pcnova/internal/domain"
)

// Repository defines the interface for customer and order data consumed by
// the support assistant.
type Repository interface {
	// GetCustomerBySession resolves a sign-in session token to a customer.
	// Returns (nil, nil) when the token is unknown or expired — an absent
	// credential is "not authenticated", not an error.
	GetCustomerBySession(ctx context.Context, token string) (*domain.Customer, error)

	// CreateCustomer inserts a customer record.
	CreateCustomer(ctx context.Context, customer *domain.Customer) error

	// CreateSession stores a sign-in session token for a customer.
	CreateSession(ctx context.Context, token, customerID string, expiresAt time.Time) error

	// CreateOrder inserts an order with its line items.
	CreateOrder(ctx context.Context, customerID string, order *domain.Order) error

	// ListOrders returns the customer's orders most-recent-first, line items
	// included.
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
