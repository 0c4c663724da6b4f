package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chaiwat/pcnova/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func createTestCustomer(t *testing.T, s *SQLiteStore, id string) {
	t.Helper()
	now := time.Now()
	err := s.CreateCustomer(context.Background(), &domain.Customer{
		CustomerID:  id,
		Email:       id + "@example.com",
		DisplayName: "Test " + id,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
}

func TestGetCustomerBySession(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	createTestCustomer(t, s, "cust-1")

	if err := s.CreateSession(ctx, "tok-1", "cust-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	customer, err := s.GetCustomerBySession(ctx, "tok-1")
	if err != nil {
		t.Fatalf("GetCustomerBySession failed: %v", err)
	}
	if customer == nil || customer.CustomerID != "cust-1" {
		t.Fatalf("unexpected customer: %+v", customer)
	}
}

func TestGetCustomerBySessionUnknownToken(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	customer, err := s.GetCustomerBySession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetCustomerBySession failed: %v", err)
	}
	if customer != nil {
		t.Fatalf("expected nil customer for unknown token, got %+v", customer)
	}
}

func TestGetCustomerBySessionExpiredToken(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	createTestCustomer(t, s, "cust-1")

	if err := s.CreateSession(ctx, "tok-old", "cust-1", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	customer, err := s.GetCustomerBySession(ctx, "tok-old")
	if err != nil {
		t.Fatalf("GetCustomerBySession failed: %v", err)
	}
	if customer != nil {
		t.Fatalf("expected nil customer for expired token, got %+v", customer)
	}
}

func TestListOrdersMostRecentFirstWithItems(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	createTestCustomer(t, s, "cust-1")

	now := time.Now().Truncate(time.Second)
	older := domain.Order{
		ID: "o1", OrderNumber: "ORD-0001", CreatedAt: now.Add(-48 * time.Hour),
		Total: 890, OrderStatus: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
		Items: []domain.OrderItem{{Name: "สายไฟ", Quantity: 2}},
	}
	newer := domain.Order{
		ID: "o2", OrderNumber: "ORD-0002", CreatedAt: now,
		Total: 12590, OrderStatus: domain.OrderStatusShipped, PaymentStatus: domain.PaymentStatusPaid,
		Items: []domain.OrderItem{{Name: "RTX 4060 Ti", Quantity: 1}, {Name: "เมาส์", Quantity: 1}},
	}
	for _, o := range []domain.Order{older, newer} {
		order := o
		if err := s.CreateOrder(ctx, "cust-1", &order); err != nil {
			t.Fatalf("CreateOrder(%s) failed: %v", o.OrderNumber, err)
		}
	}

	orders, err := s.ListOrders(ctx, "cust-1")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderNumber != "ORD-0002" {
		t.Fatalf("expected most recent order first, got %q", orders[0].OrderNumber)
	}
	if len(orders[0].Items) != 2 || orders[0].Items[0].Name != "RTX 4060 Ti" {
		t.Fatalf("unexpected items: %+v", orders[0].Items)
	}
}

func TestListOrdersForOtherCustomerIsEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	createTestCustomer(t, s, "cust-1")

	order := domain.Order{
		ID: "o1", OrderNumber: "ORD-0001", CreatedAt: time.Now(),
		Total: 100, OrderStatus: domain.OrderStatusPending, PaymentStatus: domain.PaymentStatusUnpaid,
	}
	if err := s.CreateOrder(ctx, "cust-1", &order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	orders, err := s.ListOrders(ctx, "cust-2")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders for other customer, got %d", len(orders))
	}
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	if err := SeedDemoData(ctx, s); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}
	if err := SeedDemoData(ctx, s); err != nil {
		t.Fatalf("second SeedDemoData failed: %v", err)
	}

	customer, err := s.GetCustomerBySession(ctx, DemoSessionToken)
	if err != nil {
		t.Fatalf("GetCustomerBySession failed: %v", err)
	}
	if customer == nil {
		t.Fatal("expected demo customer to exist")
	}

	orders, err := s.ListOrders(ctx, customer.CustomerID)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 seeded orders, got %d", len(orders))
	}
}
