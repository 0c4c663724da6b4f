package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chaiwat/pcnova/internal/domain"
)

// DemoSessionToken is the sign-in token for the seeded demo customer.
const DemoSessionToken = "demo-session"

// SeedDemoData inserts a demo customer, a long-lived sign-in session, and a
// few orders so the assistant's order flow can be exercised in development.
// It is a no-op when the demo customer already exists.
func SeedDemoData(ctx context.Context, repo Repository) error {
	existing, err := repo.GetCustomerBySession(ctx, DemoSessionToken)
	if err != nil {
		return fmt.Errorf("check demo customer: %w", err)
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	customer := &domain.Customer{
		CustomerID:  uuid.NewString(),
		Email:       "demo@pcnova.dev",
		DisplayName: "ลูกค้าทดสอบ",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.CreateCustomer(ctx, customer); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}
	if err := repo.CreateSession(ctx, DemoSessionToken, customer.CustomerID, now.AddDate(1, 0, 0)); err != nil {
		return fmt.Errorf("seed session: %w", err)
	}

	orders := []domain.Order{
		{
			ID:            uuid.NewString(),
			OrderNumber:   "ORD-2024-0001",
			CreatedAt:     now.AddDate(0, 0, -30),
			Total:         25890,
			OrderStatus:   domain.OrderStatusDelivered,
			PaymentStatus: domain.PaymentStatusPaid,
			Items: []domain.OrderItem{
				{Name: "AMD Ryzen 5 7600", Quantity: 1},
				{Name: "Gigabyte B650M Gaming X AX", Quantity: 1},
				{Name: "Kingston Fury Beast 32GB DDR5 5600", Quantity: 1},
			},
		},
		{
			ID:            uuid.NewString(),
			OrderNumber:   "ORD-2024-0002",
			CreatedAt:     now.AddDate(0, 0, -7),
			Total:         12590,
			OrderStatus:   domain.OrderStatusShipped,
			PaymentStatus: domain.PaymentStatusPaid,
			Items: []domain.OrderItem{
				{Name: "GeForce RTX 4060 Ti 8GB", Quantity: 1},
			},
		},
		{
			ID:            uuid.NewString(),
			OrderNumber:   "ORD-2024-0003",
			CreatedAt:     now.AddDate(0, 0, -1),
			Total:         1790,
			OrderStatus:   domain.OrderStatusPending,
			PaymentStatus: domain.PaymentStatusUnpaid,
			Items: []domain.OrderItem{
				{Name: "Corsair CV650 650W", Quantity: 1},
				{Name: "สายไฟ PCIe 8-pin", Quantity: 2},
			},
		},
	}
	for i := range orders {
		if err := repo.CreateOrder(ctx, customer.CustomerID, &orders[i]); err != nil {
			return fmt.Errorf("seed order %s: %w", orders[i].OrderNumber, err)
		}
	}
	return nil
}
