package domain

import (
	"time"
)

// Customer represents a signed-in storefront customer.
type Customer struct {
	CustomerID  string    `json:"customer_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
