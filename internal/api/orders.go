package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chaiwat/pcnova/internal/identity"
	"github.com/chaiwat/pcnova/internal/store"
)

// OrdersHandler exposes the order collaborator consumed by the support
// assistant and the account pages.
type OrdersHandler struct {
	repo store.Repository
}

// NewOrdersHandler creates an orders handler.
func NewOrdersHandler(repo store.Repository) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

// RegisterRoutes registers the order routes.
func (h *OrdersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/orders", h.ListOrders)
}

// ListOrders handles GET /api/orders. Requires a signed-in customer; an
// absent credential yields 401, not a server error.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := identity.CustomerIDFromContext(r.Context())
	if customerID == "" {
		Error(w, http.StatusUnauthorized, "sign_in_required")
		return
	}

	orders, err := h.repo.ListOrders(r.Context(), customerID)
	if err != nil {
		slog.Error("failed to list orders", "customer_id", customerID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
