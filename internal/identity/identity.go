// Package identity resolves the storefront sign-in session to a customer.
package identity

import (
	"context"
	"net"
	"net/http"

	"github.com/chaiwat/pcnova/internal/store"
)

// SessionCookieName carries the storefront sign-in session token.
const SessionCookieName = "pcnova_session"

// SessionHeaderName is the header fallback used by the widget when cookies
// are unavailable (e.g. embedded cross-origin).
const SessionHeaderName = "X-PCNova-Session"

type contextKey int

const (
	customerIDKey contextKey = iota
	customerNameKey
)

// WithCustomer returns a context carrying the signed-in customer.
func WithCustomer(ctx context.Context, customerID, displayName string) context.Context {
	ctx = context.WithValue(ctx, customerIDKey, customerID)
	return context.WithValue(ctx, customerNameKey, displayName)
}

// CustomerIDFromContext extracts the signed-in customer ID from the request
// context. Returns "" for anonymous visitors.
func CustomerIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(customerIDKey).(string); ok {
		return v
	}
	return ""
}

// CustomerNameFromContext extracts the customer display name, "" if anonymous.
func CustomerNameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(customerNameKey).(string); ok {
		return v
	}
	return ""
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if token := r.Header.Get(SessionHeaderName); token != "" {
		return token
	}
	return r.URL.Query().Get("session_token")
}

// Middleware resolves the sign-in cookie (or header) to a customer and puts
// the customer ID on the request context. A missing, unknown, or expired
// token leaves the request anonymous — it is never rejected here; endpoints
// that require authentication enforce it themselves.
func Middleware(repo store.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			customer, err := repo.GetCustomerBySession(r.Context(), token)
			if err != nil || customer == nil {
				// Lookup failures degrade to anonymous rather than blocking
				// the whole request path.
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCustomer(r.Context(), customer.CustomerID, customer.DisplayName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IPFromRequest returns a normalized remote IP for optional request tracing.
func IPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
