package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chaiwat/pcnova/internal/gateway"
	"github.com/chaiwat/pcnova/internal/identity"
)

// maxChatBodySize is the maximum allowed chat request body (1MB).
const maxChatBodySize = 1 << 20

// ChatHandler exposes the chat-completion endpoint consumed by the support
// widget's prompt gateway.
type ChatHandler struct {
	gw      *gateway.Service
	limiter *RateLimiter
}

// NewChatHandler creates a chat handler.
func NewChatHandler(gw *gateway.Service, limiter *RateLimiter) *ChatHandler {
	return &ChatHandler{gw: gw, limiter: limiter}
}

// RegisterRoutes registers the chat-completion route.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	key := identity.CustomerIDFromContext(r.Context())
	if key == "" {
		key = identity.IPFromRequest(r)
	}
	if h.limiter != nil && !h.limiter.Allow(key) {
		Error(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodySize)
	var req gateway.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if !errors.Is(err, io.EOF) {
			Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if req.Message == "" && !req.IsUpgradeAnalysis() {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	response, err := h.gw.Chat(r.Context(), &req)
	if err != nil {
		// Detail goes to the log, never to the customer.
		slog.Error("chat completion failed", "mode", req.Mode, "error", err)
		Error(w, http.StatusBadGateway, "assistant temporarily unavailable")
		return
	}

	JSON(w, http.StatusOK, gateway.ChatResponse{Response: response})
}
