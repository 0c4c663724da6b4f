package assist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/chaiwat/pcnova/internal/domain"
	"github.com/chaiwat/pcnova/internal/identity"
)

// wsInbound is a client-to-server frame.
type wsInbound struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	ID   string `json:"id,omitempty"`
}

// wsOutbound is a server-to-client frame.
type wsOutbound struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Active  bool            `json:"active,omitempty"`
}

// WSHandler upgrades widget connections and hosts one conversation session
// per connection. The session lives and dies with the connection — there is
// no persistence across reloads.
type WSHandler struct {
	gw            Gateway
	orders        OrderReader
	convLog       *ConversationLogger
	allowedOrigin string
	isDev         bool
}

// NewWSHandler creates the assist WebSocket handler. convLog may be nil.
func NewWSHandler(gw Gateway, orders OrderReader, convLog *ConversationLogger, allowedOrigin string, isDev bool) *WSHandler {
	return &WSHandler{
		gw:            gw,
		orders:        orders,
		convLog:       convLog,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	customerID := identity.CustomerIDFromContext(r.Context())
	sessionID := uuid.NewString()
	slog.Info("assist session starting", "session_id", sessionID,
		"authenticated", customerID != "", "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("failed to accept assist WebSocket", "error", err, "session_id", sessionID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("failed to close assist websocket", "error", closeErr, "session_id", sessionID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ctrl := NewController(h.gw, h.orders, customerID, slog.Default())

	// Send the greeting and main menu before reading anything.
	for _, msg := range ctrl.Snapshot().Log {
		h.sendMessage(ctx, ws, sessionID, customerID, ctrl, msg)
	}

	h.readLoop(ctx, ws, ctrl, sessionID, customerID)
	slog.Info("assist session ended", "session_id", sessionID)
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" || origin == h.allowedOrigin {
		return true
	}
	slog.Warn("assist WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

// readLoop processes frames one at a time on this goroutine. Collaborator
// calls block the loop, which is the single-outstanding-request guarantee:
// nothing else can be submitted until the reply lands.
func (h *WSHandler) readLoop(ctx context.Context, ws *websocket.Conn, ctrl *Controller, sessionID, customerID string) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("assist WebSocket closed by client", "session_id", sessionID)
			} else {
				slog.Warn("assist WebSocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var frame wsInbound
		if err := json.Unmarshal(data, &frame); err != nil {
			slog.Debug("discarding malformed assist frame", "session_id", sessionID, "error", err)
			continue
		}

		switch frame.Type {
		case "message":
			h.logTurn(sessionID, customerID, "inbound", ctrl, frame.Text)
			h.dispatch(ctx, ws, ctrl, sessionID, customerID, func() ([]domain.Message, error) {
				return ctrl.Submit(ctx, frame.Text)
			})
		case "option":
			h.logTurn(sessionID, customerID, "inbound", ctrl, frame.ID)
			h.dispatch(ctx, ws, ctrl, sessionID, customerID, func() ([]domain.Message, error) {
				return ctrl.SelectOption(ctx, frame.ID)
			})
		case "ping":
			h.send(ctx, ws, wsOutbound{Type: "pong"})
		}
	}
}

// dispatch runs one controller event, framing it with the typing indicator.
func (h *WSHandler) dispatch(ctx context.Context, ws *websocket.Conn, ctrl *Controller, sessionID, customerID string, event func() ([]domain.Message, error)) {
	h.send(ctx, ws, wsOutbound{Type: "typing", Active: true})

	appended, err := event()
	if err != nil {
		// Only ErrBusy reaches here; the submission is dropped.
		slog.Debug("assist submission dropped", "session_id", sessionID, "error", err)
	}

	h.send(ctx, ws, wsOutbound{Type: "typing", Active: false})
	for _, msg := range appended {
		h.sendMessage(ctx, ws, sessionID, customerID, ctrl, msg)
	}
}

func (h *WSHandler) sendMessage(ctx context.Context, ws *websocket.Conn, sessionID, customerID string, ctrl *Controller, msg domain.Message) {
	if msg.Sender == domain.SenderAssistant {
		h.logTurn(sessionID, customerID, "outbound", ctrl, msg.Text)
	}
	m := msg
	h.send(ctx, ws, wsOutbound{Type: "message", Message: &m})
}

func (h *WSHandler) send(ctx context.Context, ws *websocket.Conn, frame wsOutbound) {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Warn("failed to marshal assist frame", "error", err)
		return
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("assist WebSocket write error", "error", err)
	}
}

func (h *WSHandler) logTurn(sessionID, customerID, direction string, ctrl *Controller, text string) {
	if h.convLog == nil || text == "" {
		return
	}
	userID := customerID
	if userID == "" {
		userID = "anonymous"
	}
	h.convLog.Log(ConversationLogEvent{
		UserID:    userID,
		SessionID: sessionID,
		Direction: direction,
		State:     string(ctrl.State()),
		Text:      text,
	})
}
