package assist

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/chaiwat/pcnova/internal/domain"
	"github.com/chaiwat/pcnova/internal/gateway"
)

// ErrBusy is returned when a collaborator call is already in flight for this
// session. Callers drop the submission rather than queueing it.
var ErrBusy = errors.New("assist: request already in flight")

// Gateway is the boundary to the prompt gateway / language model.
type Gateway interface {
	Chat(ctx context.Context, req *gateway.ChatRequest) (string, error)
}

// OrderReader is the boundary to the order service.
type OrderReader interface {
	// ListOrders returns the customer's orders most-recent-first.
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)
}

// Controller owns one conversation session and routes each incoming user
// event to the matching sub-flow. It is not safe for concurrent use: all
// calls must come from a single goroutine, mirroring the widget's single
// event loop.
type Controller struct {
	gw         Gateway
	orders     OrderReader
	customerID string // empty when the customer is not signed in
	logger     *slog.Logger

	session Session
	busy    bool
}

// NewController creates a controller with a fresh session. customerID may be
// empty for anonymous visitors; order inquiry then short-circuits to the
// sign-in message without touching the order service.
func NewController(gw Gateway, orders OrderReader, customerID string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		gw:         gw,
		orders:     orders,
		customerID: customerID,
		logger:     logger,
		session:    NewSession(),
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Session {
	s := c.session
	s.Log = append([]domain.Message(nil), c.session.Log...)
	return s
}

// State returns the current conversation state.
func (c *Controller) State() State {
	return c.session.State
}

// Busy reports whether a collaborator call is in flight.
func (c *Controller) Busy() bool {
	return c.busy
}

// SelectOption dispatches a quick-option click. Options are only meaningful
// from the main menu; clicks arriving in any other state are ignored.
func (c *Controller) SelectOption(ctx context.Context, optionID string) ([]domain.Message, error) {
	if c.busy {
		return nil, ErrBusy
	}
	if c.session.State != StateNormal {
		return nil, nil
	}

	var label string
	for _, opt := range mainMenuOptions() {
		if opt.ID == optionID {
			label = opt.Label
		}
	}
	if label == "" {
		c.logger.Warn("unknown quick option ignored", "option_id", optionID)
		return nil, nil
	}

	mark := len(c.session.Log)
	c.session.appendUser(label)

	switch optionID {
	case OptionUpgrade:
		c.session.State = StateCollectingSpecs
		c.session.Cursor = 1
		c.session.Draft.Reset()
		c.session.appendAssistant(componentPrompt(1), nil)
	case OptionOrderStatus:
		c.enterOrderInquiry(ctx)
	}
	return c.appended(mark), nil
}

// Submit dispatches one line of user text according to the current state.
// It returns the messages appended during this turn (the user's own message
// included). Empty input is ignored.
func (c *Controller) Submit(ctx context.Context, text string) ([]domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if c.busy {
		return nil, ErrBusy
	}

	mark := len(c.session.Log)
	c.session.appendUser(text)

	// "0" is the universal cancel token everywhere except the main menu; it
	// is never forwarded to the model. During spec collection the step
	// engine owns cancellation, with identical semantics.
	if text == cancelToken && c.session.State != StateNormal && c.session.State != StateCollectingSpecs {
		c.session.returnToMenu()
		c.session.appendAssistant(msgCancelled, mainMenuOptions())
		return c.appended(mark), nil
	}

	switch c.session.State {
	case StateNormal:
		c.handleGeneralChat(ctx, text)
	case StateCollectingSpecs:
		c.handleCollectionStep(text)
	case StateAwaitingComponentSelection:
		c.handleComponentSelection(ctx, text)
	case StateAwaitingNewComponentValue:
		c.handleNewComponentValue(ctx, text)
	case StateOrderInquiry:
		c.handleOrderInquiry(ctx, text)
	}
	return c.appended(mark), nil
}

func (c *Controller) appended(mark int) []domain.Message {
	return append([]domain.Message(nil), c.session.Log[mark:]...)
}

// handleGeneralChat forwards free text to the model in general mode. The
// history window excludes the user message appended this turn; it travels in
// the request's Message field instead.
func (c *Controller) handleGeneralChat(ctx context.Context, text string) {
	history := c.historyBefore(len(c.session.Log) - 1)
	reply := c.callGateway(ctx, &gateway.ChatRequest{
		Message: text,
		History: history,
	})
	c.session.appendAssistant(reply, nil)
}

func (c *Controller) historyBefore(end int) []gateway.HistoryEntry {
	start := 0
	if end > historyWindow {
		start = end - historyWindow
	}
	entries := make([]gateway.HistoryEntry, 0, end-start)
	for _, m := range c.session.Log[start:end] {
		entries = append(entries, gateway.HistoryEntry{
			Text:  m.Text,
			IsBot: m.Sender == domain.SenderAssistant,
		})
	}
	return entries
}

// historyWindow caps how many prior turns are sent with a general request.
const historyWindow = 10

func (c *Controller) handleCollectionStep(text string) {
	res := submitStep(c.session.Cursor, text, c.session.Draft)
	switch res.outcome {
	case stepCancelled:
		c.session.returnToMenu()
		c.session.appendAssistant(msgCancelled, mainMenuOptions())
	case stepAdvanced:
		c.session.Cursor = res.cursor
		c.session.Draft = res.draft
		c.session.appendAssistant(res.reply, nil)
	case stepComplete:
		c.session.Draft = res.draft
		c.session.State = StateAwaitingComponentSelection
		c.session.appendAssistant(res.reply, nil)
	}
}

func (c *Controller) handleComponentSelection(ctx context.Context, text string) {
	sel, ok := parseSelection(text)
	if !ok {
		c.session.appendAssistant(msgSelectionHelp, nil)
		return
	}
	if sel.newValue == "" {
		c.session.PendingComponent = sel.index
		c.session.State = StateAwaitingNewComponentValue
		c.session.appendAssistant(newValuePrompt(sel.index), nil)
		return
	}
	c.runUpgradeAnalysis(ctx, sel.index, sel.newValue)
}

func (c *Controller) handleNewComponentValue(ctx context.Context, text string) {
	index := c.session.PendingComponent
	c.runUpgradeAnalysis(ctx, index, text)
}

// runUpgradeAnalysis invokes the gateway in upgrade-analysis mode with the
// draft as it stood before this turn, then returns to the main menu whether
// the model answered or failed.
func (c *Controller) runUpgradeAnalysis(ctx context.Context, index int, newValue string) {
	original := c.session.Draft
	reply := c.callGateway(ctx, &gateway.ChatRequest{
		Mode:              gateway.ModePCUpgrade,
		PCSpecs:           &original,
		UpgradedComponent: domain.Key(index),
		NewComponentValue: newValue,
	})
	c.session.returnToMenu()
	c.session.appendAssistant(reply, mainMenuOptions())
}

// enterOrderInquiry transitions to StateOrderInquiry and renders the order
// list, the no-orders message, or the sign-in prompt. An absent credential is
// a normal branch, not an error, and never reaches the order service.
func (c *Controller) enterOrderInquiry(ctx context.Context) {
	c.session.State = StateOrderInquiry
	if c.customerID == "" {
		c.session.appendAssistant(msgSignInRequired, nil)
		return
	}

	orders, err := c.fetchOrders(ctx)
	switch {
	case err != nil:
		c.session.appendAssistant(msgOrderLookupFailure, nil)
	case len(orders) == 0:
		c.session.appendAssistant(msgNoOrders, nil)
	default:
		c.session.appendAssistant(orderListPrompt(orders), nil)
	}
}

func (c *Controller) handleOrderInquiry(ctx context.Context, text string) {
	if c.customerID == "" {
		c.session.appendAssistant(msgSignInRequired, nil)
		return
	}

	orders, err := c.fetchOrders(ctx)
	switch {
	case err != nil:
		c.session.appendAssistant(msgOrderLookupFailure, nil)
	case len(orders) == 0:
		c.session.appendAssistant(msgNoOrders, nil)
	default:
		if order, ok := resolveOrder(text, orders); ok {
			c.session.appendAssistant(orderSummary(order), nil)
		} else {
			c.session.appendAssistant(orderNotFound(text), nil)
		}
	}
}

// callGateway performs the single outstanding model call for this session.
// Failures are logged and collapsed into the generic failure reply; the state
// machine transitions as if a reply had been received.
func (c *Controller) callGateway(ctx context.Context, req *gateway.ChatRequest) string {
	c.busy = true
	defer func() { c.busy = false }()

	reply, err := c.gw.Chat(ctx, req)
	if err != nil {
		c.logger.Error("gateway call failed", "mode", req.Mode, "error", err)
		return msgGatewayFailure
	}
	return reply
}

func (c *Controller) fetchOrders(ctx context.Context) ([]domain.Order, error) {
	c.busy = true
	defer func() { c.busy = false }()

	orders, err := c.orders.ListOrders(ctx, c.customerID)
	if err != nil {
		c.logger.Error("order lookup failed", "customer_id", c.customerID, "error", err)
		return nil, err
	}
	return orders, nil
}
