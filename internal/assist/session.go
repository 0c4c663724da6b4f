package assist

import (
	"github.com/chaiwat/pcnova/internal/domain"
)

// State is the conversation state of a support session.
type State string

const (
	// StateNormal is the main menu: free text goes to the model in general
	// mode, quick options start the structured flows.
	StateNormal State = "normal"
	// StateCollectingSpecs is the ordered six-field spec intake.
	StateCollectingSpecs State = "collecting_specs"
	// StateAwaitingComponentSelection waits for "(index)(optional value)".
	StateAwaitingComponentSelection State = "awaiting_component_selection"
	// StateAwaitingNewComponentValue waits for the replacement value of a
	// previously chosen component.
	StateAwaitingNewComponentValue State = "awaiting_new_component_value"
	// StateOrderInquiry resolves typed fragments against the customer's orders.
	StateOrderInquiry State = "order_inquiry"
)

// Session is the serializable scratch state of one open conversation. It is
// created fresh per widget mount and has no durable identity; the draft and
// cursor are discarded whenever the session returns to StateNormal.
type Session struct {
	State State `json:"state"`
	// Cursor points at the next spec field to fill, 1..6, or 0 when the
	// collection flow is inactive.
	Cursor int           `json:"cursor"`
	Draft  domain.PCSpec `json:"draft"`
	// PendingComponent remembers the selected field index (1..6) while the
	// session waits for its replacement value.
	PendingComponent int              `json:"pendingComponent"`
	Log              []domain.Message `json:"log"`
}

// NewSession returns a fresh session in StateNormal with the greeting and
// main menu already appended to the log.
func NewSession() Session {
	s := Session{State: StateNormal}
	s.appendAssistant(msgGreeting, mainMenuOptions())
	return s
}

func (s *Session) appendAssistant(text string, options []domain.QuickOption) {
	s.Log = append(s.Log, domain.Message{
		Text:    text,
		Sender:  domain.SenderAssistant,
		Options: options,
	})
}

func (s *Session) appendUser(text string) {
	s.Log = append(s.Log, domain.Message{Text: text, Sender: domain.SenderUser})
}

// returnToMenu transitions back to StateNormal and discards all flow state.
func (s *Session) returnToMenu() {
	s.State = StateNormal
	s.Cursor = 0
	s.PendingComponent = 0
	s.Draft.Reset()
}
