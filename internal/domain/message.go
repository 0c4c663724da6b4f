// Package domain contains core domain types for the PCNova support service.
package domain

// Sender identifies who authored a chat message.
type Sender string

const (
	// SenderAssistant marks messages written by the support assistant.
	SenderAssistant Sender = "assistant"
	// SenderUser marks messages written by the customer.
	SenderUser Sender = "user"
)

// QuickOption is a pre-defined clickable reply shortcut attached to an
// assistant message. Selecting one is equivalent to the user saying its ID.
type QuickOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Message is a single entry in a conversation's message log. Messages are
// immutable once appended; the log is append-only and its order is the
// conversation's only ordering guarantee.
type Message struct {
	Text    string        `json:"text"`
	Sender  Sender        `json:"sender"`
	Options []QuickOption `json:"options,omitempty"`
}
