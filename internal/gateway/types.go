// Package gateway builds prompts from conversation data and forwards them to
// the external language-model service. It performs no local reasoning,
// caching, or retries.
package gateway

import (
	"github.com/chaiwat/pcnova/internal/domain"
)

// ModePCUpgrade selects the upgrade-analysis prompt template.
const ModePCUpgrade = "pc-upgrade"

// HistoryEntry is one prior conversation turn as sent by the widget.
type HistoryEntry struct {
	Text  string `json:"text"`
	IsBot bool   `json:"isBot"`
}

// ChatRequest is the chat-completion request consumed by the gateway.
type ChatRequest struct {
	Message           string         `json:"message"`
	History           []HistoryEntry `json:"history,omitempty"`
	Mode              string         `json:"mode,omitempty"`
	PCSpecs           *domain.PCSpec `json:"pcSpecs,omitempty"`
	UpgradedComponent string         `json:"upgradedComponent,omitempty"`
	NewComponentValue string         `json:"newComponentValue,omitempty"`
}

// ChatResponse is the successful chat-completion response body.
type ChatResponse struct {
	Response string `json:"response"`
}

// IsUpgradeAnalysis reports whether the request selects the upgrade-analysis
// template. All of mode, pcSpecs, upgradedComponent and newComponentValue
// must be present and non-empty; anything less falls back to general mode.
func (r *ChatRequest) IsUpgradeAnalysis() bool {
	return r.Mode == ModePCUpgrade &&
		r.PCSpecs != nil &&
		r.UpgradedComponent != "" &&
		r.NewComponentValue != ""
}
