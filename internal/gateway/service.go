package gateway

import (
	"context"
	"fmt"
	"log/slog"
)

// Completer is the minimal surface of the language-model client.
type Completer interface {
	// Complete sends a fully rendered prompt and returns the model's text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service selects a prompt template for each request and forwards the
// rendered prompt to the model. It is a pure function of its inputs plus the
// model call; failures are returned to the caller undecorated with user text.
type Service struct {
	completer Completer
	logger    *slog.Logger
}

// NewService creates a gateway service backed by the given completer.
func NewService(completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{completer: completer, logger: logger}
}

// Chat builds the prompt for req and calls the model.
func (s *Service) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	var prompt string
	if req.IsUpgradeAnalysis() {
		prompt = buildUpgradePrompt(req)
		s.logger.Info("gateway request", "mode", ModePCUpgrade,
			"component", req.UpgradedComponent, "prompt_len", len(prompt))
	} else {
		prompt = buildGeneralPrompt(req)
		s.logger.Info("gateway request", "mode", "general",
			"history_len", len(req.History), "prompt_len", len(prompt))
	}

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("model completion: %w", err)
	}
	return text, nil
}
