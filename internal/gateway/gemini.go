package gateway

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when GEMINI_MODEL is not configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// ErrNoCredentials is returned when the service runs without a model API key.
var ErrNoCredentials = errors.New("language model credentials not configured")

// GeminiCompleter calls the Gemini API through the Google GenAI SDK.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a Gemini-backed completer.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete sends the prompt as a single user turn and returns the model text.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil || result.Text() == "" {
		return "", errors.New("empty response from model")
	}
	return result.Text(), nil
}

// disabledCompleter stands in when no API key is configured so the rest of
// the wiring stays intact; every call fails with ErrNoCredentials and the
// session controller turns that into its generic failure reply.
type disabledCompleter struct{}

func (disabledCompleter) Complete(context.Context, string) (string, error) {
	return "", ErrNoCredentials
}

// NewDisabledCompleter returns a completer that always fails with
// ErrNoCredentials.
func NewDisabledCompleter() Completer {
	return disabledCompleter{}
}
