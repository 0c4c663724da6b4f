package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestServiceSelectsGeneralTemplate(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "ตอบกลับ"}
	svc := NewService(completer, nil)

	reply, err := svc.Chat(context.Background(), &ChatRequest{Message: "สวัสดี"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "ตอบกลับ" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(completer.prompts) != 1 {
		t.Fatalf("expected one completion, got %d", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[0], generalPersona) {
		t.Error("expected general persona in prompt")
	}
}

func TestServiceSelectsUpgradeTemplate(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "วิเคราะห์"}
	svc := NewService(completer, nil)

	if _, err := svc.Chat(context.Background(), upgradeRequest()); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !strings.Contains(completer.prompts[0], upgradePersona) {
		t.Error("expected upgrade persona in prompt")
	}
}

func TestServiceWrapsCompleterError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("quota exceeded")
	svc := NewService(&fakeCompleter{err: sentinel}, nil)

	_, err := svc.Chat(context.Background(), &ChatRequest{Message: "x"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped completer error, got %v", err)
	}
}

func TestDisabledCompleterFailsWithNoCredentials(t *testing.T) {
	t.Parallel()

	svc := NewService(NewDisabledCompleter(), nil)
	_, err := svc.Chat(context.Background(), &ChatRequest{Message: "x"})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
