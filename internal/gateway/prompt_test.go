package gateway

import (
	"fmt"
	"strings"
	"testing"

	"github.com/chaiwat/pcnova/internal/domain"
)

func upgradeRequest() *ChatRequest {
	return &ChatRequest{
		Mode: ModePCUpgrade,
		PCSpecs: &domain.PCSpec{
			CPU:         "Intel Core i5-12400F",
			Motherboard: "MSI B660M Pro",
			CPUCooler:   "Deepcool AK400",
			RAM:         "Kingston Fury 16GB DDR4 3200",
			GPU:         "RTX 3060",
			PSU:         "Corsair CV650 650W",
		},
		UpgradedComponent: "gpu",
		NewComponentValue: "RTX 4060 Ti",
	}
}

func TestIsUpgradeAnalysisModeRule(t *testing.T) {
	t.Parallel()

	base := upgradeRequest()
	if !base.IsUpgradeAnalysis() {
		t.Fatal("expected complete upgrade request to select upgrade mode")
	}

	tests := []struct {
		name   string
		mutate func(*ChatRequest)
	}{
		{name: "wrong mode", mutate: func(r *ChatRequest) { r.Mode = "general" }},
		{name: "missing specs", mutate: func(r *ChatRequest) { r.PCSpecs = nil }},
		{name: "missing component", mutate: func(r *ChatRequest) { r.UpgradedComponent = "" }},
		{name: "missing value", mutate: func(r *ChatRequest) { r.NewComponentValue = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := upgradeRequest()
			tt.mutate(req)
			if req.IsUpgradeAnalysis() {
				t.Fatal("expected general mode")
			}
		})
	}
}

func TestBuildGeneralPromptIncludesRoleLabelsAndMessage(t *testing.T) {
	t.Parallel()

	req := &ChatRequest{
		Message: "มีการ์ดจอรุ่นไหนแนะนำบ้าง",
		History: []HistoryEntry{
			{Text: "สวัสดีครับ", IsBot: true},
			{Text: "สวัสดี", IsBot: false},
		},
	}
	prompt := buildGeneralPrompt(req)

	if !strings.Contains(prompt, roleLabelAssistant+" สวัสดีครับ") {
		t.Errorf("prompt missing assistant history line:\n%s", prompt)
	}
	if !strings.Contains(prompt, roleLabelUser+" สวัสดี\n") {
		t.Errorf("prompt missing user history line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "มีการ์ดจอรุ่นไหนแนะนำบ้าง") {
		t.Errorf("prompt missing new message:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, roleLabelAssistant) {
		t.Errorf("prompt should end with the assistant label:\n%s", prompt)
	}
}

func TestBuildGeneralPromptCapsHistoryAtTenTurns(t *testing.T) {
	t.Parallel()

	req := &ChatRequest{Message: "ล่าสุด"}
	for i := 0; i < 25; i++ {
		req.History = append(req.History, HistoryEntry{Text: fmt.Sprintf("turn-%d", i)})
	}
	prompt := buildGeneralPrompt(req)

	if strings.Contains(prompt, "turn-14") {
		t.Errorf("prompt should not contain turns older than the window:\n%s", prompt)
	}
	for i := 15; i < 25; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("turn-%d", i)) {
			t.Errorf("prompt missing turn-%d within the window", i)
		}
	}
	// Oldest first: turn-15 appears before turn-24.
	if strings.Index(prompt, "turn-15") > strings.Index(prompt, "turn-24") {
		t.Error("history should be rendered oldest first")
	}
}

func TestBuildUpgradePromptContainsSpecBlockAndChangeSentence(t *testing.T) {
	t.Parallel()

	prompt := buildUpgradePrompt(upgradeRequest())

	for _, want := range []string{
		"1. CPU: Intel Core i5-12400F",
		"5. การ์ดจอ: RTX 3060",
		"6. พาวเวอร์ซัพพลาย: Corsair CV650 650W",
		`เปลี่ยน การ์ดจอ จาก "RTX 3060" เป็น "RTX 4060 Ti"`,
		"1080p และ 1440p",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildUpgradePromptShowsUnspecifiedForEmptyFields(t *testing.T) {
	t.Parallel()

	req := upgradeRequest()
	req.PCSpecs.PSU = ""
	prompt := buildUpgradePrompt(req)

	if !strings.Contains(prompt, "6. พาวเวอร์ซัพพลาย: "+unspecified) {
		t.Errorf("prompt missing unspecified marker:\n%s", prompt)
	}
}

func TestBuildUpgradePromptHandlesEmptyOriginalValue(t *testing.T) {
	t.Parallel()

	req := upgradeRequest()
	req.PCSpecs.GPU = ""
	prompt := buildUpgradePrompt(req)

	if !strings.Contains(prompt, `จาก "`+unspecified+`" เป็น "RTX 4060 Ti"`) {
		t.Errorf("change sentence should fall back to unspecified:\n%s", prompt)
	}
}
