package cli

import (
	"os"
	"testing"

	"github.com/codeprompt/companion/internal/analytics"
	"github.com/codeprompt/companion/internal/config"
	apperrors "github.com/codeprompt/companion/internal/errors"
	"github.com/codeprompt/companion/internal/service"
	"github.com/codeprompt/companion/internal/storage"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "codeprompt-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := storage.NewStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	svc, err := service.NewService(config.Default(), store)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	tracker, err := analytics.NewTracker(config.Default(), store)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	return NewCLI(svc, tracker)
}

func TestEditPromptUnknownID(t *testing.T) {
	c := newTestCLI(t)

	err := c.editPrompt([]string{"no_such_prompt", "--label", "New Label"})
	if err == nil {
		t.Fatal("Editing an unknown prompt should fail")
	}
	if appErr := apperrors.GetAppError(err); appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("Expected %s, got %s", apperrors.ErrCodeNotFound, appErr.Code)
	}
}

func TestEditPromptBuiltIn(t *testing.T) {
	c := newTestCLI(t)

	err := c.editPrompt([]string{"default_seo", "--label", "New Label"})
	if err == nil {
		t.Fatal("Editing a built-in prompt should fail")
	}
	if appErr := apperrors.GetAppError(err); appErr.Code != apperrors.ErrCodeReadOnly {
		t.Errorf("Expected %s, got %s", apperrors.ErrCodeReadOnly, appErr.Code)
	}

	prompt, err := c.service.GetPrompt("default_seo")
	if err != nil {
		t.Fatalf("Failed to read built-in prompt: %v", err)
	}
	if prompt.Label != "Optimize SEO Structure" {
		t.Errorf("Built-in prompt should be unchanged, got label %q", prompt.Label)
	}
}

func TestEditPromptUpdatesCustomPrompt(t *testing.T) {
	c := newTestCLI(t)

	prompt, err := c.service.AddPrompt(service.PromptDraft{
		Label:    "Code Review",
		Text:     "Review this code: ${selection}",
		Category: "general",
	})
	if err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}

	if err := c.editPrompt([]string{prompt.ID, "--label", "Deep Review"}); err != nil {
		t.Fatalf("Failed to edit prompt: %v", err)
	}

	updated, err := c.service.GetPrompt(prompt.ID)
	if err != nil {
		t.Fatalf("Failed to read prompt back: %v", err)
	}
	if updated.Label != "Deep Review" {
		t.Errorf("Expected updated label, got %q", updated.Label)
	}
}
