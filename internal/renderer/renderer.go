// Package renderer turns prompt text into display or export formats:
// terminal markdown via glamour, or an LLM message array as JSON.
package renderer

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Markdown renders text as styled terminal markdown wrapped at width.
func Markdown(text string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Message represents a chat message for LLM APIs
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesJSON renders filled prompt text as a single-user-message
// JSON array suitable for LLM chat APIs.
func MessagesJSON(text string) (string, error) {
	messages := []Message{{Role: "user", Content: text}}

	jsonBytes, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(jsonBytes), nil
}
