package ui

import (
	"strings"
	"testing"
)

func TestCreateHelpTruncates(t *testing.T) {
	parts := []string{"Enter: view", "c: copy", "f: favorite"}

	full := strings.Join(parts, " • ")
	rendered := CreateHelp(parts, 20)
	if !strings.Contains(rendered, "...") {
		t.Errorf("Long help should be truncated at narrow widths: %q", rendered)
	}
	if strings.Contains(rendered, full) {
		t.Error("Truncated help should not contain the full text")
	}
}

func TestCreateHelpVeryNarrowWidth(t *testing.T) {
	parts := []string{"Enter: view", "c: copy", "f: favorite"}

	// Widths too small to truncate into must not panic
	for _, width := range []int{0, 1, 5, 7} {
		rendered := CreateHelp(parts, width)
		if rendered == "" {
			t.Errorf("Width %d should still render the help text", width)
		}
	}
}

func TestCreateHelpWideTerminal(t *testing.T) {
	parts := []string{"Enter: view", "q: quit"}

	rendered := CreateHelp(parts, 200)
	if !strings.Contains(rendered, "Enter: view • q: quit") {
		t.Errorf("Help should be untruncated on a wide terminal: %q", rendered)
	}
}
