package clipboard

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestClipboardError(t *testing.T) {
	err := NewClipboardError()

	if err.OS != runtime.GOOS {
		t.Errorf("Expected OS to be %s, got %s", runtime.GOOS, err.OS)
	}
	if err.Error() == "" {
		t.Error("Error message should not be empty")
	}

	var clipErr *ClipboardError
	if !errors.As(err, &clipErr) {
		t.Error("Should be able to unwrap as ClipboardError")
	}

	if runtime.GOOS == "linux" && !strings.Contains(err.Error(), "xclip") {
		t.Error("Linux message should mention xclip")
	}
}

func TestIsAvailable(t *testing.T) {
	// Varies by platform, but must not panic
	available := IsAvailable()

	if runtime.GOOS == "darwin" && !available {
		t.Error("Clipboard should be available on macOS")
	}
	_ = available
}
