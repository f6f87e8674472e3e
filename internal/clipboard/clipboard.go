// Package clipboard provides system clipboard access for copying prompt
// text and resolving the ${clipboard} template variable.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ClipboardError indicates no clipboard utility is available.
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a ClipboardError with installation hints.
func NewClipboardError() *ClipboardError {
	var msg string
	switch runtime.GOOS {
	case "linux":
		msg = "no clipboard utility found. Install one of:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		msg = "pbcopy not available (this should not happen on macOS)"
	case "windows":
		msg = "clip command not available (this should not happen on Windows)"
	default:
		msg = fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}
	return &ClipboardError{OS: runtime.GOOS, Message: msg}
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return run(text, "pbcopy")
	case "linux":
		return copyLinux(text)
	case "windows":
		return run(text, "cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Read returns the current clipboard contents.
func Read() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return output("pbpaste")
	case "linux":
		return readLinux()
	case "windows":
		return output("powershell", "-command", "Get-Clipboard")
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func copyLinux(text string) error {
	var lastErr error

	if isCommandAvailable("xclip") {
		if err := run(text, "xclip", "-selection", "clipboard"); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("xclip failed: %w", err)
		}
	}
	if isCommandAvailable("xsel") {
		if err := run(text, "xsel", "--clipboard", "--input"); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("xsel failed: %w", err)
		}
	}
	if isCommandAvailable("wl-copy") {
		if err := run(text, "wl-copy"); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("wl-copy failed: %w", err)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("clipboard utilities available but failed: %w", lastErr)
	}
	return NewClipboardError()
}

func readLinux() (string, error) {
	if isCommandAvailable("xclip") {
		return output("xclip", "-selection", "clipboard", "-o")
	}
	if isCommandAvailable("xsel") {
		return output("xsel", "--clipboard", "--output")
	}
	if isCommandAvailable("wl-paste") {
		return output("wl-paste", "--no-newline")
	}
	return "", NewClipboardError()
}

func run(stdin string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

func output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// IsAvailable checks if clipboard functionality is available.
func IsAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return isCommandAvailable("pbcopy")
	case "linux":
		return isCommandAvailable("xclip") || isCommandAvailable("xsel") || isCommandAvailable("wl-copy")
	case "windows":
		return true
	default:
		return false
	}
}
