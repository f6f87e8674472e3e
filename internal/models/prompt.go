package models

import (
	"fmt"
	"strings"
	"time"
)

// Sort orders recognized by search.Sort and view composition. Any other
// value leaves the input order untouched.
const (
	SortAlphabetical = "alphabetical"
	SortMostUsed     = "mostUsed"
	SortRecentlyUsed = "recentlyUsed"
)

// Prompt is a stored text snippet with metadata. Timestamps are
// milliseconds since epoch to keep the persisted JSON compatible with
// exported libraries.
type Prompt struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Language string   `json:"language,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	// Derived fields, computed at read time and never persisted.
	// IsFavorite is a join against the favorite-id set; UseCount and
	// LastUsed come from the analytics record.
	IsFavorite bool  `json:"-"`
	UseCount   int   `json:"-"`
	LastUsed   int64 `json:"-"`

	// BuiltIn marks prompts shipped with the tool. They are read-only:
	// edit and delete never touch them, favorites still apply.
	BuiltIn bool `json:"-"`
}

// Valid reports whether an imported record has the required fields.
// Tags may be empty but must have been present as a sequence; the JSON
// decoder leaves the slice nil when the key is absent.
func (p Prompt) Valid() bool {
	return p.ID != "" && p.Label != "" && p.Text != "" && p.Category != "" && p.Tags != nil
}

// HasTag reports whether the prompt carries the given tag.
func (p Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText returns the lowercased haystack the term search matches
// against: label, text, category and tags joined with spaces.
func (p Prompt) SearchText() string {
	parts := []string{p.Label, p.Text, p.Category}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Now returns the current time in the store's timestamp unit.
func Now() int64 {
	return time.Now().UnixMilli()
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (p Prompt) FilterValue() string {
	return cleanString(p.Label)
}

// Title satisfies the list.Item interface
func (p Prompt) Title() string {
	title := cleanString(p.Label)
	if title == "" {
		title = cleanString(p.ID)
	}
	if p.IsFavorite {
		title = "★ " + title
	}
	return title
}

// Description satisfies the list.Item interface
func (p Prompt) Description() string {
	var parts []string

	if p.Category != "" {
		parts = append(parts, cleanString(p.Category))
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(p.Tags, ", "))
	}
	if p.UseCount > 0 {
		parts = append(parts, fmt.Sprintf("Used %dx", p.UseCount))
	}

	result := strings.Join(parts, " • ")

	// Truncate so the row never exceeds a reasonable terminal width
	maxTotalLength := 100
	if len(result) > maxTotalLength {
		result = result[:maxTotalLength-3] + "..."
	}
	return cleanString(result)
}

// cleanString removes control characters that might break list rendering
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteByte(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}
