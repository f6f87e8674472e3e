package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValid(t *testing.T) {
	good := Prompt{ID: "p1", Label: "L", Text: "T", Category: "c", Tags: []string{}}
	if !good.Valid() {
		t.Error("Complete prompt should be valid")
	}

	cases := map[string]Prompt{
		"missing id":       {Label: "L", Text: "T", Category: "c", Tags: []string{}},
		"missing label":    {ID: "p", Text: "T", Category: "c", Tags: []string{}},
		"missing text":     {ID: "p", Label: "L", Category: "c", Tags: []string{}},
		"missing category": {ID: "p", Label: "L", Text: "T", Tags: []string{}},
		"nil tags":         {ID: "p", Label: "L", Text: "T", Category: "c"},
	}
	for name, p := range cases {
		if p.Valid() {
			t.Errorf("Prompt with %s should be invalid", name)
		}
	}
}

func TestValidAfterJSONDecode(t *testing.T) {
	// A record without a tags key decodes to a nil slice and is invalid
	var noTags Prompt
	if err := json.Unmarshal([]byte(`{"id":"p","label":"L","text":"T","category":"c"}`), &noTags); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if noTags.Valid() {
		t.Error("Record without tags key should be invalid")
	}

	var emptyTags Prompt
	if err := json.Unmarshal([]byte(`{"id":"p","label":"L","text":"T","category":"c","tags":[]}`), &emptyTags); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if !emptyTags.Valid() {
		t.Error("Record with an empty tags array should be valid")
	}
}

func TestHasTag(t *testing.T) {
	p := Prompt{Tags: []string{"css", "layout"}}
	if !p.HasTag("css") {
		t.Error("Expected tag css")
	}
	if p.HasTag("react") {
		t.Error("Unexpected tag react")
	}
}

func TestSearchText(t *testing.T) {
	p := Prompt{
		Label:    "CSS Flexbox",
		Text:     "Create a LAYOUT",
		Category: "css",
		Tags:     []string{"flexbox"},
	}
	haystack := p.SearchText()
	if haystack != strings.ToLower(haystack) {
		t.Error("SearchText must be lowercased")
	}
	for _, term := range []string{"css flexbox", "create a layout", "flexbox"} {
		if !strings.Contains(haystack, term) {
			t.Errorf("SearchText should contain %q", term)
		}
	}
}

func TestTitleMarksFavorites(t *testing.T) {
	p := Prompt{Label: "Grid"}
	if p.Title() != "Grid" {
		t.Errorf("Unexpected title: %q", p.Title())
	}
	p.IsFavorite = true
	if !strings.HasPrefix(p.Title(), "★ ") {
		t.Errorf("Favorite title should carry a star: %q", p.Title())
	}
}

func TestDescriptionCleansControlCharacters(t *testing.T) {
	p := Prompt{Category: "css", Tags: []string{"a\nb"}}
	if strings.ContainsAny(p.Description(), "\n\r\t") {
		t.Errorf("Description must not contain control characters: %q", p.Description())
	}
}
