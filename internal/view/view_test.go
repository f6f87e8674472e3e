package view

import (
	"testing"
	"unicode/utf8"

	"github.com/codeprompt/companion/internal/config"
	"github.com/codeprompt/companion/internal/models"
)

func sectionPrompts() []models.Prompt {
	return []models.Prompt{
		{ID: "a", Label: "Grid", Category: "css"},
		{ID: "b", Label: "Flexbox", Category: "css", IsFavorite: true},
		{ID: "c", Label: "Hooks", Category: "react"},
	}
}

func TestSectionsGroupsByCategory(t *testing.T) {
	cfg := config.Default()
	cfg.Features.Favorites = false

	sections := Sections(sectionPrompts(), cfg)
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Css" || sections[1].Title != "React" {
		t.Errorf("Unexpected section titles: %q, %q", sections[0].Title, sections[1].Title)
	}
	if len(sections[0].Prompts) != 2 {
		t.Errorf("Expected 2 css prompts, got %d", len(sections[0].Prompts))
	}
	// Alphabetical within the section by default
	if sections[0].Prompts[0].Label != "Flexbox" {
		t.Errorf("Expected Flexbox first, got %q", sections[0].Prompts[0].Label)
	}
}

func TestSectionsMultiByteCategory(t *testing.T) {
	cfg := config.Default()
	cfg.Features.Favorites = false
	prompts := []models.Prompt{
		{ID: "a", Label: "Umlaut", Category: "über"},
		{ID: "b", Label: "Bare", Category: ""},
	}

	sections := Sections(prompts, cfg)
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	for _, s := range sections {
		if !utf8.ValidString(s.Title) {
			t.Errorf("Section title is not valid UTF-8: %q", s.Title)
		}
	}
	if sections[0].Title != "Uncategorized" {
		t.Errorf("Empty category should read Uncategorized, got %q", sections[0].Title)
	}
	if sections[1].Title != "Über" {
		t.Errorf("Expected Über, got %q", sections[1].Title)
	}
}

func TestSectionsFavoritesFirst(t *testing.T) {
	cfg := config.Default()

	sections := Sections(sectionPrompts(), cfg)
	if len(sections) != 3 {
		t.Fatalf("Expected favorites plus 2 category sections, got %d", len(sections))
	}
	if sections[0].Title != FavoritesTitle {
		t.Errorf("Expected favorites section first, got %q", sections[0].Title)
	}
	if len(sections[0].Prompts) != 1 || sections[0].Prompts[0].ID != "b" {
		t.Errorf("Favorites section content wrong: %v", sections[0].Prompts)
	}
}

func TestSectionsNoFavoritesSectionWhenEmpty(t *testing.T) {
	cfg := config.Default()
	prompts := []models.Prompt{{ID: "a", Label: "Grid", Category: "css"}}

	sections := Sections(prompts, cfg)
	if len(sections) != 1 || sections[0].Title == FavoritesTitle {
		t.Errorf("No favorites section expected without favorites: %v", sections)
	}
}

func TestHistoryExcludesNeverUsed(t *testing.T) {
	prompts := []models.Prompt{
		{ID: "old", LastUsed: 100},
		{ID: "never"},
		{ID: "new", LastUsed: 300},
		{ID: "mid", LastUsed: 200},
	}

	history := History(prompts, 10)
	want := []string{"new", "mid", "old"}
	if len(history) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(history))
	}
	for i, id := range want {
		if history[i].ID != id {
			t.Errorf("Position %d: expected %q, got %q", i, id, history[i].ID)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	prompts := []models.Prompt{
		{ID: "a", LastUsed: 1},
		{ID: "b", LastUsed: 2},
		{ID: "c", LastUsed: 3},
	}

	if got := History(prompts, 2); len(got) != 2 {
		t.Errorf("Expected 2 entries at limit, got %d", len(got))
	}
	// Non-positive limit falls back to the default of 10
	if got := History(prompts, 0); len(got) != 3 {
		t.Errorf("Default limit should include all 3, got %d", len(got))
	}
}
