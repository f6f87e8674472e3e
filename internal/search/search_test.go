package search

import (
	"testing"

	"github.com/codeprompt/companion/internal/models"
)

func samplePrompts() []models.Prompt {
	return []models.Prompt{
		{
			ID:       "flexbox",
			Label:    "CSS Flexbox Layout",
			Text:     "Create a flexible layout using CSS Flexbox",
			Category: "css",
			Tags:     []string{"css", "flexbox", "layout"},
		},
		{
			ID:       "grid",
			Label:    "CSS Grid Layout",
			Text:     "Create a responsive grid layout",
			Category: "css",
			Tags:     []string{"css", "grid", "layout"},
		},
		{
			ID:       "hooks",
			Label:    "React Hooks",
			Text:     "Explain React hooks with examples",
			Category: "react",
			Tags:     []string{"react", "hooks"},
			Language: "javascript",
		},
	}
}

func TestSearchMatchesEveryTerm(t *testing.T) {
	prompts := samplePrompts()

	results := Search(prompts, "flex layout")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result for %q, got %d", "flex layout", len(results))
	}
	if results[0].ID != "flexbox" {
		t.Errorf("Expected flexbox prompt, got %q", results[0].ID)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	prompts := samplePrompts()

	results := Search(prompts, "REACT")
	if len(results) != 1 || results[0].ID != "hooks" {
		t.Fatalf("Case-insensitive search failed: %v", results)
	}
}

func TestSearchMatchesTagsAndCategory(t *testing.T) {
	prompts := samplePrompts()

	// "grid" only appears in tags and text of the grid prompt
	results := Search(prompts, "grid")
	if len(results) != 1 || results[0].ID != "grid" {
		t.Fatalf("Tag search failed: %v", results)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	prompts := samplePrompts()

	results := Search(prompts, "   ")
	if len(results) != len(prompts) {
		t.Errorf("Blank query should match everything, got %d results", len(results))
	}
}

func TestSearchNoMatch(t *testing.T) {
	prompts := samplePrompts()

	if results := Search(prompts, "flexbox python"); len(results) != 0 {
		t.Errorf("Expected no results when one term misses, got %d", len(results))
	}
}

func TestSearchPreservesOrder(t *testing.T) {
	prompts := samplePrompts()

	results := Search(prompts, "layout")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ID != "flexbox" || results[1].ID != "grid" {
		t.Errorf("Result order should follow input order: %q, %q", results[0].ID, results[1].ID)
	}
}

func TestFuzzy(t *testing.T) {
	prompts := samplePrompts()

	results := Fuzzy(prompts, "rcthks")
	if len(results) == 0 {
		t.Fatal("Fuzzy search should tolerate missing characters")
	}
	if results[0].ID != "hooks" {
		t.Errorf("Expected hooks prompt first, got %q", results[0].ID)
	}
}

func TestFilters(t *testing.T) {
	prompts := samplePrompts()

	if got := FilterByCategory(prompts, "css"); len(got) != 2 {
		t.Errorf("Expected 2 css prompts, got %d", len(got))
	}
	if got := FilterByCategory(prompts, ""); len(got) != 3 {
		t.Errorf("Empty category should not filter, got %d", len(got))
	}
	if got := FilterByLanguage(prompts, "javascript"); len(got) != 1 {
		t.Errorf("Expected 1 javascript prompt, got %d", len(got))
	}
	if got := FilterByTags(prompts, []string{"css", "layout"}); len(got) != 2 {
		t.Errorf("Expected 2 prompts with both tags, got %d", len(got))
	}
	if got := FilterByTags(prompts, []string{"css", "hooks"}); len(got) != 0 {
		t.Errorf("Expected 0 prompts with disjoint tags, got %d", len(got))
	}
}

func TestFilterFavorites(t *testing.T) {
	prompts := samplePrompts()
	prompts[1].IsFavorite = true

	got := FilterFavorites(prompts)
	if len(got) != 1 || got[0].ID != "grid" {
		t.Fatalf("Favorite filter failed: %v", got)
	}
}

func TestSortAlphabetical(t *testing.T) {
	prompts := []models.Prompt{
		{ID: "b", Label: "banana"},
		{ID: "a", Label: "Apple"},
		{ID: "c", Label: "cherry"},
	}

	sorted := Sort(prompts, models.SortAlphabetical)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: expected %q, got %q", i, id, sorted[i].ID)
		}
	}
	// Input must be untouched
	if prompts[0].ID != "b" {
		t.Error("Sort must not mutate its input")
	}
}

func TestSortMostUsed(t *testing.T) {
	prompts := samplePrompts()
	prompts[0].UseCount = 1
	prompts[1].UseCount = 5
	// prompts[2] never used

	sorted := Sort(prompts, models.SortMostUsed)
	counts := []int{5, 1, 0}
	for i, want := range counts {
		if sorted[i].UseCount != want {
			t.Errorf("Position %d: expected count %d, got %d", i, want, sorted[i].UseCount)
		}
	}
}

func TestSortRecentlyUsed(t *testing.T) {
	prompts := samplePrompts()
	prompts[0].LastUsed = 100
	prompts[2].LastUsed = 300

	sorted := Sort(prompts, models.SortRecentlyUsed)
	if sorted[0].ID != "hooks" || sorted[1].ID != "flexbox" {
		t.Errorf("Recently-used order wrong: %q, %q", sorted[0].ID, sorted[1].ID)
	}
}

func TestSortUnknownOrderReturnsInput(t *testing.T) {
	prompts := samplePrompts()

	sorted := Sort(prompts, "bogus")
	for i := range prompts {
		if sorted[i].ID != prompts[i].ID {
			t.Fatal("Unknown sort order should leave the order unchanged")
		}
	}
}

func TestUniqueTagsAndCategories(t *testing.T) {
	prompts := samplePrompts()

	tags := UniqueTags(prompts)
	want := []string{"css", "flexbox", "grid", "hooks", "layout", "react"}
	if len(tags) != len(want) {
		t.Fatalf("Expected tags %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("Tag %d: expected %q, got %q", i, want[i], tags[i])
		}
	}

	categories := UniqueCategories(prompts)
	if len(categories) != 2 || categories[0] != "css" || categories[1] != "react" {
		t.Errorf("Unexpected categories: %v", categories)
	}
}

func TestRelatedScoring(t *testing.T) {
	target := models.Prompt{
		ID:       "target",
		Category: "css",
		Tags:     []string{"css", "layout"},
	}
	prompts := []models.Prompt{
		target,
		{ID: "same-cat-two-tags", Category: "css", Tags: []string{"css", "layout"}}, // score 4
		{ID: "same-cat", Category: "css", Tags: []string{"animation"}},              // score 2
		{ID: "one-tag", Category: "react", Tags: []string{"layout"}},                // score 1
		{ID: "unrelated", Category: "react", Tags: []string{"hooks"}},               // score 0
	}

	related := Related(target, prompts, 10)
	if len(related) != 4 {
		t.Fatalf("Expected 4 related prompts, got %d", len(related))
	}
	if related[0].ID != "same-cat-two-tags" {
		t.Errorf("Highest score first: got %q", related[0].ID)
	}
	if related[1].ID != "same-cat" || related[2].ID != "one-tag" {
		t.Errorf("Score order wrong: %q, %q", related[1].ID, related[2].ID)
	}
	// Zero-score prompts are still included
	if related[3].ID != "unrelated" {
		t.Errorf("Zero-score prompt should be last, got %q", related[3].ID)
	}
}

func TestRelatedStableTies(t *testing.T) {
	target := models.Prompt{ID: "target", Category: "css"}
	prompts := []models.Prompt{
		{ID: "first", Category: "css"},
		{ID: "second", Category: "css"},
	}

	related := Related(target, prompts, 10)
	if related[0].ID != "first" || related[1].ID != "second" {
		t.Errorf("Equal scores must keep input order: %q, %q", related[0].ID, related[1].ID)
	}
}

func TestRelatedLimit(t *testing.T) {
	target := models.Prompt{ID: "target", Category: "css"}
	prompts := []models.Prompt{
		{ID: "a", Category: "css"},
		{ID: "b", Category: "css"},
		{ID: "c", Category: "css"},
	}

	if got := Related(target, prompts, 2); len(got) != 2 {
		t.Errorf("Expected limit of 2, got %d", len(got))
	}
	// Non-positive limit falls back to the default of 5
	if got := Related(target, prompts, 0); len(got) != 3 {
		t.Errorf("Default limit should include all 3, got %d", len(got))
	}
}
