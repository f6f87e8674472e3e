// Package search provides stateless filter, sort and ranking functions
// over a snapshot of prompts. Nothing here mutates its input or touches
// persistence; every function returns a fresh slice (or the input
// unchanged for identity filters).
package search

import (
	"sort"
	"strings"

	"github.com/codeprompt/companion/internal/models"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator compares labels the way a locale-aware UI would: "apple"
// sorts before "Banana".
var collator = collate.New(language.English, collate.IgnoreCase)

// Search returns the prompts matching every whitespace-separated term
// of the query as a substring of the prompt's searchable text (label,
// text, category and tags). Input order is preserved. An empty query
// matches everything.
func Search(prompts []models.Prompt, query string) []models.Prompt {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return prompts
	}

	var results []models.Prompt
	for _, p := range prompts {
		haystack := p.SearchText()
		matched := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
		}
		if matched {
			results = append(results, p)
		}
	}
	return results
}

// Fuzzy returns prompts fuzzy-matching the query over the same
// searchable text, best matches first.
func Fuzzy(prompts []models.Prompt, query string) []models.Prompt {
	if query == "" {
		return prompts
	}

	haystacks := make([]string, len(prompts))
	for i, p := range prompts {
		haystacks[i] = p.SearchText()
	}

	var results []models.Prompt
	for _, match := range fuzzy.Find(strings.ToLower(query), haystacks) {
		results = append(results, prompts[match.Index])
	}
	return results
}

// FilterByTags returns prompts carrying every requested tag. An empty
// tag list applies no filtering.
func FilterByTags(prompts []models.Prompt, tags []string) []models.Prompt {
	if len(tags) == 0 {
		return prompts
	}

	var results []models.Prompt
	for _, p := range prompts {
		all := true
		for _, tag := range tags {
			if !p.HasTag(tag) {
				all = false
				break
			}
		}
		if all {
			results = append(results, p)
		}
	}
	return results
}

// FilterByCategory returns prompts in the given category. An empty
// category applies no filtering.
func FilterByCategory(prompts []models.Prompt, category string) []models.Prompt {
	if category == "" {
		return prompts
	}
	var results []models.Prompt
	for _, p := range prompts {
		if p.Category == category {
			results = append(results, p)
		}
	}
	return results
}

// FilterByLanguage returns prompts for the given language. An empty
// language applies no filtering.
func FilterByLanguage(prompts []models.Prompt, lang string) []models.Prompt {
	if lang == "" {
		return prompts
	}
	var results []models.Prompt
	for _, p := range prompts {
		if p.Language == lang {
			results = append(results, p)
		}
	}
	return results
}

// FilterFavorites returns only the favorite prompts.
func FilterFavorites(prompts []models.Prompt) []models.Prompt {
	var results []models.Prompt
	for _, p := range prompts {
		if p.IsFavorite {
			results = append(results, p)
		}
	}
	return results
}

// Sort returns a sorted copy of prompts. Alphabetical compares labels
// with locale-aware collation; mostUsed and recentlyUsed sort
// descending with missing counters treated as zero. Any other order
// returns the input unchanged. All sorts are stable.
func Sort(prompts []models.Prompt, order string) []models.Prompt {
	switch order {
	case models.SortAlphabetical, models.SortMostUsed, models.SortRecentlyUsed:
	default:
		return prompts
	}

	sorted := append([]models.Prompt(nil), prompts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		switch order {
		case models.SortMostUsed:
			return sorted[i].UseCount > sorted[j].UseCount
		case models.SortRecentlyUsed:
			return sorted[i].LastUsed > sorted[j].LastUsed
		default:
			return collator.CompareString(sorted[i].Label, sorted[j].Label) < 0
		}
	})
	return sorted
}

// UniqueTags returns the distinct tags across all prompts,
// lexicographically sorted.
func UniqueTags(prompts []models.Prompt) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range prompts {
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// UniqueCategories returns the distinct non-empty categories,
// lexicographically sorted.
func UniqueCategories(prompts []models.Prompt) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range prompts {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Related returns up to limit prompts similar to target, excluding
// target itself, ranked descending by score: +2 for a category match,
// +1 per shared tag. The sort is stable so equal scores keep the input
// order. The scoring is intentionally simple.
func Related(target models.Prompt, prompts []models.Prompt, limit int) []models.Prompt {
	if limit <= 0 {
		limit = 5
	}

	targetTags := make(map[string]bool, len(target.Tags))
	for _, tag := range target.Tags {
		targetTags[tag] = true
	}

	type scored struct {
		prompt models.Prompt
		score  int
	}
	var candidates []scored
	for _, p := range prompts {
		if p.ID == target.ID {
			continue
		}
		score := 0
		if p.Category == target.Category {
			score += 2
		}
		for _, tag := range p.Tags {
			if targetTags[tag] {
				score++
			}
		}
		candidates = append(candidates, scored{prompt: p, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	results := make([]models.Prompt, len(candidates))
	for i, c := range candidates {
		results[i] = c.prompt
	}
	return results
}
