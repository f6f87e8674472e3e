// Package view derives presentation groupings from a prompt snapshot
// and the configuration. It never mutates the stores; callers pass in
// prompts already annotated with favorite status and usage data.
package view

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/codeprompt/companion/internal/config"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/search"
)

// Section is one rendered group of prompts.
type Section struct {
	Title   string
	Prompts []models.Prompt
}

// FavoritesTitle is the synthetic section prepended when the favorites
// feature is enabled and at least one favorite exists.
const FavoritesTitle = "⭐ Favorites"

// Sections groups prompts by category (categories sorted
// lexicographically, labels capitalized) with an optional Favorites
// section first. Within each section the configured sort order applies.
func Sections(prompts []models.Prompt, cfg *config.Config) []Section {
	var sections []Section

	if cfg.Features.Favorites {
		favorites := search.FilterFavorites(prompts)
		if len(favorites) > 0 {
			sections = append(sections, Section{
				Title:   FavoritesTitle,
				Prompts: search.Sort(favorites, cfg.SortOrder),
			})
		}
	}

	grouped := make(map[string][]models.Prompt)
	for _, p := range prompts {
		grouped[p.Category] = append(grouped[p.Category], p)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		sections = append(sections, Section{
			Title:   formatCategoryLabel(category),
			Prompts: search.Sort(grouped[category], cfg.SortOrder),
		})
	}
	return sections
}

// History returns up to limit prompts that have been used at least
// once, most recently used first, ranked by the real last-used
// timestamp. Never-used prompts are excluded rather than padded in
// with a zero timestamp.
func History(prompts []models.Prompt, limit int) []models.Prompt {
	if limit <= 0 {
		limit = 10
	}

	var used []models.Prompt
	for _, p := range prompts {
		if p.LastUsed > 0 {
			used = append(used, p)
		}
	}

	sort.SliceStable(used, func(i, j int) bool {
		return used[i].LastUsed > used[j].LastUsed
	})

	if len(used) > limit {
		used = used[:limit]
	}
	return used
}

func formatCategoryLabel(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}
