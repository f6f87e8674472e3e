package service

import (
	"time"

	"github.com/codeprompt/companion/internal/models"
)

// builtinStamp is the fixed timestamp carried by the shipped prompts.
// Built-ins are never edited, so a stable value keeps list output and
// exports reproducible across runs.
var builtinStamp = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).UnixMilli()

// builtinPrompts returns the read-only prompt table shipped with the
// tool. Callers receive a fresh slice of copies; the table itself is
// never handed out.
func builtinPrompts() []models.Prompt {
	prompts := []models.Prompt{
		{
			ID:       "default_html_nav",
			Label:    "Create Responsive Navigation",
			Text:     "Create a responsive navigation menu with a hamburger menu for mobile devices and a horizontal menu for desktop. Include proper ARIA attributes for accessibility.",
			Category: "html",
			Tags:     []string{"navigation", "responsive", "accessibility"},
			Language: "html",
		},
		{
			ID:       "default_seo",
			Label:    "Optimize SEO Structure",
			Text:     "Optimize this HTML structure for SEO. Include proper meta tags, semantic elements, and structured data.",
			Category: "seo",
			Tags:     []string{"seo", "meta-tags", "semantic-html"},
			Language: "html",
		},
		{
			ID:       "default_css_flexbox",
			Label:    "Flexbox Layout",
			Text:     "Create a flexible layout using CSS Flexbox with proper responsive breakpoints and fallbacks for older browsers.",
			Category: "css",
			Tags:     []string{"layout", "flexbox", "responsive"},
			Language: "css",
		},
		{
			ID:       "default_css_grid",
			Label:    "CSS Grid Gallery",
			Text:     "Create a responsive image gallery using CSS Grid with proper image optimization and lazy loading.",
			Category: "css",
			Tags:     []string{"grid", "gallery", "responsive"},
			Language: "css",
		},
		{
			ID:       "default_js_es6",
			Label:    "Modern ES6+ Refactor",
			Text:     "Refactor this code using modern ES6+ features like arrow functions, destructuring, and async/await.",
			Category: "javascript",
			Tags:     []string{"es6", "refactoring", "modern-js"},
			Language: "javascript",
		},
		{
			ID:       "default_js_perf",
			Label:    "Performance Optimization",
			Text:     "Optimize this JavaScript code for better performance. Consider using memoization, debouncing, and proper event handling.",
			Category: "performance",
			Tags:     []string{"performance", "optimization", "javascript"},
			Language: "javascript",
		},
		{
			ID:       "default_react_hooks",
			Label:    "React Hooks Implementation",
			Text:     "Convert this class component to a functional component using React Hooks. Consider using useState, useEffect, and custom hooks.",
			Category: "react",
			Tags:     []string{"hooks", "functional", "modern-react"},
			Language: "typescriptreact",
		},
		{
			ID:       "default_react_perf",
			Label:    "React Performance",
			Text:     "Optimize this React component for better performance. Use React.memo, useMemo, useCallback, and proper key handling.",
			Category: "performance",
			Tags:     []string{"performance", "optimization", "react"},
			Language: "typescriptreact",
		},
		{
			ID:       "default_accessibility_aria",
			Label:    "ARIA Implementation",
			Text:     "Add proper ARIA attributes to this component to improve accessibility. Include proper roles, states, and properties.",
			Category: "accessibility",
			Tags:     []string{"accessibility", "aria", "a11y"},
			Language: "html",
		},
	}

	for i := range prompts {
		prompts[i].BuiltIn = true
		prompts[i].CreatedAt = builtinStamp
		prompts[i].UpdatedAt = builtinStamp
	}
	return prompts
}
