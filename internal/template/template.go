// Package template extracts and substitutes ${name} placeholders in
// prompt text. The engine knows nothing about where values come from:
// callers supply a Resolver capability, and reserved variable names are
// only a naming convention between the engine's previews and the
// resolvers the interfaces build.
package template

import (
	"context"
	"regexp"
	"strings"
)

// Reserved variable names resolved from editor or environment context
// by the caller's resolver. Any other name falls back to whatever
// interactive prompt the resolver provides.
const (
	VarSelection = "selection"
	VarFileName  = "fileName"
	VarFileType  = "fileType"
	VarClipboard = "clipboard"
)

// varPattern matches ${name} tokens where name contains no '}'.
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolver supplies values for template variables. Resolve returns the
// value and true, or false when no value is provided, in which case the
// placeholder is left unreplaced. A resolver may block (interactive
// input, clipboard reads), so it takes a context.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, name string) (string, bool, error)

func (f ResolverFunc) Resolve(ctx context.Context, name string) (string, bool, error) {
	return f(ctx, name)
}

// MapResolver resolves variables from a fixed map. Missing keys report
// no value.
type MapResolver map[string]string

func (m MapResolver) Resolve(_ context.Context, name string) (string, bool, error) {
	value, ok := m[name]
	return value, ok, nil
}

// ExtractVariables returns the distinct variable names found in text,
// in first-occurrence order.
func ExtractVariables(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range varPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Fill replaces every ${name} occurrence in text with the value the
// resolver supplies for name. Each variable is resolved exactly once
// and substituted at all occurrences; variables are resolved
// sequentially in first-occurrence order. A resolver that reports no
// value, or fails, leaves that placeholder intact and filling proceeds
// with the next variable.
func Fill(ctx context.Context, text string, resolver Resolver) (string, error) {
	result := text
	for _, name := range ExtractVariables(text) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		value, ok, err := resolver.Resolve(ctx, name)
		if err != nil || !ok {
			continue
		}
		result = strings.ReplaceAll(result, "${"+name+"}", value)
	}
	return result, nil
}

// Preview replaces every placeholder with a human-readable bracketed
// stand-in without resolving anything, for display before committing to
// real substitution.
func Preview(text string) string {
	result := text
	for _, name := range ExtractVariables(text) {
		result = strings.ReplaceAll(result, "${"+name+"}", previewLabel(name))
	}
	return result
}

func previewLabel(name string) string {
	switch name {
	case VarSelection:
		return "[Selected Text]"
	case VarFileName:
		return "[Current File Name]"
	case VarFileType:
		return "[Current File Type]"
	case VarClipboard:
		return "[Clipboard Content]"
	default:
		return "[" + name + "]"
	}
}
