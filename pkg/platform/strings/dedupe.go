// Package strings provides string helpers shared across RTW packages.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// NormalizeKey lowercases a free-text value and collapses internal runs of
// whitespace to a single space, so "  Irish  Citizen " matches "irish citizen".
func NormalizeKey(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

// Mask keeps the first n runes of a value and replaces the rest with '*'.
// Used when a sensitive identifier has to appear in logs.
func Mask(value string, keep int) string {
	runes := []rune(value)
	if keep < 0 {
		keep = 0
	}
	if len(runes) <= keep {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:keep]) + strings.Repeat("*", len(runes)-keep)
}
