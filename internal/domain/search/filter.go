// Package search implements the client-side style list filter used by the dashboard views.
package search

import "strings"

// Field extracts one searchable string from an item.
type Field[T any] func(T) string

// Filter returns the items for which any field contains term, compared
// case-insensitively. An empty term returns items unchanged. The input
// slice is never modified.
func Filter[T any](items []T, term string, fields ...Field[T]) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, needle, fields) {
			out = append(out, item)
		}
	}
	return out
}

func matches[T any](item T, needle string, fields []Field[T]) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(item)), needle) {
			return true
		}
	}
	return false
}
