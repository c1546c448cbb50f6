// Package uiutil holds small formatting helpers shared by templates and view models.
package uiutil

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FriendlyDateLayout is the display layout for upstream dates.
const FriendlyDateLayout = "Jan 2, 2006"

// upstreamDateLayouts are the date shapes the upstream API is known to emit.
//
//nolint:gochecknoglobals // static read-only lookup
var upstreamDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseUpstreamDate parses a date string in any known upstream layout.
func ParseUpstreamDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatFriendlyDate renders an upstream date for display. Unparseable
// values are shown as received.
func FormatFriendlyDate(s string) string {
	t, ok := ParseUpstreamDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.Format(FriendlyDateLayout)
}

// Initials returns up to two uppercase initials for an avatar badge.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
