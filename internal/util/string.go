package util

import (
	"strconv"
	"strings"
	"unicode"
)

// CollapseControl replaces every run of ASCII whitespace and control
// characters (newline, form feed, tab, C0/C1 controls) with a single space and
// trims the result. Other spacing such as U+3000 is left untouched.
func CollapseControl(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if isBreakingRune(r) {
			pendingSpace = builder.Len() > 0
			continue
		}
		if pendingSpace {
			builder.WriteByte(' ')
			pendingSpace = false
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func isBreakingRune(r rune) bool {
	if r == ' ' {
		return true
	}
	return (r < unicode.MaxASCII && unicode.IsSpace(r)) || unicode.IsControl(r)
}

// LastPathSegment returns the last non-empty "/"-separated segment of a URL
// or path, e.g. ".../pokemon/25/" -> "25".
func LastPathSegment(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// IDFromURL parses the trailing path segment of a resource URL as a positive id.
func IDFromURL(rawURL string) (int, bool) {
	id, err := strconv.Atoi(LastPathSegment(rawURL))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
