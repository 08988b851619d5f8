// Package text provides text processing utilities shared by the chunking
// and embedding layers.
package text

import (
	"regexp"
	"strings"
)

var (
	markupRe     = regexp.MustCompile("[`*#\\-]+")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips markdown-style markup noise (backticks, asterisks, hashes
// and hyphens used as list or emphasis markers) and collapses all whitespace
// runs, including newlines, into single spaces. Leading and trailing
// whitespace is trimmed. An empty input yields an empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = markupRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizePtr is a nil-tolerant variant of Normalize for optional fields.
func NormalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}
