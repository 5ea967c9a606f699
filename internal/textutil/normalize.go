package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakMarkupRe = regexp.MustCompile(`(?i)(<br\s*/?>|\|)`)
	whitespaceRe  = regexp.MustCompile(`[\s\x{00A0}\x{2000}-\x{200B}\x{202F}\x{205F}\x{3000}]+`)
)

// Normalize decodes HTML entities, replaces line-break markup and pipe
// characters with spaces, collapses all whitespace (including the full
// Unicode whitespace set) to single spaces, and trims both ends.
func Normalize(text string) string {
	text = html.UnescapeString(text)
	text = breakMarkupRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate cuts text to at most limit runes and reports whether a cut was
// made. Trailing whitespace left by the cut is removed.
func Truncate(text string, limit int) (string, bool) {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text, false
	}
	return strings.TrimRight(string(runes[:limit]), " "), true
}
