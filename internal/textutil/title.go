package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	yearCodeRe    = regexp.MustCompile(`\s*\(\d{4}\)`)
	episodeCodeRe = regexp.MustCompile(`(?i)S\d{1,2}E\d{1,2}`)

	// Titles that are numbering scaffolding rather than names:
	// "Folge 7", "Episode", "Part 2", plus the usual placeholder strings.
	genericTitleRe = regexp.MustCompile(`(?i)^((folge|episode|ep|teil|chapter)\b.*|tba|tbd|unknown|unbekannt|no title|n\.a\.|not available)$`)
)

var dummyTitles = map[string]struct{}{
	"tba":           {},
	"tbd":           {},
	"unknown":       {},
	"unbekannt":     {},
	"no title":      {},
	"n.a.":          {},
	"not available": {},
}

// StripYearCodes removes "(2021)"-style year suffixes and SxxEyy codes from a
// title and trims leftover separator characters.
func StripYearCodes(title string) string {
	title = yearCodeRe.ReplaceAllString(title, "")
	title = episodeCodeRe.ReplaceAllString(title, "")
	return strings.Trim(title, " -–:|")
}

// IsNonLatin reports whether text is dominated by CJK, Hiragana, or Katakana
// characters (more than 3 such runes).
func IsNonLatin(text string) bool {
	count := 0
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
			count++
			if count > 3 {
				return true
			}
		}
	}
	return false
}

// IsUsableTitle reports whether a candidate title can be shown to users: it
// must not be a generic numbering label or placeholder, must not be dominated
// by non-Latin script, and must be at least 2 runes long.
func IsUsableTitle(title string) bool {
	if runeLen(title) < 2 {
		return false
	}
	if _, dummy := dummyTitles[strings.ToLower(title)]; dummy {
		return false
	}
	if genericTitleRe.MatchString(title) {
		return false
	}
	return !IsNonLatin(title)
}

// ShortenTitle cuts a title at the last word boundary before maxLen runes and
// appends an ellipsis. Titles within the limit pass through unchanged.
func ShortenTitle(title string, maxLen int) string {
	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + " …"
}
