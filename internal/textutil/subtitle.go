package textutil

import (
	"regexp"
	"strings"
)

var (
	prefixRe      = regexp.MustCompile(`^(.+?:\s*)`)
	breakCharRe   = regexp.MustCompile(`[-:|.,]`)
	whitespacePos = regexp.MustCompile(`\s`)
)

const decorativeCutset = " -:|.,"

// BreakSubtitle breaks an overlong subtitle line (typically "📺 Aus: <Serie>")
// into two lines without splitting words. The break point must fall inside
// the window [minLen, maxLen], measured past the prefix. Preference order:
// the last punctuation character inside the window, then the last whitespace
// inside the window, then the last whitespace before the window's upper
// bound. When no acceptable point exists, or the chosen point would leave
// fewer than 4 trailing runes, the input is returned unchanged. The second
// line is indented to the prefix's visual width.
func BreakSubtitle(text string, maxLen, minLen int, prefix string) string {
	if text == "" || runeLen(text) <= maxLen {
		return text
	}

	realPrefix := ""
	if strings.HasPrefix(text, prefix) {
		realPrefix = prefix
	} else if m := prefixRe.FindString(text); m != "" {
		realPrefix = m
	}

	prefixRunes := runeLen(realPrefix)
	body := []rune(text)[prefixRunes:]
	maxBody := maxLen - prefixRunes
	minBody := minLen - prefixRunes
	if minBody < 0 {
		minBody = 0
	}

	splitPos := -1

	// Punctuation inside the window; the last occurrence wins.
	for _, loc := range breakCharRe.FindAllStringIndex(string(body), -1) {
		pos := runeLen(string(body)[:loc[1]])
		if pos >= minBody && pos <= maxBody {
			splitPos = pos
		}
	}

	// Whitespace inside the window.
	if splitPos == -1 {
		for _, loc := range whitespacePos.FindAllStringIndex(string(body), -1) {
			pos := runeLen(string(body)[:loc[0]])
			if pos >= minBody && pos <= maxBody {
				splitPos = pos
			}
		}
	}

	// Last whitespace before the window's upper bound.
	if splitPos == -1 {
		limit := maxBody
		if limit > len(body) {
			limit = len(body)
		}
		for i := limit - 1; i >= 0; i-- {
			if body[i] == ' ' {
				splitPos = i
				break
			}
		}
	}

	if splitPos == -1 || splitPos >= len(body)-4 {
		return text
	}

	head := strings.TrimRight(string(body[:splitPos]), decorativeCutset)
	tail := strings.TrimSpace(strings.TrimLeft(string(body[splitPos:]), decorativeCutset))
	indent := strings.Repeat(" ", prefixRunes)

	return realPrefix + head + "\n" + indent + tail
}
