package textutil

import (
	"strings"
)

// Wrap greedily wraps text into lines of at most maxLen runes, stopping after
// maxLines lines. Words longer than maxWordSplit runes are hard-split across
// lines with a trailing hyphen. Once the line cap is reached, wrapping stops
// and any remaining text is dropped; the second return value reports whether
// anything was dropped.
func Wrap(text string, maxLen, maxLines, maxWordSplit int) ([]string, bool) {
	words := strings.Fields(text)
	lines := make([]string, 0, maxLines)
	var cur string

	full := func() bool { return len(lines) >= maxLines }

	for _, word := range words {
		if full() {
			break
		}
		runes := []rune(word)
		switch {
		case len(runes) > maxWordSplit:
			for len(runes) > maxLen {
				if full() {
					return lines, dropped(lines, text)
				}
				lines = append(lines, string(runes[:maxLen-1])+"-")
				runes = runes[maxLen-1:]
			}
			cur += string(runes) + " "
		case runeLen(cur)+len(runes)+1 > maxLen:
			if full() {
				return lines, dropped(lines, text)
			}
			lines = append(lines, strings.TrimRight(cur, " "))
			cur = word + " "
		default:
			cur += word + " "
		}
		if full() {
			return lines, dropped(lines, text)
		}
	}

	if cur != "" && !full() {
		lines = append(lines, strings.TrimRight(cur, " "))
	}
	return lines, dropped(lines, text)
}

// MarkEllipsis appends the ellipsis marker to the last line unless it already
// ends in one. Trailing spaces and periods give way to the marker.
func MarkEllipsis(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	last := lines[len(lines)-1]
	if strings.HasSuffix(last, "…") || strings.HasSuffix(last, "...") {
		return lines
	}
	lines[len(lines)-1] = strings.TrimRight(last, " .") + " …"
	return lines
}

func dropped(lines []string, original string) bool {
	return runeLen(strings.Join(lines, " ")) < runeLen(original)
}

func runeLen(s string) int {
	return len([]rune(s))
}
