package textutil

import "strings"

const (
	// zws keeps Discord from trimming the leading indent of a block.
	zws = "\u200b"
	// Six no-break spaces; regular spaces collapse in embed rendering.
	nbspIndent = "\u00a0\u00a0\u00a0\u00a0\u00a0\u00a0"
)

// IndentBlock prefixes every line with a non-breaking indent so block bodies
// render visually nested inside an embed field.
func IndentBlock(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = nbspIndent + line
	}
	return zws + strings.Join(lines, "\n")
}
