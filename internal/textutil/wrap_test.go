package textutil_test

import (
	"strings"
	"testing"

	"plexnote/internal/textutil"
)

func TestWrapRespectsLineAndLengthBounds(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		maxLines int
	}{
		{"short sentence", "Ein kurzer Satz.", 45, 4},
		{"long plot", strings.Repeat("Wiederholung des Inhalts ", 30), 45, 4},
		{"single word per line", "eins zwei drei vier fünf sechs sieben acht", 5, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines, _ := textutil.Wrap(tc.text, tc.maxLen, tc.maxLines, 60)
			if len(lines) > tc.maxLines {
				t.Fatalf("got %d lines, cap is %d", len(lines), tc.maxLines)
			}
			for _, line := range lines {
				if n := len([]rune(line)); n > tc.maxLen {
					t.Fatalf("line %q has %d runes, cap is %d", line, n, tc.maxLen)
				}
			}
		})
	}
}

func TestWrapHardSplitsOverlongWords(t *testing.T) {
	word := strings.Repeat("x", 70)
	lines, _ := textutil.Wrap(word, 45, 4, 60)
	if len(lines) == 0 {
		t.Fatal("expected output lines")
	}
	if !strings.HasSuffix(lines[0], "-") {
		t.Fatalf("expected hyphenated fragment, got %q", lines[0])
	}
	if n := len([]rune(lines[0])); n != 45 {
		t.Fatalf("fragment should fill the line, got %d runes", n)
	}
}

func TestWrapReportsDroppedContent(t *testing.T) {
	text := strings.Repeat("wort ", 100)
	_, droppedLong := textutil.Wrap(text, 10, 2, 60)
	if !droppedLong {
		t.Fatal("expected drop report when the cap truncates content")
	}

	_, droppedShort := textutil.Wrap("passt locker", 45, 4, 60)
	if droppedShort {
		t.Fatal("short input must not report a drop")
	}
}

func TestMarkEllipsis(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"appends marker", []string{"erste Zeile", "zweite Zeile."}, "zweite Zeile …"},
		{"keeps existing marker", []string{"schon gekürzt …"}, "schon gekürzt …"},
		{"keeps ascii marker", []string{"schon gekürzt..."}, "schon gekürzt..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := textutil.MarkEllipsis(append([]string(nil), tc.in...))
			if got := out[len(out)-1]; got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncateMarksOverflow(t *testing.T) {
	text := strings.Repeat("a", 200)
	cut, truncated := textutil.Truncate(text, 150)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len([]rune(cut)) != 150 {
		t.Fatalf("expected 150 runes, got %d", len([]rune(cut)))
	}

	if _, truncated := textutil.Truncate("kurz", 150); truncated {
		t.Fatal("short text must not report truncation")
	}
}

func TestTruncatedPlotEndsWithEllipsis(t *testing.T) {
	plot := strings.Repeat("Sehr spannende Handlung über den Wüstenplaneten. ", 10)
	norm := textutil.Normalize(plot)
	cut, truncated := textutil.Truncate(norm, 150)
	lines, dropped := textutil.Wrap(cut, 45, 4, 60)
	if truncated || dropped {
		lines = textutil.MarkEllipsis(lines)
	}
	if !strings.HasSuffix(lines[len(lines)-1], "…") {
		t.Fatalf("expected ellipsis on last line, got %q", lines[len(lines)-1])
	}
}
