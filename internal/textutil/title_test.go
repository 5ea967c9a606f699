package textutil_test

import (
	"testing"

	"plexnote/internal/textutil"
)

func TestStripYearCodes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"year suffix", "Dune (2021)", "Dune"},
		{"episode code", "Dark S01E03", "Dark"},
		{"both with separators", "Dark S01E03 - (2017)", "Dark"},
		{"untouched", "Blade Runner 2049", "Blade Runner 2049"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.StripYearCodes(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsUsableTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Der Schwarm", true},
		{"Folge 7", false},
		{"Episode 12", false},
		{"Teil 2", false},
		{"TBA", false},
		{"unbekannt", false},
		{"x", false},
		{"進撃の巨人", false},
		{"Attack on Titan", true},
	}
	for _, tc := range tests {
		if got := textutil.IsUsableTitle(tc.title); got != tc.want {
			t.Errorf("IsUsableTitle(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestIsNonLatinThreshold(t *testing.T) {
	// Up to 3 CJK runes are tolerated, e.g. a Latin title with a kanji accent.
	if textutil.IsNonLatin("Ran 乱の話") {
		t.Fatal("3 CJK runes must not trip the detector")
	}
	if !textutil.IsNonLatin("千と千尋の神隠し") {
		t.Fatal("fully Japanese title must be detected")
	}
}

func TestShortenTitle(t *testing.T) {
	got := textutil.ShortenTitle("Ein wirklich ausgesprochen langer Filmtitel", 20)
	if len([]rune(got)) > 22 {
		t.Fatalf("shortened title too long: %q", got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("expected ellipsis suffix: %q", got)
	}

	if got := textutil.ShortenTitle("Dune", 20); got != "Dune" {
		t.Fatalf("short title must pass through, got %q", got)
	}
}
