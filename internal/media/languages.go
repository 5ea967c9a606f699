package media

import (
	"regexp"
	"sort"
	"strings"
)

// Matches "[de+en]"-style language tags embedded in file names.
var fileLanguageRe = regexp.MustCompile(`\[([A-Za-z]{2}(?:\+[A-Za-z]{2})*)\]`)

const (
	streamTypeAudio    = 2
	streamTypeSubtitle = 3
)

// Languages extracts sorted, deduplicated audio and subtitle language codes
// from the item's media streams. When no audio stream declares a language,
// a "[de+en]" tag in the file name serves as fallback.
func (i *Item) Languages() (audio, subs []string) {
	var parts []Part
	for _, mi := range i.MediaInfo {
		parts = append(parts, mi.Parts...)
	}
	for _, p := range parts {
		for _, st := range p.Streams {
			lang := st.LanguageCode
			if lang == "" {
				lang = st.SubtitleLanguageCode
			}
			if lang == "" {
				lang = st.Language
			}
			if lang == "" {
				continue
			}
			lang = strings.ToLower(lang)
			switch st.Type.Int() {
			case streamTypeAudio:
				audio = append(audio, lang)
			case streamTypeSubtitle:
				subs = append(subs, lang)
			}
		}
	}
	if len(audio) == 0 {
		for _, p := range parts {
			m := fileLanguageRe.FindStringSubmatch(p.File)
			if m == nil {
				continue
			}
			for _, code := range strings.Split(m[1], "+") {
				audio = append(audio, strings.ToLower(code))
			}
			break
		}
	}
	return uniqueSorted(audio), uniqueSorted(subs)
}

func uniqueSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
