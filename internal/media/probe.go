package media

import "strings"

var codecFields = []string{"video_codec", "stream_video_codec"}

var resolutionFields = []string{"video_resolution", "video_full_resolution", "stream_video_resolution"}

// FindCodecRes walks a decoded JSON tree depth-first and returns the first
// video codec and resolution it encounters. The walk is shape-agnostic so
// payload layout changes between item kinds do not break it. Codec is
// upper-cased, resolution normalised to "<height>p".
func FindCodecRes(node any) (codec, resolution string) {
	switch v := node.(type) {
	case map[string]any:
		codec = firstStringField(v, codecFields)
		resolution = firstStringField(v, resolutionFields)
		if codec != "" || resolution != "" {
			return strings.ToUpper(codec), normalizeResolution(resolution)
		}
		for _, child := range v {
			if c, r := FindCodecRes(child); c != "" || r != "" {
				return c, r
			}
		}
	case []any:
		for _, child := range v {
			if c, r := FindCodecRes(child); c != "" || r != "" {
				return c, r
			}
		}
	}
	return "", ""
}

func firstStringField(m map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// normalizeResolution maps "480" to "480p" and "640x480" to "480p".
func normalizeResolution(res string) string {
	if res == "" {
		return ""
	}
	if isDigits(res) {
		return res + "p"
	}
	if idx := strings.LastIndex(res, "x"); idx >= 0 {
		if h := res[idx+1:]; isDigits(h) {
			return h + "p"
		}
	}
	return res
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
