package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ratingKeyEnvNames lists the environment variables checked for a rating key,
// in priority order. The same names are accepted as JSON keys on stdin.
var ratingKeyEnvNames = []string{"rating_key", "TAUTULLI_RATING_KEY", "RATING_KEY", "ratingKey"}

// resolveRatingKey picks the rating key from the flag, then the environment,
// then a stdin payload. stdin may be nil when the process is attached to a
// terminal. An empty result is not an error; the pipeline falls back to the
// most recently added item.
func resolveRatingKey(flagValue string, getenv func(string) string, stdin io.Reader) string {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key
	}
	for _, name := range ratingKeyEnvNames {
		if key := strings.TrimSpace(getenv(name)); key != "" {
			return key
		}
	}
	if stdin != nil {
		if key := ratingKeyFromStdin(stdin); key != "" {
			return key
		}
	}
	return ""
}

// ratingKeyFromStdin reads a single payload: either a bare numeric key or a
// JSON object carrying one of the accepted key names. Malformed input is
// ignored.
func ratingKeyFromStdin(stdin io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(stdin, 1<<20))
	if err != nil {
		return ""
	}
	payload := strings.TrimSpace(string(raw))
	if payload == "" {
		return ""
	}
	if isDigits(payload) {
		return payload
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return ""
	}
	for _, name := range ratingKeyEnvNames {
		value, ok := fields[name]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
