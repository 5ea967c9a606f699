package media

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string, number, or null into a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the underlying value.
func (f FlexString) String() string { return string(f) }

// FlexInt decodes a JSON number or numeric string into an int. Empty strings
// and null decode to zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(int(v))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(int(v))
	return nil
}

// Int returns the underlying value.
func (f FlexInt) Int() int { return int(f) }

// GuidList decodes a guid array that may contain plain strings or
// {"id": "..."} objects.
type GuidList []string

// UnmarshalJSON implements json.Unmarshaler.
func (g *GuidList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*g = nil
		return nil
	}
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*g = plain
		return nil
	}
	var wrapped []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	out := make([]string, 0, len(wrapped))
	for _, w := range wrapped {
		if w.ID != "" {
			out = append(out, w.ID)
		}
	}
	*g = out
	return nil
}
