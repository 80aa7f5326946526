package transport

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is free text from model output. Besides a JSON string it accepts a number,
// an array (elements joined by newlines) or an object (kept as compact JSON).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '[':
		var parts []Text
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		lines := make([]string, 0, len(parts))
		for _, p := range parts {
			lines = append(lines, string(p))
		}
		*t = Text(strings.Join(lines, "\n"))
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = Text(buf.String())
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string { return string(t) }
