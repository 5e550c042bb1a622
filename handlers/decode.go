package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// jsonText accepts string, number, or null JSON values and normalizes to string.
// Every free-text request field uses it, so a team named 42 or a numeric
// series binds instead of failing the whole body; null reads as omitted.
type jsonText string

func (t *jsonText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = jsonText(s)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err == nil {
		*t = jsonText(n.String())
		return nil
	}

	return fmt.Errorf("expected string, number, or null")
}

// jsonNumber accepts a number, a numeric string, or null. Any other value
// decodes to NaN so the service rejects it with its own message.
type jsonNumber struct {
	v *float64
}

func (n *jsonNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		n.v = nil
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.v = &f
		return nil
	}

	nan := math.NaN()
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			n.v = nil
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			n.v = &f
			return nil
		}
	}
	n.v = &nan
	return nil
}

// ptr is nil when the field was omitted or null.
func (n jsonNumber) ptr() *float64 {
	return n.v
}

// jsonBool treats true, "true" and 1 as true; everything else is false.
type jsonBool bool

func (b *jsonBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}
