// Package normalize canonicalizes the free-text collections an event carries:
// course and category lists, competitor names and calendar dates.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// DateLayout is the only date form the API emits.
const DateLayout = "2006-01-02"

// List returns the distinct, trimmed, non-empty string forms of values in
// first-seen order. Anything that is not a slice or array yields an empty list.
func List(values any) []string {
	out := []string{}
	if values == nil {
		return out
	}

	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return out
	}
	// []byte is text, not a sequence of tokens.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return out
	}

	seen := make(map[string]struct{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s := strings.TrimSpace(stringify(rv.Index(i).Interface()))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// TryDecodeList decodes a persisted list value. A slice is normalized as-is;
// string or []byte input is parsed as JSON first. ok is false when the value
// could not be interpreted, in which case the list is empty.
func TryDecodeList(raw any) ([]string, bool) {
	var text []byte
	switch t := raw.(type) {
	case string:
		text = []byte(t)
	case []byte:
		text = t
	case nil:
		return []string{}, false
	default:
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return List(raw), true
		}
		return []string{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return []string{}, false
	}
	// Trailing garbage after the first JSON value is a malformed column.
	if dec.More() {
		return []string{}, false
	}
	return List(parsed), true
}

// DecodeList is TryDecodeList without the flag: malformed data reads as no values.
func DecodeList(raw any) []string {
	list, _ := TryDecodeList(raw)
	return list
}

// EncodeList normalizes list and serializes it as JSON text. An empty list
// encodes as "[]", never "null".
func EncodeList(list []string) string {
	b, err := json.Marshal(List(list))
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Competitors dedups and trims a comma-separated list of names and joins the
// result back with ", ".
func Competitors(raw string) string {
	return strings.Join(List(strings.Split(raw, ",")), ", ")
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Date parses raw as a calendar date and returns it as YYYY-MM-DD.
func Date(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

// DisplayDate is Date for values already read from storage: anything that
// does not parse is returned unchanged.
func DisplayDate(raw string) string {
	if d, ok := Date(raw); ok {
		return d
	}
	return raw
}
