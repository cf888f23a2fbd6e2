package cricket

import (
	"encoding/json"
	"strconv"
	"strings"
)

// String returns the value of key as received when it holds a string or number.
func (r RawMatch) String(key string) string {
	if r == nil {
		return ""
	}
	return Stringify(r[key])
}

// Has reports whether key is present, even with a null value.
func (r RawMatch) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r[key]
	return ok
}

func (r RawMatch) Bool(key string) bool {
	if r == nil {
		return false
	}
	switch typed := r[key].(type) {
	case bool:
		return typed
	case string:
		v, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && v
	default:
		return false
	}
}

func (r RawMatch) Map(key string) map[string]any {
	if r == nil {
		return nil
	}
	m, _ := r[key].(map[string]any)
	return m
}

// Innings returns the score entries that are objects, in provider order.
func (r RawMatch) Innings() []map[string]any {
	if r == nil {
		return nil
	}
	items, ok := r["score"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

// Teams returns team names in provider order; non-string entries become "".
func (r RawMatch) Teams() []string {
	if r == nil {
		return nil
	}
	items, ok := r["teams"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		name, _ := item.(string)
		out = append(out, name)
	}
	return out
}

// Stringify renders scalar values, {"name": ...} objects and string lists.
func Stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	case map[string]any:
		return Stringify(typed["name"])
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := Stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
