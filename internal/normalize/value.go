// Package normalize turns loosely-typed review payloads into fully-defaulted
// view models. Historical backends stored comments, transcriptions and
// feasibility reports in several shapes; every function here accepts any of
// them, never panics and never returns an undefined leaf.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// decodeAny converts raw input into a generic JSON value. Byte slices and
// JSON-looking strings are unmarshalled; structs and maps are passed through
// a marshal round trip so lookups see plain map[string]any values.
func decodeAny(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		var out any
		if err := json.Unmarshal(val, &out); err != nil {
			return string(val)
		}
		return out
	case string, float64, int, int64, bool:
		return val
	case map[string]any, []any:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil
		}
		return out
	}
}

// asMap returns v as an object, or nil when it is anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asString coerces scalars to their string form. Objects and arrays yield "".
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// asFloat coerces numbers and numeric strings to float64. Currency-style
// strings fall back to digit extraction so "Rs. 4,10,000" still yields a
// usable value.
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
			return f, true
		}
		if n, ok := KPIAmount(s); ok {
			return float64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// asStringSlice coerces an array value into a string slice, stringifying
// scalar elements and skipping structured ones. Always non-nil.
func asStringSlice(v any) []string {
	out := []string{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, elem := range arr {
		if s := asString(elem); s != "" {
			out = append(out, s)
		} else if m := asMap(elem); m != nil {
			if text := asString(m["text"]); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// asFloatMap coerces an object of numeric values into map[string]float64.
// Always non-nil.
func asFloatMap(v any) map[string]float64 {
	out := map[string]float64{}
	m := asMap(v)
	for key, val := range m {
		if f, ok := asFloat(val); ok {
			out[key] = f
		}
	}
	return out
}

// firstKey returns the first present value among the given keys.
func firstKey(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if val, ok := m[key]; ok {
			return val, true
		}
	}
	return nil, false
}

// stringify renders any scalar for display, used when wrapping unexpected
// values rather than dropping them.
func stringify(v any) string {
	if s := asString(v); s != "" {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
