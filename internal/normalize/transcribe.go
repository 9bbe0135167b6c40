package normalize

// Transcribe normalizes a stored transcription value into a slice of lines.
// Accepted shapes:
//
//   - nil: empty slice
//   - string: single-element slice holding the string
//   - array: element-wise coercion, objects contribute their "text" field
//   - object with a "text" field: single-element slice
//
// The result is always non-nil.
func Transcribe(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case string:
		if val == "" {
			return []string{}
		}
		return []string{val}
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	case []byte:
		return Transcribe(decodeAny(val))
	}

	decoded := decodeAny(v)
	switch val := decoded.(type) {
	case string:
		return Transcribe(val)
	case []any:
		out := make([]string, 0, len(val))
		for _, elem := range val {
			if m := asMap(elem); m != nil {
				if text := asString(m["text"]); text != "" {
					out = append(out, text)
				}
				continue
			}
			if s := stringify(elem); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		if text := asString(val["text"]); text != "" {
			return []string{text}
		}
		return []string{}
	default:
		return []string{}
	}
}
