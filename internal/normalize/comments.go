package normalize

import (
	"encoding/json"
	"time"

	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
)

// Defaults applied to comments whose source record is missing fields.
const (
	defaultCommentAuthor = "Anonymous"
	defaultCommentRole   = "mentor"
)

// Comments normalizes a stored comments value into a slice of view-model
// comments. Accepted shapes:
//
//   - nil: empty slice
//   - JSON-encoded string: parsed and normalized; a string that is not valid
//     JSON becomes a single comment holding the original text
//   - array: strings become comments with defaults, objects pass through
//     with defaults for missing fields
//   - single object: one-element slice
//
// Element order is preserved.
func Comments(v any) []types.Comment {
	switch val := v.(type) {
	case nil:
		return []types.Comment{}
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			if val == "" {
				return []types.Comment{}
			}
			return []types.Comment{newComment(val)}
		}
		return Comments(decoded)
	case []byte:
		return Comments(string(val))
	}

	decoded := decodeAny(v)
	switch val := decoded.(type) {
	case []any:
		out := make([]types.Comment, 0, len(val))
		for _, elem := range val {
			out = append(out, commentFrom(elem))
		}
		return out
	case map[string]any:
		return []types.Comment{commentFrom(val)}
	default:
		return []types.Comment{}
	}
}

// commentFrom builds a comment from one array element.
func commentFrom(v any) types.Comment {
	if m := asMap(v); m != nil {
		c := types.Comment{
			Text:      asString(m["text"]),
			Author:    defaultCommentAuthor,
			Role:      defaultCommentRole,
			Timestamp: time.Now(),
			Visible:   true,
		}
		if c.Text == "" {
			if alt, ok := firstKey(m, "comment", "message"); ok {
				c.Text = asString(alt)
			}
		}
		if author := asString(m["author"]); author != "" {
			c.Author = author
		}
		if role := asString(m["role"]); role != "" {
			c.Role = role
		}
		if id := asString(m["id"]); id != "" {
			if parsed, err := uuid.Parse(id); err == nil {
				c.ID = parsed
			}
		}
		if ts := asString(m["timestamp"]); ts != "" {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				c.Timestamp = parsed
			}
		}
		if visible, ok := m["visible"].(bool); ok {
			c.Visible = visible
		}
		return c
	}
	return newComment(stringify(v))
}

// newComment wraps bare text in a comment with defaults.
func newComment(text string) types.Comment {
	return types.Comment{
		Text:      text,
		Author:    defaultCommentAuthor,
		Role:      defaultCommentRole,
		Timestamp: time.Now(),
		Visible:   true,
	}
}
