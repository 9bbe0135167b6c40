package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsNil(t *testing.T) {
	got := Comments(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCommentsPlainString(t *testing.T) {
	got := Comments("great progress this week")
	require.Len(t, got, 1)
	assert.Equal(t, "great progress this week", got[0].Text)
	assert.Equal(t, "Anonymous", got[0].Author)
	assert.Equal(t, "mentor", got[0].Role)
	assert.True(t, got[0].Visible)
	assert.WithinDuration(t, time.Now(), got[0].Timestamp, 5*time.Second)
}

func TestCommentsEncodedArrayMatchesDecodedArray(t *testing.T) {
	fromString := Comments(`["a","b"]`)
	fromArray := Comments([]any{"a", "b"})

	require.Len(t, fromString, 2)
	require.Len(t, fromArray, 2)
	for i := range fromString {
		assert.Equal(t, fromArray[i].Text, fromString[i].Text)
		assert.Equal(t, fromArray[i].Author, fromString[i].Author)
		assert.Equal(t, fromArray[i].Role, fromString[i].Role)
		assert.Equal(t, fromArray[i].Visible, fromString[i].Visible)
	}
}

func TestCommentsPreservesLengthAndOrder(t *testing.T) {
	input := []any{"first", "second", "third", "fourth"}
	got := Comments(input)
	require.Len(t, got, len(input))
	for i, text := range []string{"first", "second", "third", "fourth"} {
		assert.Equal(t, text, got[i].Text)
	}
}

func TestCommentsObjectFields(t *testing.T) {
	input := []any{
		map[string]any{
			"text":      "needs a clearer revenue model",
			"author":    "Dr. Rao",
			"role":      "mentor",
			"timestamp": "2026-03-01T10:00:00Z",
			"visible":   false,
		},
		map[string]any{"text": "noted, will revise"},
	}

	got := Comments(input)
	require.Len(t, got, 2)

	assert.Equal(t, "Dr. Rao", got[0].Author)
	assert.False(t, got[0].Visible)
	want, _ := time.Parse(time.RFC3339, "2026-03-01T10:00:00Z")
	assert.Equal(t, want, got[0].Timestamp)

	// Missing fields fall back to defaults.
	assert.Equal(t, "Anonymous", got[1].Author)
	assert.Equal(t, "mentor", got[1].Role)
	assert.True(t, got[1].Visible)
}

func TestCommentsMixedElements(t *testing.T) {
	got := Comments([]any{"plain", map[string]any{"text": "structured"}})
	require.Len(t, got, 2)
	assert.Equal(t, "plain", got[0].Text)
	assert.Equal(t, "structured", got[1].Text)
}

func TestCommentsInvalidJSONStringBecomesSingleComment(t *testing.T) {
	got := Comments(`{"broken": `)
	require.Len(t, got, 1)
	assert.Equal(t, `{"broken": `, got[0].Text)
}

func TestCommentsAlternateTextKeys(t *testing.T) {
	got := Comments([]any{map[string]any{"comment": "stored under comment key"}})
	require.Len(t, got, 1)
	assert.Equal(t, "stored under comment key", got[0].Text)
}
