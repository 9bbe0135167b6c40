package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil", input: nil, want: []string{}},
		{name: "single string", input: "x", want: []string{"x"}},
		{name: "empty string", input: "", want: []string{}},
		{name: "string array", input: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "typed string slice", input: []string{"a", "b"}, want: []string{"a", "b"}},
		{
			name:  "object with text field",
			input: map[string]any{"text": "transcribed speech", "confidence": 0.93, "language": "en"},
			want:  []string{"transcribed speech"},
		},
		{
			name:  "array of objects",
			input: []any{map[string]any{"text": "line one"}, map[string]any{"text": "line two"}},
			want:  []string{"line one", "line two"},
		},
		{
			name:  "mixed array drops structured elements without text",
			input: []any{"keep", map[string]any{"confidence": 0.5}, 42},
			want:  []string{"keep", "42"},
		},
		{name: "object without text", input: map[string]any{"confidence": 0.5}, want: []string{}},
		{name: "number", input: 7, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transcribe(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
