package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      interface{}
		expected StringArray
		wantErr  bool
	}{
		{name: "nil becomes empty", src: nil, expected: StringArray{}},
		{name: "byte slice", src: []byte(`["agritech","solar"]`), expected: StringArray{"agritech", "solar"}},
		{name: "string", src: `["one"]`, expected: StringArray{"one"}},
		{name: "empty array", src: []byte(`[]`), expected: StringArray{}},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "malformed JSON", src: []byte(`[`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			err := a.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestStringArray_Value(t *testing.T) {
	t.Run("nil serializes to empty array", func(t *testing.T) {
		var a StringArray
		v, err := a.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), v)
	})

	t.Run("values serialize as JSON", func(t *testing.T) {
		a := StringArray{"agritech", "solar"}
		v, err := a.Value()
		require.NoError(t, err)
		assert.JSONEq(t, `["agritech","solar"]`, string(v.([]byte)))
	})
}
