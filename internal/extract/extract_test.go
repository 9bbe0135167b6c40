package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLText(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head><body>
		<h1>Solar Cold Storage</h1>
		<p>Affordable refrigeration for rural farmers.</p>
		<script>console.log("ignore me")</script>
		<ul><li>Setup cost: Rs. 4,10,000</li><li>Monthly revenue: Rs. 50,000</li></ul>
	</body></html>`

	text, err := HTMLText(strings.NewReader(html))
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, []string{
		"Solar Cold Storage",
		"Affordable refrigeration for rural farmers.",
		"Setup cost: Rs. 4,10,000",
		"Monthly revenue: Rs. 50,000",
	}, lines)
	assert.NotContains(t, text, "ignore me")
	assert.NotContains(t, text, "color:red")
}

func TestHTMLTextUnstructuredBody(t *testing.T) {
	text, err := HTMLText(strings.NewReader("<html><body>just words</body></html>"))
	require.NoError(t, err)
	assert.Equal(t, "just words", text)
}

func TestPlainText(t *testing.T) {
	input := "first line\n\n  second line  \n\nthird\n"
	lines, err := PlainText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line", "third"}, lines)
}

func TestPlainTextEmpty(t *testing.T) {
	lines, err := PlainText(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
