// Package export renders stored data into downloadable documents.
package export

import (
	"html"
	"strings"
)

// TranscriptHTML renders a transcription as a standalone printable HTML
// document. All content is escaped; the result is safe to serve directly.
func TranscriptHTML(title string, lines []string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + " - Transcript</title>\n")
	b.WriteString(`<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
p { margin: 0.75rem 0; }
.empty { color: #777; font-style: italic; }
</style>
`)
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")

	if len(lines) == 0 {
		b.WriteString("<p class=\"empty\">No transcript available.</p>\n")
	}
	for _, line := range lines {
		b.WriteString("<p>" + html.EscapeString(line) + "</p>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
