// Package extract pulls readable text out of uploaded documents so idea
// submissions can seed a transcription without manual typing.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLText extracts the visible text of an HTML document. Script and style
// content is dropped and block elements are separated by newlines.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("extract: failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var lines []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, td, pre, blockquote").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	// Documents without block structure still yield their body text.
	if len(lines) == 0 {
		if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// PlainText reads a text document into trimmed, non-empty lines.
func PlainText(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("extract: failed to read text: %w", err)
	}
	return lines, nil
}
