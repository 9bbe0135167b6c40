package llm

import "strings"

// CleanJSONBlock recovers the JSON document from a raw model response.
// Responses arrive wrapped in markdown fences, prefixed with conversational
// preamble, or followed by trailing chatter, sometimes all three.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if fenced, ok := stripFence(text); ok {
		text = fenced
	}

	// Already a bare document.
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		if doc := extractJSONObject(text); doc != "" {
			return doc
		}
		if doc := extractJSONArray(text); doc != "" {
			return doc
		}
		return text
	}

	// Preamble before the document: cut to the first brace or bracket and
	// take the balanced span from there.
	if idx := strings.IndexAny(text, "{["); idx >= 0 {
		candidate := text[idx:]
		if candidate[0] == '{' {
			if doc := extractJSONObject(candidate); doc != "" {
				return doc
			}
		}
		if doc := extractJSONArray(candidate); doc != "" {
			return doc
		}
	}

	return text
}

// stripFence removes a ```json or generic ``` wrapper. The second form may
// carry a language tag on the opening line.
func stripFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine == "json" || (len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[")) {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text), true
}

// extractJSONObject returns the balanced {...} span at the start of text, or
// "" when text does not open with one. Braces inside string literals do not
// count toward the balance.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray is extractJSONObject for [...] spans.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
