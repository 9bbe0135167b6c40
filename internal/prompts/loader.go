// Package prompts holds the assessment prompt templates. They live in
// analysis.json, embedded at compile time, keyed by pipeline stage.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"
)

//go:embed analysis.json
var promptData []byte

var (
	loadOnce sync.Once
	loaded   map[string]string
	loadErr  error
)

// Get returns the prompt template for a pipeline stage key such as
// "assess-idea" or "feasibility-study".
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		loadErr = json.Unmarshal(promptData, &loaded)
	})
	if loadErr != nil {
		return "", fmt.Errorf("failed to parse prompt file: %w", loadErr)
	}

	prompt, ok := loaded[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders in a template with values from
// data. Placeholders with no matching key are left in place.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, fmt.Sprintf("{{.%s}}", key), value)
	}
	return template
}
