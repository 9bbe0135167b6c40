// Package translate calls an external translation service to localize
// structured assessment output for mentors who review in regional languages.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error describes a failed translation call.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translate %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("translate %s: %s (status %d)", e.URL, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("translate %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the translation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a translation client. A nil httpClient gets a default
// with a 60 second timeout; translation of large payloads is slow.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type translateRequest struct {
	Language         string `json:"language"`
	StructuredOutput any    `json:"structured_output"`
}

type translateResponse struct {
	TranslatedOutput json.RawMessage `json:"translated_output"`
}

// TranslateStructuredOutput sends a structured payload for translation into
// the target language and returns the translated document.
func (c *Client) TranslateStructuredOutput(ctx context.Context, language string, output any) (json.RawMessage, error) {
	url := c.baseURL + "/translate-structured-output"

	body, err := json.Marshal(translateRequest{Language: language, StructuredOutput: output})
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{URL: url, Message: "failed to decode response", Cause: err}
	}
	if len(parsed.TranslatedOutput) == 0 {
		return nil, &Error{URL: url, Message: "response missing translated_output"}
	}

	return parsed.TranslatedOutput, nil
}
