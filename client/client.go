// Package client is a Go SDK for the idea review API. It wraps the REST
// endpoints the dashboards consume and applies the same payload
// normalization the server uses, so callers never see legacy shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
)

// Error describes a failed API call.
type Error struct {
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("api %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s: %s (status %d)", e.Path, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the idea review API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client. A nil httpClient gets a default with a 30 second
// timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Session is an authenticated user session.
type Session struct {
	Token  string
	UserID uuid.UUID
	Role   string
	Name   string
}

// LandingRoute returns the dashboard route for the session's role. Unknown
// roles land on the login screen.
func (s *Session) LandingRoute() string {
	switch s.Role {
	case types.RoleStudent:
		return "/student"
	case types.RoleMentor:
		return "/mentor"
	case types.RoleAdmin:
		return "/admin"
	default:
		return "/login"
	}
}

// Login authenticates and returns a session plus a client carrying its token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, *Client, error) {
	var resp types.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", types.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, nil, err
	}
	if resp.User == nil {
		return nil, nil, &Error{Path: "/api/auth/login", Message: "response missing user"}
	}

	session := &Session{
		Token:  resp.Token,
		UserID: resp.User.ID,
		Role:   resp.User.Role,
		Name:   resp.User.Name,
	}
	return session, c.WithToken(resp.Token), nil
}

// Register creates an account and returns the authenticated session.
func (c *Client) Register(ctx context.Context, req types.CreateUserRequest) (*Session, *Client, error) {
	var resp types.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, nil, err
	}
	if resp.User == nil {
		return nil, nil, &Error{Path: "/api/auth/register", Message: "response missing user"}
	}

	session := &Session{
		Token:  resp.Token,
		UserID: resp.User.ID,
		Role:   resp.User.Role,
		Name:   resp.User.Name,
	}
	return session, c.WithToken(resp.Token), nil
}

// do executes one JSON round trip against the API.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Path: path, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Path: path, Message: "failed to build request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Path: path, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Path: path, Message: "failed to decode response", Cause: err}
	}
	return nil
}
