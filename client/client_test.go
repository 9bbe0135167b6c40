package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingRoute(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected string
	}{
		{name: "student", role: types.RoleStudent, expected: "/student"},
		{name: "mentor", role: types.RoleMentor, expected: "/mentor"},
		{name: "admin", role: types.RoleAdmin, expected: "/admin"},
		{name: "unknown role", role: "superuser", expected: "/login"},
		{name: "empty role", role: "", expected: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{Role: tt.role}
			assert.Equal(t, tt.expected, session.LandingRoute())
		})
	}
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req types.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.LoginResponse{
			User: &types.User{
				ID:   userID,
				Name: "Asha",
				Role: types.RoleStudent,
			},
			Token: "test-token",
		})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	session, authed, err := c.Login(context.Background(), "asha@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "test-token", session.Token)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "/student", session.LandingRoute())
	assert.Equal(t, "test-token", authed.token)
	// The original client stays unauthenticated.
	assert.Empty(t, c.token)
}

func TestLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, _, err := c.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"details":{"projects":[]}}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client()).WithToken("abc123")
	projects, err := c.StudentProjects(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestStudentProjects(t *testing.T) {
	studentID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/student/"+studentID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"details": map[string]any{
				"projects": []map[string]any{
					{"title": "Solar Cold Storage", "transcribe": []string{"line"}},
				},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	projects, err := c.StudentProjects(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Solar Cold Storage", projects[0].Title)
}

func TestLoadAdminOverview(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/admin/students":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"students": []map[string]any{{"name": "Asha", "role": "student"}},
			})
		case "/api/admin/mentors":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"mentors": []map[string]any{{"name": "Ravi", "role": "mentor"}},
			})
		case "/api/admin/mentor-assignments":
			_ = json.NewEncoder(w).Encode(map[string]any{"assignments": []any{}})
		case "/api/admin/potential-ideas":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"ideas":       []any{},
				"categorized": map[string]any{"best": []any{}, "mediocre": []any{}, "low": []any{}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	overview, err := c.LoadAdminOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	require.Len(t, overview.Students, 1)
	assert.Equal(t, "Asha", overview.Students[0].Name)
	require.Len(t, overview.Mentors, 1)
	assert.Empty(t, overview.Assignments)
}

func TestLoadAdminOverviewPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/mentors" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.LoadAdminOverview(context.Background())
	require.Error(t, err)
}

func TestSaveRemarks(t *testing.T) {
	projectID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/mentor/remarks/"+projectID.String(), r.URL.Path)

		var remarks types.MentorRemarks
		require.NoError(t, json.NewDecoder(r.Body).Decode(&remarks))
		assert.Equal(t, 8.5, remarks.Score)
		assert.Equal(t, types.PotentialHigh, remarks.PotentialCategory)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Remarks saved successfully"}`))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	err := c.SaveRemarks(context.Background(), projectID, types.MentorRemarks{
		Score:             8.5,
		PotentialCategory: types.PotentialHigh,
		Remarks:           "Strong unit economics.",
	})
	require.NoError(t, err)
}
