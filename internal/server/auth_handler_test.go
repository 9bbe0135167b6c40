package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ananya/ideahub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthHandler(t *testing.T) (*AuthHandler, *UserService) {
	t.Helper()
	service, _ := testUserService(t)
	return NewAuthHandler(service, testJWTService()), service
}

func postJSON(t *testing.T, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(data))
}

func TestAuthHandler_Register(t *testing.T) {
	handler, _ := testAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Register(rec, postJSON(t, types.CreateUserRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "password123",
		Role:     types.RoleStudent,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "Asha Verma", resp.User.Name)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "/student", resp.RedirectTo)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	handler, _ := testAuthHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	handler, _ := testAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Register(rec, postJSON(t, types.CreateUserRequest{
		Name:     "Asha Verma",
		Email:    "not-an-email",
		Password: "password123",
		Role:     types.RoleStudent,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email")
}

func TestAuthHandler_Login_RedirectPerRole(t *testing.T) {
	handler, service := testAuthHandler(t)

	accounts := []struct {
		email    string
		role     string
		redirect string
	}{
		{email: "asha@example.com", role: types.RoleStudent, redirect: "/student"},
		{email: "rao@example.com", role: types.RoleMentor, redirect: "/mentor"},
		{email: "dean@example.com", role: types.RoleAdmin, redirect: "/admin"},
	}

	for _, acct := range accounts {
		_, err := service.Register(context.Background(), &types.CreateUserRequest{
			Name:     "Test Account",
			Email:    acct.email,
			Password: "password123",
			Role:     acct.role,
		})
		require.NoError(t, err)
	}

	for _, acct := range accounts {
		t.Run(acct.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Login(rec, postJSON(t, types.LoginRequest{
				Email:    acct.email,
				Password: "password123",
			}))

			require.Equal(t, http.StatusOK, rec.Code)

			var resp types.LoginResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, acct.role, resp.User.Role)
			assert.Equal(t, acct.redirect, resp.RedirectTo)
		})
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler, service := testAuthHandler(t)

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "password123",
		Role:     types.RoleStudent,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON(t, types.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleLandingRoute(t *testing.T) {
	assert.Equal(t, "/student", roleLandingRoute(types.RoleStudent))
	assert.Equal(t, "/mentor", roleLandingRoute(types.RoleMentor))
	assert.Equal(t, "/admin", roleLandingRoute(types.RoleAdmin))
	assert.Equal(t, "/login", roleLandingRoute("visitor"))
}
