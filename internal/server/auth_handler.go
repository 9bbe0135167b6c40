package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ananya/ideahub/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AuthHandler serves register, login and password-change requests for all
// three roles. Successful auth responses carry the dashboard route for the
// user's role so the frontend lands students, mentors and admins on their
// own screens.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Register creates an account and signs the new user in. Students register
// themselves; mentor and admin accounts arrive through the same endpoint
// with the role set by the admin screen.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeSession(w, http.StatusCreated, user)
}

// Login authenticates an existing account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeSession(w, http.StatusOK, user)
}

// UpdatePasswordWithUserID changes the password of an already-authenticated
// user. The ID comes from the verified token, never from the request body.
func (h *AuthHandler) UpdatePasswordWithUserID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.UpdatePasswordRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// decodeValid decodes the request body into dst and runs its validator tags.
// It writes the 400 itself and reports whether the handler should continue.
func (h *AuthHandler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return false
	}
	return true
}

// writeSession issues a token for the user and responds with the session
// payload, including the role's landing route.
func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, status, types.LoginResponse{
		User:       user,
		Token:      token,
		RedirectTo: roleLandingRoute(user.Role),
	})
}

func (h *AuthHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// roleLandingRoute maps a role to its dashboard route. Unknown roles fall
// back to the login screen.
func roleLandingRoute(role string) string {
	switch role {
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

// extractValidationErrors turns validator errors into a short message naming
// the first offending field.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
