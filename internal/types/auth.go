// Package types provides type definitions for structured data used throughout the ideahub system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Role constants for the three dashboard audiences.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=student mentor admin"`
	Department string `json:"department,omitempty"`
	Expertise  string `json:"expertise,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
// The _id JSON key mirrors what the dashboard front end expects.
type User struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	Expertise  string    `json:"expertise,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginResponse carries the authenticated user, their session token, and the
// dashboard route their role lands on.
type LoginResponse struct {
	User       *User  `json:"user"`
	Token      string `json:"token"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
