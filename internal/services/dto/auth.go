package dto

import (
	"time"

	"juakali_backend/internal/models"
)

// RegisterRequest - new account payload
type RegisterRequest struct {
	FullName    string          `json:"full_name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Role        models.UserRole `json:"role" binding:"required,oneof=client artisan"`
	Location    string          `json:"location,omitempty"`

	// Artisan-only fields
	Bio             string   `json:"bio,omitempty"`
	YearsExperience int      `json:"years_experience,omitempty" binding:"omitempty,min=0"`
	Skills          []string `json:"skills,omitempty"`
}

// LoginRequest - sign-in payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - access token renewal
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - session teardown
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest - authenticated password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse - token pair plus user summary
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

// UserDTO - public user summary
type UserDTO struct {
	ID          string            `json:"id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number,omitempty"`
	Role        models.UserRole   `json:"role"`
	Status      models.UserStatus `json:"status"`
	Location    string            `json:"location,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
