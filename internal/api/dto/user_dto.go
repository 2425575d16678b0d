package dto

import (
	"time"

	"github.com/spec-kit/license-service/internal/domain"
)

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the public projection of a user. The password hash is
// never part of any response.
type UserProfile struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewUserProfile builds the projection from the domain model.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{Email: user.Email, FullName: user.FullName}
}
