package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Currency           string    `json:"currency"`
	Locale             string    `json:"locale"`
	EmailNotifications bool      `json:"email_notifications"`
	GoalAlerts         bool      `json:"goal_alerts"`
	RecurringReminders bool      `json:"recurring_reminders"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		Currency:           u.Currency,
		Locale:             u.Locale,
		EmailNotifications: u.EmailNotifications,
		GoalAlerts:         u.GoalAlerts,
		RecurringReminders: u.RecurringReminders,
		CreatedAt:          u.CreatedAt,
	}
}
