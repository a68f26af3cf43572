package usecase

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// PreferencesInput defines the editable notification preferences.
type PreferencesInput struct {
	NotificationEnabled bool `json:"notification_enabled"`
	ReminderEnabled     bool `json:"reminder_enabled"`
	QuietHoursStart     *int `json:"quiet_hours_start"`
	QuietHoursEnd       *int `json:"quiet_hours_end"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetPreferences returns the user's notification preferences.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error)

	// UpdatePreferences replaces the user's notification preferences.
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input *PreferencesInput) (*entity.UserPreferences, error)
}
