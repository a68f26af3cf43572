// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user and preference database operations.
type UserRepository interface {
	// CreateUser persists a new user together with its credential and
	// default preferences.
	CreateUser(ctx context.Context, user *entity.User, passwordHash string) error

	// FindUserByID retrieves a user by its unique ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindCredentialByEmail retrieves the stored credential for a login email.
	FindCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error)

	// FindPreferences retrieves the notification and sync preferences of a user.
	FindPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error)

	// UpdatePreferences overwrites the notification preferences of a user.
	UpdatePreferences(ctx context.Context, prefs *entity.UserPreferences) error

	// UpdateLastSyncTime records the instant of the most recent reconcile.
	UpdateLastSyncTime(ctx context.Context, userID uuid.UUID, syncedAt time.Time) error
}
