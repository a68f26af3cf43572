// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // The user's primary contact email, used as the login identifier.
	Name      string    // The user's display name.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// UserCredential carries the stored login secret for a user. It is only
// ever handled by the authentication flow, never serialized outward.
type UserCredential struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
}

// UserPreferences holds per-user notification and sync settings.
type UserPreferences struct {
	UserID              uuid.UUID  `json:"user_id"`
	NotificationEnabled bool       `json:"notification_enabled"` // Master switch for all push delivery. Defaults to true.
	ReminderEnabled     bool       `json:"reminder_enabled"`     // Switch for reminder-class messages only. Defaults to true.
	QuietHoursStart     *int       `json:"quiet_hours_start,omitempty"` // Hour of day 0-23; both bounds must be set for the window to apply.
	QuietHoursEnd       *int       `json:"quiet_hours_end,omitempty"`   // Hour of day 0-23. Start > end means the window wraps midnight.
	LastSyncTime        *time.Time `json:"last_sync_time,omitempty"`    // Instant of the most recent reconcile, nil before the first sync.
	UpdatedAt           time.Time  `json:"updated_at"`
}

// InQuietHours reports whether the given instant falls inside the
// user's quiet-hours window. The window is inactive unless both bounds
// are present; a start hour greater than the end hour spans midnight.
func (p *UserPreferences) InQuietHours(now time.Time) bool {
	if p.QuietHoursStart == nil || p.QuietHoursEnd == nil {
		return false
	}

	start, end := *p.QuietHoursStart, *p.QuietHoursEnd
	hour := now.Hour()

	switch {
	case start == end:
		// Zero-length window never suppresses.
		return false
	case start < end:
		return hour >= start && hour < end
	default:
		return hour >= start || hour < end
	}
}
