package usecase

import (
	"context"

	"github.com/google/uuid"
)

// MessageClass distinguishes the kinds of pushes the dispatcher delivers.
// Preference checks differ per class: reminders additionally require the
// reminder toggle, while sync nudges bypass quiet hours.
type MessageClass string

const (
	// MessageClassReminder is a scheduled task reminder.
	MessageClassReminder MessageClass = "reminder"
	// MessageClassManual is an operator or test triggered push.
	MessageClassManual MessageClass = "manual"
	// MessageClassSync is a silent cross-device refresh nudge.
	MessageClassSync MessageClass = "sync"
)

// PushMessage is a delivery request for one user across all their devices.
type PushMessage struct {
	Class MessageClass
	Title string
	Body  string
	Data  map[string]string

	// ExcludeDeviceID skips the named client device, so the device that
	// produced an event does not get notified about its own action.
	ExcludeDeviceID string
}

// Skip reasons reported in DeliveryResult when no push was attempted.
const (
	SkipReasonUserNotFound          = "user_not_found"
	SkipReasonNotificationsDisabled = "notifications_disabled"
	SkipReasonRemindersDisabled     = "reminders_disabled"
	SkipReasonQuietHours            = "quiet_hours"
	SkipReasonNoDevices             = "no_devices"
)

// DeliveryResult reports the outcome of a dispatch attempt.
type DeliveryResult struct {
	// Delivered is true when at least one device accepted the push.
	Delivered bool

	// Reason names why delivery was skipped; empty when a send was attempted.
	Reason string

	SuccessCount int
	FailureCount int

	// PrunedTokens lists push tokens removed because the gateway reported
	// them permanently invalid.
	PrunedTokens []string
}

// DispatchUsecase fans a push message out to every registered device of a
// user, honoring notification preferences and quiet hours.
type DispatchUsecase interface {
	// Deliver sends msg to all of the user's devices. A nil error with
	// Delivered=false means the message was skipped by policy, not that
	// delivery failed.
	Deliver(ctx context.Context, userID uuid.UUID, msg *PushMessage) (*DeliveryResult, error)

	// NotifyTask sends a manual push describing a single task. Used by the
	// config-gated test route. Empty title or body falls back to a default
	// built from the task itself.
	NotifyTask(ctx context.Context, userID, taskID uuid.UUID, title, body string) (*DeliveryResult, error)
}
