package usecase

import (
	"context"

	"github.com/google/uuid"
)

// SyncItem is one client-originated task mutation inside a reconcile batch.
// Times arrive as epoch milliseconds in UTC, mirroring the mobile clients.
type SyncItem struct {
	// LocalID is the client's correlation id. It is echoed back untouched
	// and never persisted.
	LocalID string `json:"local_id"`

	// RemoteID is the server id the client believes this record has.
	// Empty for records created offline.
	RemoteID string `json:"remote_id,omitempty"`

	Title                 string   `json:"title"`
	Priority              string   `json:"priority"`
	Completed             bool     `json:"completed"`
	AllDay                bool     `json:"all_day"`
	StartTime             *int64   `json:"start_time"`
	EndTime               *int64   `json:"end_time"`
	Location              string   `json:"location"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	ReminderOffsetMinutes *int     `json:"reminder_offset_minutes"`
}

// Item statuses reported back to the client after a reconcile.
const (
	SyncStatusCreated = "created"
	SyncStatusUpdated = "updated"
)

// SyncedItem maps a client correlation id to its authoritative server id.
type SyncedItem struct {
	LocalID  string `json:"local_id"`
	RemoteID string `json:"remote_id"`
	Status   string `json:"status"`
}

// SyncError reports an item-level failure. The rest of the batch is
// unaffected by it.
type SyncError struct {
	LocalID string `json:"local_id"`
	Error   string `json:"error"`
}

// SyncResult is the outcome of one reconcile batch.
type SyncResult struct {
	Synced []SyncedItem `json:"synced"`
	Errors []SyncError  `json:"errors"`
}

// SyncStatus reports a user's sync progress.
type SyncStatus struct {
	// LastSyncTime is epoch milliseconds of the most recent reconcile,
	// nil when the user has never synced.
	LastSyncTime *int64 `json:"last_sync_time"`

	// PendingCount is always zero: no server-side pending queue is kept.
	PendingCount int `json:"pending_count"`

	// ServerTime is the current server instant in epoch milliseconds,
	// letting clients measure clock skew.
	ServerTime int64 `json:"server_time"`
}

// SyncUsecase applies offline mutation batches and reports sync progress.
type SyncUsecase interface {
	// Reconcile applies each item independently under last-write-wins and
	// reports per-item outcomes. senderDeviceID names the client device
	// submitting the batch so its own sync nudge can exclude it; it may be
	// empty.
	Reconcile(ctx context.Context, userID uuid.UUID, senderDeviceID string, items []SyncItem) (*SyncResult, error)

	// Status returns the user's last sync time alongside the server clock.
	Status(ctx context.Context, userID uuid.UUID) (*SyncStatus, error)
}
