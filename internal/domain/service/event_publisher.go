package service

import (
	"context"
)

// SyncEvent describes a completed reconcile batch. It is published so
// the worker can nudge the user's other devices to refresh their local
// state.
type SyncEvent struct {
	RequestID    string   `json:"request_id,omitempty"` // For distributed tracing.
	UserID       string   `json:"user_id"`
	TaskIDs      []string `json:"task_ids"`                 // Server IDs of the records the batch created or updated.
	SenderDevice string   `json:"sender_device,omitempty"` // Device ID of the client that synced; excluded from the nudge.
	SyncedAt     string   `json:"synced_at"`               // RFC3339 instant of the reconcile.
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishSyncEvent publishes a sync-completed event for async processing.
	PublishSyncEvent(ctx context.Context, event *SyncEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
