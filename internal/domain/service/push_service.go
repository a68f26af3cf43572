package service

import (
	"context"
)

// PushService defines the interface for the push-notification gateway.
type PushService interface {
	// SendBatchNotification sends push notifications to multiple device tokens.
	// Returns success count, failure count, and the subset of tokens the
	// gateway classified as permanently invalid (unregistered or
	// malformed); transient failures are counted but not listed.
	SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
