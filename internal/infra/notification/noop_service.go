package notification

import (
	"context"
	"log/slog"

	"taskhub/internal/domain/service"
)

// noopService is used when no push gateway is configured. Every send is
// counted as a failure so reminders stay pending instead of being
// silently marked sent.
type noopService struct {
	logger *slog.Logger
}

// NewNoopService creates a push service that delivers nothing.
func NewNoopService(logger *slog.Logger) service.PushService {
	return &noopService{logger: logger}
}

func (s *noopService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	s.logger.Debug("[NoopPush] push gateway not configured, dropping batch",
		slog.Int("token_count", len(tokens)),
	)

	return 0, len(tokens), nil, nil
}
