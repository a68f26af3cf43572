package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"
	"taskhub/internal/errors"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500
)

type dispatchService struct {
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceRepository
	taskRepo   repository.TaskRepository
	pushSvc    service.PushService
	logger     *slog.Logger

	// now supplies the clock used for quiet-hours evaluation. Injectable
	// for tests; defaults to time.Now (server-local time).
	now func() time.Time
}

// NewDispatchService creates a new dispatch service instance
func NewDispatchService(
	userRepo repository.UserRepository,
	deviceRepo repository.DeviceRepository,
	taskRepo repository.TaskRepository,
	pushSvc service.PushService,
	logger *slog.Logger,
) usecase.DispatchUsecase {
	return &dispatchService{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		taskRepo:   taskRepo,
		pushSvc:    pushSvc,
		logger:     logger,
		now:        time.Now,
	}
}

// Deliver sends msg to every registered device of the user, honoring
// notification preferences and quiet hours. Policy skips are reported as a
// not-delivered result with a reason, never as an error.
func (s *dispatchService) Deliver(ctx context.Context, userID uuid.UUID, msg *usecase.PushMessage) (*usecase.DeliveryResult, error) {
	prefs, err := s.userRepo.FindPreferences(ctx, userID)
	if err != nil {
		// A since-deleted account has nobody to notify. Treat it the same
		// as disabled notifications so callers never retry the delivery.
		if errors.Is(err, repository.ErrUserNotFound) {
			return &usecase.DeliveryResult{Reason: usecase.SkipReasonUserNotFound}, nil
		}

		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	if !prefs.NotificationEnabled {
		return &usecase.DeliveryResult{Reason: usecase.SkipReasonNotificationsDisabled}, nil
	}
	if msg.Class == usecase.MessageClassReminder && !prefs.ReminderEnabled {
		return &usecase.DeliveryResult{Reason: usecase.SkipReasonRemindersDisabled}, nil
	}

	// Sync nudges are silent data messages; they bypass quiet hours so the
	// user's other devices stay consistent overnight.
	if msg.Class != usecase.MessageClassSync && prefs.InQuietHours(s.now()) {
		return &usecase.DeliveryResult{Reason: usecase.SkipReasonQuietHours}, nil
	}

	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find devices by user: %w", err)
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		if msg.ExcludeDeviceID != "" && device.DeviceID == msg.ExcludeDeviceID {
			continue
		}
		tokens = append(tokens, device.FCMToken)
	}

	if len(tokens) == 0 {
		return &usecase.DeliveryResult{Reason: usecase.SkipReasonNoDevices}, nil
	}

	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["class"] = string(msg.Class)

	result := &usecase.DeliveryResult{}

	for i := 0; i < len(tokens); i += firebaseBatchSize {
		end := i + firebaseBatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[i:end]

		successCount, failureCount, invalidTokens, err := s.pushSvc.SendBatchNotification(
			ctx,
			batch,
			msg.Title,
			msg.Body,
			data,
		)
		if err != nil {
			// Gateway-level failure for the whole batch. Count it and keep
			// going with the remaining batches.
			s.logger.Warn("push batch failed",
				slog.String("user_id", userID.String()),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", err),
			)
			result.FailureCount += len(batch)

			continue
		}

		result.SuccessCount += successCount
		result.FailureCount += failureCount

		// Remove tokens the gateway reports as permanently invalid. Removal
		// is by exact token match so a device registered mid-flight is never
		// evicted by mistake. Transient failures keep their registration.
		for _, token := range invalidTokens {
			if err := s.deviceRepo.DeleteDeviceByToken(ctx, userID, token); err != nil {
				s.logger.Warn("failed to prune invalid token",
					slog.String("user_id", userID.String()),
					slog.Any("error", err),
				)

				continue
			}
			result.PrunedTokens = append(result.PrunedTokens, token)
		}
	}

	result.Delivered = result.SuccessCount > 0

	s.logger.Info("push dispatched",
		slog.String("user_id", userID.String()),
		slog.String("class", string(msg.Class)),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
		slog.Int("pruned", len(result.PrunedTokens)),
	)

	return result, nil
}

// NotifyTask sends a manual push describing a single task. Callers may
// override the notification title and body; empty values fall back to a
// generic title and the task's own title.
func (s *dispatchService) NotifyTask(ctx context.Context, userID, taskID uuid.UUID, title, body string) (*usecase.DeliveryResult, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if title == "" {
		title = "任務通知"
	}
	if body == "" {
		body = task.Title
	}

	msg := &usecase.PushMessage{
		Class: usecase.MessageClassManual,
		Title: title,
		Body:  body,
		Data: map[string]string{
			"task_id": task.ID.String(),
			"action":  "notify",
			"entity":  "task",
		},
	}

	return s.Deliver(ctx, userID, msg)
}
