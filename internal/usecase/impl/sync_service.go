package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "taskhub/internal/delivery/context"
	"taskhub/internal/domain/entity"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"
	"taskhub/internal/errors"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
)

type syncService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewSyncService creates a new sync service instance
func NewSyncService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.SyncUsecase {
	return &syncService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Reconcile applies each item of the batch independently: one bad item
// never blocks the rest, and the incoming payload always wins over the
// stored record (last-write-wins, no timestamp comparison).
func (s *syncService) Reconcile(ctx context.Context, userID uuid.UUID, senderDeviceID string, items []usecase.SyncItem) (*usecase.SyncResult, error) {
	result := &usecase.SyncResult{
		Synced: make([]usecase.SyncedItem, 0, len(items)),
		Errors: make([]usecase.SyncError, 0),
	}
	syncedAt := time.Now().UTC()

	for i := range items {
		item := &items[i]

		synced, err := s.reconcileItem(ctx, userID, item)
		if err != nil {
			result.Errors = append(result.Errors, usecase.SyncError{
				LocalID: item.LocalID,
				Error:   err.Error(),
			})

			continue
		}

		result.Synced = append(result.Synced, *synced)
	}

	// Sync progress is recorded even under partial failure so clients do
	// not retry already-applied items forever.
	if err := s.userRepo.UpdateLastSyncTime(ctx, userID, syncedAt); err != nil {
		s.logger.Error("failed to update last sync time",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}

	s.publishSyncEvent(ctx, userID, senderDeviceID, result, syncedAt)

	return result, nil
}

// Status returns the user's last sync time alongside the server clock
func (s *syncService) Status(ctx context.Context, userID uuid.UUID) (*usecase.SyncStatus, error) {
	prefs, err := s.userRepo.FindPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	status := &usecase.SyncStatus{
		LastSyncTime: timeToEpochMillis(prefs.LastSyncTime),
		PendingCount: 0,
		ServerTime:   time.Now().UnixMilli(),
	}

	return status, nil
}

// reconcileItem applies a single mutation. A stale or foreign remote id
// falls through to the create path so record ownership never leaks.
func (s *syncService) reconcileItem(ctx context.Context, userID uuid.UUID, item *usecase.SyncItem) (*usecase.SyncedItem, error) {
	if err := validateCoordinates(item.Latitude, item.Longitude); err != nil {
		return nil, err
	}
	if err := validateReminderOffset(item.ReminderOffsetMinutes); err != nil {
		return nil, err
	}

	if item.RemoteID != "" {
		remoteID, err := uuid.Parse(item.RemoteID)
		if err != nil {
			return nil, fmt.Errorf("invalid remote id: %w", err)
		}

		task, err := s.taskRepo.FindTaskByID(ctx, userID, remoteID)
		if err == nil {
			s.applyItem(task, item)
			task.UpdatedAt = time.Now()

			if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
				return nil, fmt.Errorf("failed to update task: %w", err)
			}

			return &usecase.SyncedItem{
				LocalID:  item.LocalID,
				RemoteID: task.ID.String(),
				Status:   usecase.SyncStatusUpdated,
			}, nil
		}
		if !errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		// Unknown or foreign id: fall through and create a fresh record.
	}

	task := s.newTaskFromItem(userID, item)
	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &usecase.SyncedItem{
		LocalID:  item.LocalID,
		RemoteID: task.ID.String(),
		Status:   usecase.SyncStatusCreated,
	}, nil
}

func (s *syncService) applyItem(task *entity.Task, item *usecase.SyncItem) {
	task.Title = item.Title
	task.Priority = entity.NormalizePriority(item.Priority)
	task.Completed = item.Completed
	task.AllDay = item.AllDay
	task.StartTime = epochMillisToTime(item.StartTime)
	task.EndTime = epochMillisToTime(item.EndTime)
	task.Location = item.Location
	task.Latitude = item.Latitude
	task.Longitude = item.Longitude
	task.ReminderOffsetMinutes = item.ReminderOffsetMinutes
}

func (s *syncService) newTaskFromItem(userID uuid.UUID, item *usecase.SyncItem) *entity.Task {
	now := time.Now()
	task := &entity.Task{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.applyItem(task, item)

	return task
}

// publishSyncEvent nudges the user's other devices to refresh. Publishing
// is best-effort; a broker outage never fails the reconcile itself.
func (s *syncService) publishSyncEvent(ctx context.Context, userID uuid.UUID, senderDeviceID string, result *usecase.SyncResult, syncedAt time.Time) {
	if len(result.Synced) == 0 {
		return
	}

	taskIDs := make([]string, 0, len(result.Synced))
	for _, item := range result.Synced {
		taskIDs = append(taskIDs, item.RemoteID)
	}

	event := &service.SyncEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		UserID:       userID.String(),
		TaskIDs:      taskIDs,
		SenderDevice: senderDeviceID,
		SyncedAt:     syncedAt.Format(time.RFC3339),
	}

	if err := s.publisher.PublishSyncEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish sync event",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}
}
