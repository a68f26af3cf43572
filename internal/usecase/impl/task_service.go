package impl

import (
	"context"
	"fmt"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/errors"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
)

type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service instance
func NewTaskService(taskRepo repository.TaskRepository) usecase.TaskUsecase {
	return &taskService{
		taskRepo: taskRepo,
	}
}

// CreateTask creates a new task owned by the given user
func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, input *usecase.TaskInput) (*entity.Task, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	if err := validateReminderOffset(input.ReminderOffsetMinutes); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &entity.Task{
		ID:                    uuid.New(),
		UserID:                userID,
		Title:                 input.Title,
		Priority:              entity.NormalizePriority(input.Priority),
		Completed:             input.Completed,
		AllDay:                input.AllDay,
		StartTime:             epochMillisToTime(input.StartTime),
		EndTime:               epochMillisToTime(input.EndTime),
		Location:              input.Location,
		Latitude:              input.Latitude,
		Longitude:             input.Longitude,
		ReminderOffsetMinutes: input.ReminderOffsetMinutes,
		ReminderSent:          false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask retrieves a single task, scoped to the owner
func (s *taskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks retrieves all tasks for a user
func (s *taskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*entity.Task, error) {
	tasks, err := s.taskRepo.FindTasksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by user: %w", err)
	}

	return tasks, nil
}

// UpdateTask replaces the mutable fields of an existing task
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input *usecase.TaskInput) (*entity.Task, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	if err := validateReminderOffset(input.ReminderOffsetMinutes); err != nil {
		return nil, err
	}

	// Ownership check and current state in one read.
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = input.Title
	task.Priority = entity.NormalizePriority(input.Priority)
	task.Completed = input.Completed
	task.AllDay = input.AllDay
	task.StartTime = epochMillisToTime(input.StartTime)
	task.EndTime = epochMillisToTime(input.EndTime)
	task.Location = input.Location
	task.Latitude = input.Latitude
	task.Longitude = input.Longitude
	task.ReminderOffsetMinutes = input.ReminderOffsetMinutes
	task.UpdatedAt = time.Now()

	// ReminderSent is deliberately not touched: the update path never
	// reverts a fired reminder.
	if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task, scoped to the owner
func (s *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.DeleteTask(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// validateCoordinates checks latitude and longitude independently against
// their valid ranges. Out-of-range values are rejected, never clamped.
func validateCoordinates(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return domainerrors.ErrInvalidLatitude
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return domainerrors.ErrInvalidLongitude
	}

	return nil
}

// validateReminderOffset rejects negative reminder offsets. The HTTP layer
// enforces this through request validation; sync payloads arrive unchecked.
func validateReminderOffset(offset *int) error {
	if offset != nil && *offset < 0 {
		return domainerrors.ErrInvalidReminderOffset
	}

	return nil
}

// epochMillisToTime converts an optional epoch-millisecond instant to UTC.
func epochMillisToTime(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := time.UnixMilli(*millis).UTC()

	return &t
}

// timeToEpochMillis is the inverse of epochMillisToTime.
func timeToEpochMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	millis := t.UnixMilli()

	return &millis
}
