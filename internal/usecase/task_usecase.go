// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// TaskInput defines the data required to create or update a task.
type TaskInput struct {
	Title                 string   `json:"title"`
	Priority              string   `json:"priority"`
	Completed             bool     `json:"completed"`
	AllDay                bool     `json:"all_day"`
	StartTime             *int64   `json:"start_time"` // Epoch milliseconds, UTC.
	EndTime               *int64   `json:"end_time"`
	Location              string   `json:"location"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	ReminderOffsetMinutes *int     `json:"reminder_offset_minutes"`
}

// TaskUsecase defines the interface for task management use cases
type TaskUsecase interface {
	// CreateTask creates a new task owned by the given user
	CreateTask(ctx context.Context, userID uuid.UUID, input *TaskInput) (*entity.Task, error)

	// GetTask retrieves a single task, scoped to the owner
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error)

	// ListTasks retrieves all tasks for a user
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*entity.Task, error)

	// UpdateTask replaces the mutable fields of an existing task
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input *TaskInput) (*entity.Task, error)

	// DeleteTask removes a task, scoped to the owner
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
