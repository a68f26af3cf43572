// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for task persistence.
var (
	// ErrTaskNotFound is returned when a task does not exist or is not
	// owned by the requesting user. The two cases are deliberately
	// indistinguishable so ownership of foreign records never leaks.
	ErrTaskNotFound = errors.New("task not found")
	// ErrReminderAlreadySent is returned when the conditional
	// reminder-sent update matched no row, meaning another writer
	// already flipped the flag.
	ErrReminderAlreadySent = errors.New("reminder already sent")
)

// TaskRepository defines the interface for task-related database operations.
// Every operation is scoped by the owning user ID; no record is ever
// addressed by task ID alone.
type TaskRepository interface {
	// CreateTask persists a new task for a user.
	CreateTask(ctx context.Context, task *entity.Task) error

	// FindTaskByID retrieves a task by its ID, scoped to the owning user.
	FindTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error)

	// FindTasksByUser retrieves all tasks of a user, sorted by start
	// time ascending with ID descending as the tie-breaker.
	FindTasksByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Task, error)

	// UpdateTask overwrites the mutable fields of an existing task,
	// scoped to the owning user.
	UpdateTask(ctx context.Context, task *entity.Task) error

	// DeleteTask removes a task, scoped to the owning user.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// FindReminderCandidates retrieves tasks eligible for a reminder
	// dispatch: reminder offset configured, start time strictly after
	// now, not completed, reminder not yet sent.
	FindReminderCandidates(ctx context.Context, now time.Time) ([]*entity.Task, error)

	// MarkReminderSent flips reminder_sent to true with a conditional
	// write (only while it is still false). Returns
	// ErrReminderAlreadySent when another writer won the race.
	MarkReminderSent(ctx context.Context, userID, taskID uuid.UUID) error
}
