// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the repository.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

// CreateTask persists a new task for a user.
func (repo *taskRepository) CreateTask(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrTaskCreationFailed.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrTaskCreationFailed.WrapMessage("missing required task information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	// Update the entity with generated values
	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// FindTaskByID retrieves a task by its ID, scoped to the owning user.
// A task owned by another user is reported as not found.
func (repo *taskRepository) FindTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by ID")
	}

	return toTaskDomain(&taskM), nil
}

// FindTasksByUser retrieves all tasks of a user sorted by start time
// ascending, breaking ties by ID descending.
func (repo *taskRepository) FindTasksByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC NULLS LAST, id DESC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tasks by user")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// UpdateTask overwrites the mutable fields of an existing task, scoped
// to the owning user. ReminderSent is deliberately excluded; it only
// moves through MarkReminderSent.
func (repo *taskRepository) UpdateTask(ctx context.Context, task *entity.Task) error {
	values := map[string]any{
		"title":                   task.Title,
		"priority":                task.Priority.String(),
		"completed":               task.Completed,
		"all_day":                 task.AllDay,
		"start_time":              task.StartTime,
		"end_time":                task.EndTime,
		"location":                task.Location,
		"latitude":                task.Latitude,
		"longitude":               task.Longitude,
		"reminder_offset_minutes": task.ReminderOffsetMinutes,
		"updated_at":              time.Now(),
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Updates(values)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task, scoped to the owning user.
func (repo *taskRepository) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&model.TaskModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete task")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// FindReminderCandidates retrieves tasks eligible for a reminder scan:
// reminder configured, start time still in the future, not completed,
// reminder not yet sent.
func (repo *taskRepository) FindReminderCandidates(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	var taskModels []*model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("reminder_offset_minutes IS NOT NULL").
		Where("start_time > ?", now).
		Where("completed = ?", false).
		Where("reminder_sent = ?", false).
		Order("start_time ASC").
		Find(&taskModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find reminder candidates")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for _, taskM := range taskModels {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// MarkReminderSent flips reminder_sent with a single conditional
// UPDATE. The reminder_sent = false predicate makes the write atomic
// with respect to a concurrent scheduler tick or client update, so a
// task is never dispatched twice by racing writers.
func (repo *taskRepository) MarkReminderSent(ctx context.Context, userID, taskID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND user_id = ? AND reminder_sent = ?", taskID, userID, false).
		Updates(map[string]any{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark reminder sent")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReminderAlreadySent
	}

	return nil
}

// --- Mapper Functions ---

// toTaskDomain converts a GORM TaskModel to a domain Task entity.
func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:                    data.ID,
		UserID:                data.UserID,
		Title:                 data.Title,
		Priority:              entity.Priority(data.Priority),
		Completed:             data.Completed,
		AllDay:                data.AllDay,
		StartTime:             data.StartTime,
		EndTime:               data.EndTime,
		Location:              data.Location,
		Latitude:              data.Latitude,
		Longitude:             data.Longitude,
		ReminderOffsetMinutes: data.ReminderOffsetMinutes,
		ReminderSent:          data.ReminderSent,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

// fromTaskDomain converts a domain Task entity to a GORM TaskModel.
func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:                    data.ID,
		UserID:                data.UserID,
		Title:                 data.Title,
		Priority:              data.Priority.String(),
		Completed:             data.Completed,
		AllDay:                data.AllDay,
		StartTime:             data.StartTime,
		EndTime:               data.EndTime,
		Location:              data.Location,
		Latitude:              data.Latitude,
		Longitude:             data.Longitude,
		ReminderOffsetMinutes: data.ReminderOffsetMinutes,
		ReminderSent:          data.ReminderSent,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}
