package impl

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	mockRepo "taskhub/internal/mocks/repository"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateTask_Success(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	startMillis := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC).UnixMilli()

	mockTaskRepo.EXPECT().
		CreateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Return(nil)

	task, err := service.CreateTask(ctx, userID, &usecase.TaskInput{
		Title:                 "Dentist appointment",
		Priority:              "high",
		StartTime:             int64Ptr(startMillis),
		Location:              "Main St clinic",
		Latitude:              float64Ptr(25.03),
		Longitude:             float64Ptr(121.56),
		ReminderOffsetMinutes: intPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, "Dentist appointment", task.Title)
	assert.Equal(t, entity.PriorityHigh, task.Priority)
	assert.False(t, task.ReminderSent)
	require.NotNil(t, task.StartTime)
	assert.Equal(t, startMillis, task.StartTime.UnixMilli())
}

func TestTaskService_CreateTask_InvalidCoordinates(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()

	task, err := service.CreateTask(ctx, userID, &usecase.TaskInput{
		Title:    "Off the map",
		Latitude: float64Ptr(90.5),
	})
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidLatitude)

	task, err = service.CreateTask(ctx, userID, &usecase.TaskInput{
		Title:     "Off the map",
		Longitude: float64Ptr(-180.1),
	})
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidLongitude)
}

func TestTaskService_CreateTask_NegativeReminderOffsetRejected(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()

	task, err := service.CreateTask(ctx, userID, &usecase.TaskInput{
		Title:                 "Dentist",
		ReminderOffsetMinutes: intPtr(-30),
	})
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidReminderOffset)
}

func TestTaskService_CreateTask_BoundaryCoordinatesAccepted(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockTaskRepo.EXPECT().
		CreateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Return(nil)

	task, err := service.CreateTask(ctx, userID, &usecase.TaskInput{
		Title:     "Poles and antimeridian",
		Latitude:  float64Ptr(-90),
		Longitude: float64Ptr(180),
	})
	require.NoError(t, err)
	assert.NotNil(t, task)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockTaskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(nil, repository.ErrTaskNotFound)

	task, err := service.GetTask(ctx, userID, taskID)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_ListTasks(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Task{
		{ID: uuid.New(), UserID: userID, Title: "one"},
		{ID: uuid.New(), UserID: userID, Title: "two"},
	}

	mockTaskRepo.EXPECT().FindTasksByUser(ctx, userID).Return(expected, nil)

	tasks, err := service.ListTasks(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, tasks)
}

func TestTaskService_UpdateTask_PreservesReminderSent(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	existing := &entity.Task{
		ID:           taskID,
		UserID:       userID,
		Title:        "Before",
		ReminderSent: true,
	}

	mockTaskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(existing, nil)
	mockTaskRepo.EXPECT().
		UpdateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, task *entity.Task) {
			assert.Equal(t, "After", task.Title)
			// Editing a task never re-arms a fired reminder.
			assert.True(t, task.ReminderSent)
		}).
		Return(nil)

	task, err := service.UpdateTask(ctx, userID, taskID, &usecase.TaskInput{Title: "After"})
	require.NoError(t, err)
	assert.True(t, task.ReminderSent)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockTaskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(nil, repository.ErrTaskNotFound)

	task, err := service.UpdateTask(ctx, userID, taskID, &usecase.TaskInput{Title: "whatever"})
	assert.Nil(t, task)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockTaskRepo.EXPECT().DeleteTask(ctx, userID, taskID).Return(repository.ErrTaskNotFound)

	err := service.DeleteTask(ctx, userID, taskID)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestTaskService_DeleteTask_Success(t *testing.T) {
	mockTaskRepo := mockRepo.NewMockTaskRepository(t)
	service := NewTaskService(mockTaskRepo)

	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	mockTaskRepo.EXPECT().DeleteTask(ctx, userID, taskID).Return(nil)

	err := service.DeleteTask(ctx, userID, taskID)
	require.NoError(t, err)
}
