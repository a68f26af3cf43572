package impl

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	domainservice "taskhub/internal/domain/service"
	mockRepo "taskhub/internal/mocks/repository"
	mockService "taskhub/internal/mocks/service"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	taskRepo  *mockRepo.MockTaskRepository
	userRepo  *mockRepo.MockUserRepository
	publisher *mockService.MockEventPublisher
	service   usecase.SyncUsecase
}

func newSyncFixture(t *testing.T) *syncFixture {
	fx := &syncFixture{
		taskRepo:  mockRepo.NewMockTaskRepository(t),
		userRepo:  mockRepo.NewMockUserRepository(t),
		publisher: mockService.NewMockEventPublisher(t),
	}
	fx.service = NewSyncService(fx.taskRepo, fx.userRepo, fx.publisher, testLogger())

	return fx
}

func TestSyncService_Reconcile_CreatesOfflineItem(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	var createdID uuid.UUID
	fx.taskRepo.EXPECT().
		CreateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, task *entity.Task) {
			createdID = task.ID
			assert.Equal(t, userID, task.UserID)
			assert.Equal(t, "Water plants", task.Title)
			assert.False(t, task.ReminderSent)
		}).
		Return(nil)
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.publisher.EXPECT().
		PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).
		Run(func(_ context.Context, event *domainservice.SyncEvent) {
			assert.Equal(t, userID.String(), event.UserID)
			assert.Equal(t, "phone-1", event.SenderDevice)
			assert.Len(t, event.TaskIDs, 1)
		}).
		Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "phone-1", []usecase.SyncItem{
		{LocalID: "local-1", Title: "Water plants"},
	})
	require.NoError(t, err)
	require.Len(t, result.Synced, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "local-1", result.Synced[0].LocalID)
	assert.Equal(t, usecase.SyncStatusCreated, result.Synced[0].Status)
	assert.Equal(t, createdID.String(), result.Synced[0].RemoteID)
}

func TestSyncService_Reconcile_UpdatesKnownItem(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	remoteID := uuid.New()

	existing := &entity.Task{
		ID:           remoteID,
		UserID:       userID,
		Title:        "Old title",
		ReminderSent: true,
	}

	fx.taskRepo.EXPECT().FindTaskByID(ctx, userID, remoteID).Return(existing, nil)
	fx.taskRepo.EXPECT().
		UpdateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, task *entity.Task) {
			// Last-write-wins: the incoming payload replaces the stored
			// fields wholesale.
			assert.Equal(t, remoteID, task.ID)
			assert.Equal(t, "New title", task.Title)
			assert.True(t, task.Completed)
		}).
		Return(nil)
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.publisher.EXPECT().PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "", []usecase.SyncItem{
		{LocalID: "local-1", RemoteID: remoteID.String(), Title: "New title", Completed: true},
	})
	require.NoError(t, err)
	require.Len(t, result.Synced, 1)
	assert.Equal(t, usecase.SyncStatusUpdated, result.Synced[0].Status)
	assert.Equal(t, remoteID.String(), result.Synced[0].RemoteID)
}

func TestSyncService_Reconcile_ForeignIDCreatesFreshRecord(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	foreignID := uuid.New()

	// Scoped lookup misses for ids owned by another user, so ownership
	// never leaks across accounts.
	fx.taskRepo.EXPECT().FindTaskByID(ctx, userID, foreignID).Return(nil, repository.ErrTaskNotFound)
	fx.taskRepo.EXPECT().
		CreateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Run(func(_ context.Context, task *entity.Task) {
			assert.NotEqual(t, foreignID, task.ID)
			assert.Equal(t, userID, task.UserID)
		}).
		Return(nil)
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.publisher.EXPECT().PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "", []usecase.SyncItem{
		{LocalID: "local-1", RemoteID: foreignID.String(), Title: "Smuggled"},
	})
	require.NoError(t, err)
	require.Len(t, result.Synced, 1)
	assert.Equal(t, usecase.SyncStatusCreated, result.Synced[0].Status)
	assert.NotEqual(t, foreignID.String(), result.Synced[0].RemoteID)
}

func TestSyncService_Reconcile_BadItemDoesNotBlockBatch(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.taskRepo.EXPECT().
		CreateTask(ctx, mock.AnythingOfType("*entity.Task")).
		Return(nil).
		Once()
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.publisher.EXPECT().PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "", []usecase.SyncItem{
		{LocalID: "bad-coords", Title: "North of north", Latitude: float64Ptr(95)},
		{LocalID: "bad-id", RemoteID: "not-a-uuid", Title: "Mangled"},
		{LocalID: "good", Title: "Fine"},
	})
	require.NoError(t, err)
	require.Len(t, result.Synced, 1)
	assert.Equal(t, "good", result.Synced[0].LocalID)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "bad-coords", result.Errors[0].LocalID)
	assert.Equal(t, "bad-id", result.Errors[1].LocalID)
}

func TestSyncService_Reconcile_NegativeReminderOffsetRejected(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	// No CreateTask and no publish: the only item is invalid.
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "phone-1", []usecase.SyncItem{
		{LocalID: "bad-offset", Title: "Dentist", ReminderOffsetMinutes: intPtr(-30)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Synced)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad-offset", result.Errors[0].LocalID)
	assert.Equal(t, domainerrors.ErrInvalidReminderOffset.Error(), result.Errors[0].Error)
}

func TestSyncService_Reconcile_EmptyBatchStillAdvancesSyncTime(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	// No publish: nothing was synced, so there is nothing to nudge other
	// devices about.
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Synced)
	assert.Empty(t, result.Errors)
}

func TestSyncService_Reconcile_SyncTimeFailureIsNotFatal(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.taskRepo.EXPECT().CreateTask(ctx, mock.AnythingOfType("*entity.Task")).Return(nil)
	fx.userRepo.EXPECT().
		UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).
		Return(errors.New("deadlock detected"))
	fx.publisher.EXPECT().PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).Return(nil)

	result, err := fx.service.Reconcile(ctx, userID, "", []usecase.SyncItem{
		{LocalID: "local-1", Title: "Applied anyway"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Synced, 1)
}

func TestSyncService_Reconcile_PublishFailureIsNotFatal(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.taskRepo.EXPECT().CreateTask(ctx, mock.AnythingOfType("*entity.Task")).Return(nil)
	fx.userRepo.EXPECT().UpdateLastSyncTime(ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.publisher.EXPECT().
		PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).
		Return(errors.New("broker unavailable"))

	result, err := fx.service.Reconcile(ctx, userID, "", []usecase.SyncItem{
		{LocalID: "local-1", Title: "Synced"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Synced, 1)
}

func TestSyncService_Status(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	lastSync := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(&entity.UserPreferences{
		UserID:       userID,
		LastSyncTime: &lastSync,
	}, nil)

	status, err := fx.service.Status(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, status.LastSyncTime)
	assert.Equal(t, lastSync.UnixMilli(), *status.LastSyncTime)
	assert.Equal(t, 0, status.PendingCount)
	assert.GreaterOrEqual(t, status.ServerTime, lastSync.UnixMilli())
}

func TestSyncService_Status_NeverSynced(t *testing.T) {
	fx := newSyncFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(&entity.UserPreferences{UserID: userID}, nil)

	status, err := fx.service.Status(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, status.LastSyncTime)
	assert.Equal(t, 0, status.PendingCount)
}
