package impl

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/entity"
	"taskhub/internal/domain/repository"
	mockRepo "taskhub/internal/mocks/repository"
	mockUsecase "taskhub/internal/mocks/usecase"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reminderFixture struct {
	taskRepo   *mockRepo.MockTaskRepository
	dispatcher *mockUsecase.MockDispatchUsecase
	service    usecase.ReminderUsecase
}

func newReminderFixture(t *testing.T) *reminderFixture {
	fx := &reminderFixture{
		taskRepo:   mockRepo.NewMockTaskRepository(t),
		dispatcher: mockUsecase.NewMockDispatchUsecase(t),
	}
	fx.service = NewReminderService(fx.taskRepo, fx.dispatcher, testLogger())

	return fx
}

// reminderTask builds a task whose reminder fires at the given instant.
func reminderTask(userID uuid.UUID, title string, fireAt time.Time) *entity.Task {
	start := fireAt.Add(30 * time.Minute)

	return &entity.Task{
		ID:                    uuid.New(),
		UserID:                userID,
		Title:                 title,
		StartTime:             &start,
		ReminderOffsetMinutes: intPtr(30),
	}
}

func TestReminderService_RunDue_FiresDueReminder(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	// Start in one hour with a 60-minute offset: the reminder is due on
	// exactly this tick.
	start := now.Add(time.Hour)
	task := &entity.Task{
		ID:                    uuid.New(),
		UserID:                userID,
		Title:                 "Pay rent",
		StartTime:             &start,
		ReminderOffsetMinutes: intPtr(60),
	}

	fx.taskRepo.EXPECT().FindReminderCandidates(ctx, now).Return([]*entity.Task{task}, nil)
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		Run(func(_ context.Context, _ uuid.UUID, msg *usecase.PushMessage) {
			assert.Equal(t, usecase.MessageClassReminder, msg.Class)
			assert.Equal(t, "任務提醒", msg.Title)
			assert.Equal(t, "Pay rent", msg.Body)
			assert.Equal(t, task.ID.String(), msg.Data["task_id"])
		}).
		Return(&usecase.DeliveryResult{Delivered: true, SuccessCount: 1}, nil)
	fx.taskRepo.EXPECT().MarkReminderSent(ctx, userID, task.ID).Return(nil)

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Candidates)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
}

func TestReminderService_RunDue_WindowBoundaries(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	pollInterval := time.Minute

	dueNow := reminderTask(userID, "due at the upper bound", now)
	atWindowStart := reminderTask(userID, "exactly one interval ago", now.Add(-pollInterval))
	future := reminderTask(userID, "not due yet", now.Add(time.Second))

	fx.taskRepo.EXPECT().
		FindReminderCandidates(ctx, now).
		Return([]*entity.Task{dueNow, atWindowStart, future}, nil)
	// Only the task at the inclusive upper bound fires: the window is open
	// at its start and closed at now.
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		Run(func(_ context.Context, _ uuid.UUID, msg *usecase.PushMessage) {
			assert.Equal(t, dueNow.ID.String(), msg.Data["task_id"])
		}).
		Return(&usecase.DeliveryResult{Delivered: true, SuccessCount: 1}, nil).
		Once()
	fx.taskRepo.EXPECT().MarkReminderSent(ctx, userID, dueNow.ID).Return(nil)

	stats, err := fx.service.RunDue(ctx, now, pollInterval)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Candidates)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 1, stats.Sent)
}

func TestReminderService_RunDue_NoReminderConfigured(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	start := now
	tasks := []*entity.Task{
		{ID: uuid.New(), UserID: uuid.New(), Title: "no offset", StartTime: &start},
		{ID: uuid.New(), UserID: uuid.New(), Title: "no start", ReminderOffsetMinutes: intPtr(10)},
	}

	fx.taskRepo.EXPECT().FindReminderCandidates(ctx, now).Return(tasks, nil)

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 0, stats.Due)
}

func TestReminderService_RunDue_PolicySkipLeavesPending(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	task := reminderTask(userID, "late night task", now)

	fx.taskRepo.EXPECT().FindReminderCandidates(ctx, now).Return([]*entity.Task{task}, nil)
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		Return(&usecase.DeliveryResult{Reason: usecase.SkipReasonQuietHours}, nil)
	// No MarkReminderSent: the task stays eligible for the next pass
	// inside the window.

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 1, stats.Skipped)
}

func TestReminderService_RunDue_AllDevicesFailedCountsFailed(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	task := reminderTask(userID, "flaky gateway", now)

	fx.taskRepo.EXPECT().FindReminderCandidates(ctx, now).Return([]*entity.Task{task}, nil)
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		Return(&usecase.DeliveryResult{FailureCount: 2}, nil)

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, stats.Failed)
}

func TestReminderService_RunDue_DispatchErrorContinues(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	failing := reminderTask(userID, "first", now.Add(-time.Second))
	succeeding := reminderTask(userID, "second", now)

	fx.taskRepo.EXPECT().
		FindReminderCandidates(ctx, now).
		Return([]*entity.Task{failing, succeeding}, nil)
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, msg *usecase.PushMessage) (*usecase.DeliveryResult, error) {
			if msg.Data["task_id"] == failing.ID.String() {
				return nil, errors.New("preferences lookup failed")
			}

			return &usecase.DeliveryResult{Delivered: true, SuccessCount: 1}, nil
		})
	fx.taskRepo.EXPECT().MarkReminderSent(ctx, userID, succeeding.ID).Return(nil)

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
}

func TestReminderService_RunDue_AlreadySentTolerated(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	task := reminderTask(userID, "raced by another pass", now)

	fx.taskRepo.EXPECT().FindReminderCandidates(ctx, now).Return([]*entity.Task{task}, nil)
	fx.dispatcher.EXPECT().
		Deliver(ctx, userID, mock.AnythingOfType("*usecase.PushMessage")).
		Return(&usecase.DeliveryResult{Delivered: true, SuccessCount: 1}, nil)
	fx.taskRepo.EXPECT().
		MarkReminderSent(ctx, userID, task.ID).
		Return(repository.ErrReminderAlreadySent)

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 0, stats.Failed)
}

func TestReminderService_RunDue_CandidateScanError(t *testing.T) {
	fx := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now()

	fx.taskRepo.EXPECT().
		FindReminderCandidates(ctx, now).
		Return(nil, errors.New("connection refused"))

	stats, err := fx.service.RunDue(ctx, now, time.Minute)
	assert.Nil(t, stats)
	assert.Error(t, err)
}
