package impl

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	mockRepo "taskhub/internal/mocks/repository"
	mockService "taskhub/internal/mocks/service"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	userRepo   *mockRepo.MockUserRepository
	deviceRepo *mockRepo.MockDeviceRepository
	taskRepo   *mockRepo.MockTaskRepository
	pushSvc    *mockService.MockPushService
	service    *dispatchService
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	fx := &dispatchFixture{
		userRepo:   mockRepo.NewMockUserRepository(t),
		deviceRepo: mockRepo.NewMockDeviceRepository(t),
		taskRepo:   mockRepo.NewMockTaskRepository(t),
		pushSvc:    mockService.NewMockPushService(t),
	}
	fx.service = NewDispatchService(fx.userRepo, fx.deviceRepo, fx.taskRepo, fx.pushSvc, testLogger()).(*dispatchService)

	return fx
}

// atHour pins the dispatcher's clock to a fixed hour of day.
func (f *dispatchFixture) atHour(hour int) {
	f.service.now = func() time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}
}

func testDevice(userID uuid.UUID, token, deviceID string) *entity.UserDevice {
	return &entity.UserDevice{
		ID:       uuid.New(),
		UserID:   userID,
		FCMToken: token,
		DeviceID: deviceID,
		Platform: "ios",
	}
}

func TestDispatchService_Deliver_Success(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
		testDevice(userID, "token-b", "dev-b"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a", "token-b"}, "hello", "world", map[string]string{"class": "manual"}).
		Return(2, 0, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{
		Class: usecase.MessageClassManual,
		Title: "hello",
		Body:  "world",
	})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.Empty(t, result.Reason)
}

func TestDispatchService_Deliver_UnknownUserIsPolicySkip(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(nil, repository.ErrUserNotFound)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassSync})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonUserNotFound, result.Reason)
}

func TestDispatchService_Deliver_NotificationsDisabled(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	prefs := enabledPrefs(userID)
	prefs.NotificationEnabled = false
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassReminder})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonNotificationsDisabled, result.Reason)
}

func TestDispatchService_Deliver_RemindersDisabled(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	prefs := enabledPrefs(userID)
	prefs.ReminderEnabled = false
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassReminder})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonRemindersDisabled, result.Reason)
}

func TestDispatchService_Deliver_RemindersDisabledDoesNotBlockManual(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	prefs := enabledPrefs(userID)
	prefs.ReminderEnabled = false
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "hi", "", map[string]string{"class": "manual"}).
		Return(1, 0, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{
		Class: usecase.MessageClassManual,
		Title: "hi",
	})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
}

func TestDispatchService_Deliver_QuietHoursSuppresses(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	// 22:00-06:00 window wraps midnight; 23:30 is inside it.
	prefs := enabledPrefs(userID)
	prefs.QuietHoursStart = intPtr(22)
	prefs.QuietHoursEnd = intPtr(6)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)
	fx.atHour(23)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassReminder})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonQuietHours, result.Reason)
}

func TestDispatchService_Deliver_OutsideQuietHoursProceeds(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	prefs := enabledPrefs(userID)
	prefs.QuietHoursStart = intPtr(22)
	prefs.QuietHoursEnd = intPtr(6)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)
	fx.atHour(10)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "", "", map[string]string{"class": "reminder"}).
		Return(1, 0, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassReminder})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
}

func TestDispatchService_Deliver_SyncBypassesQuietHours(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	prefs := enabledPrefs(userID)
	prefs.QuietHoursStart = intPtr(22)
	prefs.QuietHoursEnd = intPtr(6)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(prefs, nil)
	fx.atHour(23)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "", "", map[string]string{"class": "sync"}).
		Return(1, 0, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassSync})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
}

func TestDispatchService_Deliver_NoDevices(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{}, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassManual})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonNoDevices, result.Reason)
}

func TestDispatchService_Deliver_ExcludesSenderDevice(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-sender", "dev-sender"),
		testDevice(userID, "token-other", "dev-other"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-other"}, "", "", map[string]string{"class": "sync"}).
		Return(1, 0, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{
		Class:           usecase.MessageClassSync,
		ExcludeDeviceID: "dev-sender",
	})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestDispatchService_Deliver_ExcludingOnlyDeviceSkips(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-sender", "dev-sender"),
	}, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{
		Class:           usecase.MessageClassSync,
		ExcludeDeviceID: "dev-sender",
	})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, usecase.SkipReasonNoDevices, result.Reason)
}

func TestDispatchService_Deliver_PrunesInvalidTokens(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-good", "dev-a"),
		testDevice(userID, "token-stale", "dev-b"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-good", "token-stale"}, "", "", map[string]string{"class": "manual"}).
		Return(1, 1, []string{"token-stale"}, nil)
	fx.deviceRepo.EXPECT().DeleteDeviceByToken(ctx, userID, "token-stale").Return(nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassManual})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, []string{"token-stale"}, result.PrunedTokens)
}

func TestDispatchService_Deliver_TransientFailureKeepsRegistration(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
		testDevice(userID, "token-b", "dev-b"),
	}, nil)
	// One transient failure: counted but no token is listed, so nothing
	// gets pruned.
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a", "token-b"}, "", "", map[string]string{"class": "manual"}).
		Return(1, 1, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassManual})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Empty(t, result.PrunedTokens)
}

func TestDispatchService_Deliver_AllDevicesFailed(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
		testDevice(userID, "token-b", "dev-b"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a", "token-b"}, "", "", map[string]string{"class": "manual"}).
		Return(0, 2, nil, nil)

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassManual})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Empty(t, result.Reason)
	assert.Equal(t, 2, result.FailureCount)
}

func TestDispatchService_Deliver_GatewayErrorCountsBatch(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "", "", map[string]string{"class": "manual"}).
		Return(0, 0, nil, errors.New("gateway unavailable"))

	result, err := fx.service.Deliver(ctx, userID, &usecase.PushMessage{Class: usecase.MessageClassManual})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Equal(t, 1, result.FailureCount)
}

func TestDispatchService_NotifyTask_Success(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	task := &entity.Task{ID: taskID, UserID: userID, Title: "Buy milk"}
	fx.taskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(task, nil)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "任務通知", "Buy milk", map[string]string{
			"task_id": taskID.String(),
			"action":  "notify",
			"entity":  "task",
			"class":   "manual",
		}).
		Return(1, 0, nil, nil)

	result, err := fx.service.NotifyTask(ctx, userID, taskID, "", "")
	require.NoError(t, err)
	assert.True(t, result.Delivered)
}

func TestDispatchService_NotifyTask_TitleBodyOverrides(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	task := &entity.Task{ID: taskID, UserID: userID, Title: "Buy milk"}
	fx.taskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(task, nil)
	fx.userRepo.EXPECT().FindPreferences(ctx, userID).Return(enabledPrefs(userID), nil)
	fx.deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{
		testDevice(userID, "token-a", "dev-a"),
	}, nil)
	fx.pushSvc.EXPECT().
		SendBatchNotification(ctx, []string{"token-a"}, "Don't forget", "Milk run at 5pm", map[string]string{
			"task_id": taskID.String(),
			"action":  "notify",
			"entity":  "task",
			"class":   "manual",
		}).
		Return(1, 0, nil, nil)

	result, err := fx.service.NotifyTask(ctx, userID, taskID, "Don't forget", "Milk run at 5pm")
	require.NoError(t, err)
	assert.True(t, result.Delivered)
}

func TestDispatchService_NotifyTask_NotFound(t *testing.T) {
	fx := newDispatchFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	fx.taskRepo.EXPECT().FindTaskByID(ctx, userID, taskID).Return(nil, repository.ErrTaskNotFound)

	result, err := fx.service.NotifyTask(ctx, userID, taskID, "", "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}
