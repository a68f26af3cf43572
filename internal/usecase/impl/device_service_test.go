package impl

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/entity"
	mockRepo "taskhub/internal/mocks/repository"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_RegisterDevice_New(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockDeviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{}, nil)
	mockDeviceRepo.EXPECT().
		CreateDevice(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "token-new",
		DeviceID: "dev-1",
		Platform: "android",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, device.UserID)
	assert.Equal(t, "token-new", device.FCMToken)
	assert.Equal(t, "dev-1", device.DeviceID)
	assert.Equal(t, "android", device.Platform)
	assert.NotEqual(t, uuid.Nil, device.ID)
}

func TestDeviceService_RegisterDevice_RefreshByToken(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.UserDevice{
		ID:        uuid.New(),
		UserID:    userID,
		FCMToken:  "token-same",
		DeviceID:  "dev-old",
		Platform:  "ios",
		UpdatedAt: time.Now().Add(-time.Hour),
	}

	mockDeviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{existing}, nil)
	mockDeviceRepo.EXPECT().RefreshDevice(ctx, existing.ID, "token-same").Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{FCMToken: "token-same"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, device.ID)
}

func TestDeviceService_RegisterDevice_RefreshByDeviceID(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.UserDevice{
		ID:       uuid.New(),
		UserID:   userID,
		FCMToken: "token-expired",
		DeviceID: "dev-1",
		Platform: "ios",
	}

	// Same physical device came back with a rotated FCM token: refresh the
	// record instead of stacking a duplicate registration.
	mockDeviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{existing}, nil)
	mockDeviceRepo.EXPECT().RefreshDevice(ctx, existing.ID, "token-rotated").Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "token-rotated",
		DeviceID: "dev-1",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, device.ID)
	assert.Equal(t, "token-rotated", device.FCMToken)
}

func TestDeviceService_RegisterDevice_EmptyDeviceIDNeverMatches(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.UserDevice{
		ID:       uuid.New(),
		UserID:   userID,
		FCMToken: "token-a",
		DeviceID: "",
	}

	mockDeviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{existing}, nil)
	mockDeviceRepo.EXPECT().
		CreateDevice(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{FCMToken: "token-b"})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, device.ID)
}

func TestDeviceService_GetUserDevices(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.UserDevice{
		{ID: uuid.New(), UserID: userID, FCMToken: "token-a"},
		{ID: uuid.New(), UserID: userID, FCMToken: "token-b"},
	}

	mockDeviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return(expected, nil)

	devices, err := service.GetUserDevices(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, expected, devices)
}

func TestDeviceService_RemoveDeviceToken(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockDeviceRepo.EXPECT().DeleteDeviceByToken(ctx, userID, "token-gone").Return(nil)

	err := service.RemoveDeviceToken(ctx, userID, "token-gone")
	require.NoError(t, err)
}

func TestDeviceService_RemoveDeviceToken_RepoError(t *testing.T) {
	mockDeviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(mockDeviceRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockDeviceRepo.EXPECT().
		DeleteDeviceByToken(ctx, userID, "token-gone").
		Return(errors.New("connection reset"))

	err := service.RemoveDeviceToken(ctx, userID, "token-gone")
	assert.Error(t, err)
}
