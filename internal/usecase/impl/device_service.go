package impl

import (
	"context"
	"fmt"
	"time"

	"taskhub/internal/domain/entity"
	"taskhub/internal/domain/repository"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo repository.DeviceRepository) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
	}
}

// RegisterDevice registers a new device or refreshes an existing one.
// A registration matching either an existing FCM token or an existing
// client device ID updates that record in place instead of duplicating it.
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.UserDevice, error) {
	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find devices by user: %w", err)
	}

	for _, device := range devices {
		sameToken := device.FCMToken == deviceInfo.FCMToken
		sameDevice := deviceInfo.DeviceID != "" && device.DeviceID == deviceInfo.DeviceID

		if !sameToken && !sameDevice {
			continue
		}

		if err := s.deviceRepo.RefreshDevice(ctx, device.ID, deviceInfo.FCMToken); err != nil {
			return nil, fmt.Errorf("failed to refresh device: %w", err)
		}

		device.FCMToken = deviceInfo.FCMToken
		device.UpdatedAt = time.Now()

		return device, nil
	}

	device := &entity.UserDevice{
		ID:        uuid.New(),
		UserID:    userID,
		FCMToken:  deviceInfo.FCMToken,
		DeviceID:  deviceInfo.DeviceID,
		Platform:  deviceInfo.Platform,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.deviceRepo.CreateDevice(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	return device, nil
}

// GetUserDevices retrieves all registered devices for a user
func (s *deviceService) GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find devices by user: %w", err)
	}

	return devices, nil
}

// RemoveDeviceToken deletes the device registration matching the token
func (s *deviceService) RemoveDeviceToken(ctx context.Context, userID uuid.UUID, fcmToken string) error {
	if err := s.deviceRepo.DeleteDeviceByToken(ctx, userID, fcmToken); err != nil {
		return fmt.Errorf("failed to delete device by token: %w", err)
	}

	return nil
}
