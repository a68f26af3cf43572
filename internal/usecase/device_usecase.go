package usecase

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	FCMToken string `json:"fcm_token"`
	DeviceID string `json:"device_id"`
	Platform string `json:"platform"`
}

// DeviceUsecase defines the interface for device management use cases
type DeviceUsecase interface {
	// RegisterDevice registers a new device or refreshes the token of an
	// existing one. Matching is by FCM token first, then by client device ID.
	RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *DeviceInfo) (*entity.UserDevice, error)

	// GetUserDevices retrieves all registered devices for a user
	GetUserDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// RemoveDeviceToken deletes the device registration matching the token
	RemoveDeviceToken(ctx context.Context, userID uuid.UUID, fcmToken string) error
}
