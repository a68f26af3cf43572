// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDuplicateDevice is returned when trying to create a device that already exists.
	ErrDuplicateDevice = errors.New("device already exists")
)

// DeviceRepository defines the interface for device-registry database operations.
type DeviceRepository interface {
	// CreateDevice persists a new device registration for a user.
	CreateDevice(ctx context.Context, device *entity.UserDevice) error

	// FindDevicesByUser retrieves all registered devices for a user.
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// RefreshDevice updates the FCM token and registration timestamp of
	// an existing device record in place.
	RefreshDevice(ctx context.Context, deviceID uuid.UUID, fcmToken string) error

	// DeleteDeviceByToken removes a registration by exact token match,
	// scoped to the owning user. Pruning by token rather than by
	// position keeps a concurrently added device safe.
	DeleteDeviceByToken(ctx context.Context, userID uuid.UUID, fcmToken string) error
}
