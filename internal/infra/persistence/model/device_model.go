package model

import (
	"time"

	"github.com/google/uuid"
)

// UserDeviceModel is the GORM-specific struct for the 'user_devices' table.
// It represents a user's device registered for push notifications.
// Uniqueness is enforced per user on the FCM token; the client device
// identifier carries a secondary index for the refresh-in-place path.
type UserDeviceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_user_devices_token,priority:1;index:idx_user_devices_device,priority:1"`
	FCMToken  string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_devices_token,priority:2"`
	DeviceID  string    `gorm:"type:varchar(255);index:idx_user_devices_device,priority:2"`
	Platform  string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserDeviceModel) TableName() string {
	return "user_devices"
}
