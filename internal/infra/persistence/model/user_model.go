package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the GORM-specific struct for the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserPreferenceModel is the GORM-specific struct for the
// 'user_preferences' table. One row per user, created together with the
// user record.
type UserPreferenceModel struct {
	UserID              uuid.UUID `gorm:"type:uuid;primary_key"`
	NotificationEnabled bool      `gorm:"not null;default:true"`
	ReminderEnabled     bool      `gorm:"not null;default:true"`
	QuietHoursStart     *int
	QuietHoursEnd       *int
	LastSyncTime        *time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserPreferenceModel) TableName() string {
	return "user_preferences"
}
