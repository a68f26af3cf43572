package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel is the GORM-specific struct for the 'tasks' table.
type TaskModel struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_user_start,priority:1;index:idx_tasks_user_reminder,priority:1"`
	Title                 string     `gorm:"type:varchar(255);not null"`
	Priority              string     `gorm:"type:varchar(16);not null;default:'medium'"`
	Completed             bool       `gorm:"not null;default:false"`
	AllDay                bool       `gorm:"not null;default:false"`
	StartTime             *time.Time `gorm:"index:idx_tasks_user_start,priority:2;index:idx_tasks_user_reminder,priority:3"`
	EndTime               *time.Time
	Location              string   `gorm:"type:varchar(255)"`
	Latitude              *float64 `gorm:"type:double precision"`
	Longitude             *float64 `gorm:"type:double precision"`
	ReminderOffsetMinutes *int     `gorm:"index:idx_tasks_user_reminder,priority:2"`
	ReminderSent          bool     `gorm:"not null;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
