// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single task owned by exactly one user.
type Task struct {
	ID                    uuid.UUID  `json:"id"`                               // The Global Unique Identifier (GUID) for the task.
	UserID                uuid.UUID  `json:"user_id"`                         // The ID of the user who owns this task.
	Title                 string     `json:"title"`                           // Human-readable task title.
	Priority              Priority   `json:"priority"`                        // Task priority (low, medium, high, critical).
	Completed             bool       `json:"completed"`                       // Whether the task has been completed.
	AllDay                bool       `json:"all_day"`                         // Whether the task spans the whole day.
	StartTime             *time.Time `json:"start_time,omitempty"`            // Optional start instant.
	EndTime               *time.Time `json:"end_time,omitempty"`              // Optional end instant.
	Location              string     `json:"location,omitempty"`              // Optional free-text location.
	Latitude              *float64   `json:"latitude,omitempty"`              // Optional latitude in [-90, 90].
	Longitude             *float64   `json:"longitude,omitempty"`             // Optional longitude in [-180, 180].
	ReminderOffsetMinutes *int       `json:"reminder_offset_minutes,omitempty"` // Minutes before StartTime at which the reminder fires.
	ReminderSent          bool       `json:"reminder_sent"`                   // One-way flag; flips false -> true once a reminder dispatch was issued.
	CreatedAt             time.Time  `json:"created_at"`                      // Timestamp of when this task was created.
	UpdatedAt             time.Time  `json:"updated_at"`                      // Timestamp of the last modification.
}

// ReminderTime returns the instant at which the reminder for this task
// becomes due. The second return value is false when the task has no
// reminder configured.
func (t *Task) ReminderTime() (time.Time, bool) {
	if t.StartTime == nil || t.ReminderOffsetMinutes == nil {
		return time.Time{}, false
	}

	return t.StartTime.Add(-time.Duration(*t.ReminderOffsetMinutes) * time.Minute), true
}
