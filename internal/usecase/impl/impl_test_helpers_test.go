package impl

import (
	"io"
	"log/slog"
	"time"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

// enabledPrefs returns preferences with every delivery switch on and no
// quiet-hours window.
func enabledPrefs(userID uuid.UUID) *entity.UserPreferences {
	return &entity.UserPreferences{
		UserID:              userID,
		NotificationEnabled: true,
		ReminderEnabled:     true,
		UpdatedAt:           time.Now(),
	}
}
