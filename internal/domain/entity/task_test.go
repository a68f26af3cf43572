package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_ReminderTime(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("offset before start", func(t *testing.T) {
		task := &Task{StartTime: &start, ReminderOffsetMinutes: intPtr(30)}

		fireAt, ok := task.ReminderTime()
		require.True(t, ok)
		assert.Equal(t, start.Add(-30*time.Minute), fireAt)
	})

	t.Run("zero offset fires at start", func(t *testing.T) {
		task := &Task{StartTime: &start, ReminderOffsetMinutes: intPtr(0)}

		fireAt, ok := task.ReminderTime()
		require.True(t, ok)
		assert.Equal(t, start, fireAt)
	})

	t.Run("no start time", func(t *testing.T) {
		task := &Task{ReminderOffsetMinutes: intPtr(30)}

		_, ok := task.ReminderTime()
		assert.False(t, ok)
	})

	t.Run("no offset", func(t *testing.T) {
		task := &Task{StartTime: &start}

		_, ok := task.ReminderTime()
		assert.False(t, ok)
	})
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("high"))
	assert.Equal(t, PriorityCritical, NormalizePriority("critical"))
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
	assert.Equal(t, PriorityMedium, NormalizePriority("urgent"))
}
