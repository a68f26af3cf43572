package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func atHour(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
}

func TestUserPreferences_InQuietHours(t *testing.T) {
	tests := []struct {
		name     string
		start    *int
		end      *int
		hour     int
		expected bool
	}{
		{name: "no window configured", start: nil, end: nil, hour: 3, expected: false},
		{name: "only start configured", start: intPtr(22), end: nil, hour: 23, expected: false},
		{name: "inside same-day window", start: intPtr(13), end: intPtr(15), hour: 14, expected: true},
		{name: "before same-day window", start: intPtr(13), end: intPtr(15), hour: 12, expected: false},
		{name: "at same-day window start", start: intPtr(13), end: intPtr(15), hour: 13, expected: true},
		{name: "at same-day window end", start: intPtr(13), end: intPtr(15), hour: 15, expected: false},
		{name: "wrapping window late evening", start: intPtr(22), end: intPtr(6), hour: 23, expected: true},
		{name: "wrapping window early morning", start: intPtr(22), end: intPtr(6), hour: 5, expected: true},
		{name: "wrapping window midday", start: intPtr(22), end: intPtr(6), hour: 12, expected: false},
		{name: "at wrapping window end", start: intPtr(22), end: intPtr(6), hour: 6, expected: false},
		{name: "zero-length window", start: intPtr(8), end: intPtr(8), hour: 8, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := &UserPreferences{
				QuietHoursStart: tt.start,
				QuietHoursEnd:   tt.end,
			}
			assert.Equal(t, tt.expected, prefs.InQuietHours(atHour(tt.hour)))
		})
	}
}
