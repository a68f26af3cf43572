package usecase

import (
	"context"
	"time"
)

// ReminderRunStats summarizes one polling pass of the reminder scheduler.
type ReminderRunStats struct {
	// Candidates is how many tasks with pending reminders were scanned.
	Candidates int

	// Due is how many reminder times fell inside the polling window.
	Due int

	// Sent is how many reminders were delivered and marked sent.
	Sent int

	// Skipped is how many due reminders were suppressed by user
	// preferences or quiet hours. These stay pending and are retried on
	// later passes while still inside the window.
	Skipped int

	// Failed is how many dispatch attempts errored.
	Failed int
}

// ReminderUsecase drives the periodic reminder scan.
type ReminderUsecase interface {
	// RunDue scans for reminders whose fire time falls in the window
	// (now - pollInterval, now] and dispatches each one at most once.
	RunDue(ctx context.Context, now time.Time, pollInterval time.Duration) (*ReminderRunStats, error)
}
