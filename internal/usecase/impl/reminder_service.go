package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskhub/internal/domain/repository"
	"taskhub/internal/errors"
	"taskhub/internal/usecase"
)

type reminderService struct {
	taskRepo   repository.TaskRepository
	dispatcher usecase.DispatchUsecase
	logger     *slog.Logger
}

// NewReminderService creates a new reminder service instance
func NewReminderService(
	taskRepo repository.TaskRepository,
	dispatcher usecase.DispatchUsecase,
	logger *slog.Logger,
) usecase.ReminderUsecase {
	return &reminderService{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RunDue performs one polling pass. A reminder fires when its computed
// fire time became due since the previous pass, i.e. falls in the half-open
// window (now - pollInterval, now]. Matching on "became due" instead of
// "is due" keeps the scan robust to polling drift and missed ticks.
func (s *reminderService) RunDue(ctx context.Context, now time.Time, pollInterval time.Duration) (*usecase.ReminderRunStats, error) {
	candidates, err := s.taskRepo.FindReminderCandidates(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find reminder candidates: %w", err)
	}

	stats := &usecase.ReminderRunStats{Candidates: len(candidates)}
	windowStart := now.Add(-pollInterval)

	for _, task := range candidates {
		reminderTime, ok := task.ReminderTime()
		if !ok {
			continue
		}
		if !reminderTime.After(windowStart) || reminderTime.After(now) {
			continue
		}
		stats.Due++

		msg := &usecase.PushMessage{
			Class: usecase.MessageClassReminder,
			Title: "任務提醒",
			Body:  task.Title,
			Data: map[string]string{
				"task_id": task.ID.String(),
				"action":  "reminder",
				"entity":  "task",
			},
		}

		result, err := s.dispatcher.Deliver(ctx, task.UserID, msg)
		if err != nil {
			// Leave the task pending; it stays eligible while the window is
			// open and ages out afterwards.
			s.logger.Error("reminder dispatch failed",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()),
				slog.Any("error", err),
			)
			stats.Failed++

			continue
		}

		if !result.Delivered {
			// Not marked sent either way, so the next pass inside the
			// window retries it.
			if result.Reason != "" {
				// Skipped by preferences, quiet hours, or no devices.
				s.logger.Debug("reminder skipped",
					slog.String("task_id", task.ID.String()),
					slog.String("reason", result.Reason),
				)
				stats.Skipped++
			} else {
				// Attempted but every device failed.
				s.logger.Warn("reminder delivery failed on all devices",
					slog.String("task_id", task.ID.String()),
					slog.Int("failure_count", result.FailureCount),
				)
				stats.Failed++
			}

			continue
		}

		// Conditional write: only flips reminder_sent when it is still
		// false, so a racing pass never double-dispatches.
		if err := s.taskRepo.MarkReminderSent(ctx, task.UserID, task.ID); err != nil {
			if errors.Is(err, repository.ErrReminderAlreadySent) {
				continue
			}
			s.logger.Error("failed to mark reminder sent",
				slog.String("task_id", task.ID.String()),
				slog.Any("error", err),
			)
			stats.Failed++

			continue
		}

		stats.Sent++
	}

	s.logger.Info("reminder scan completed",
		slog.Int("candidates", stats.Candidates),
		slog.Int("due", stats.Due),
		slog.Int("sent", stats.Sent),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
	)

	return stats, nil
}
