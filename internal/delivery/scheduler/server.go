// Package scheduler runs the periodic reminder scan as a long-lived
// delivery component.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskhub/config"
	"taskhub/internal/delivery"
	"taskhub/internal/usecase"
	"taskhub/internal/util"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

type schedulerServer struct {
	cfg        *config.Config
	logger     *slog.Logger
	reminderUC usecase.ReminderUsecase
	cron       *cron.Cron
}

// ServerParams holds dependencies for the scheduler server
type ServerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	Logger     *slog.Logger
	ReminderUC usecase.ReminderUsecase
}

// NewServer creates the reminder scheduler delivery. The scan cadence
// comes from the scheduler config; each tick runs under its own timeout
// so a slow pass cannot pile up behind the next one.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &schedulerServer{
		cfg:        params.Cfg,
		logger:     params.Logger,
		reminderUC: params.ReminderUC,
		cron:       cron.New(cron.WithSeconds()),
	}

	pollInterval := params.Cfg.Scheduler.PollInterval
	seconds := int(pollInterval.Seconds())
	if seconds <= 0 {
		return nil, errors.Errorf("poll interval too short: %s", pollInterval)
	}

	spec := fmt.Sprintf("@every %ds", seconds)
	if _, err := srv.cron.AddFunc(spec, srv.tick); err != nil {
		return nil, errors.Wrap(err, "failed to schedule reminder scan")
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the cron loop and blocks until it is stopped.
func (s *schedulerServer) Serve(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.logger.Info("Reminder scheduler disabled, not starting")

		return nil
	}

	s.logger.Info("Starting reminder scheduler",
		slog.Duration("poll_interval", s.cfg.Scheduler.PollInterval),
	)
	s.cron.Run()

	return nil
}

func (s *schedulerServer) stop(ctx context.Context) error {
	s.logger.Info("Shutting down reminder scheduler")

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}

	return nil
}

// tick runs one reminder scan.
func (s *schedulerServer) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Scheduler.RunTimeout)
	defer cancel()

	now := time.Now()
	if _, err := s.reminderUC.RunDue(ctx, now, s.cfg.Scheduler.PollInterval); err != nil {
		s.logger.Error("reminder scan failed",
			slog.String("elapsed", util.FormatDuration(time.Since(now))),
			slog.Any("error", err),
		)
	}
}
