package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"taskhub/config"
	"taskhub/internal/delivery"
	"taskhub/internal/delivery/http"
	"taskhub/internal/delivery/http/middleware"
	"taskhub/internal/delivery/http/router/handler"
	"taskhub/internal/delivery/scheduler"
	"taskhub/internal/delivery/worker"
	workerhandler "taskhub/internal/delivery/worker/handler"
	"taskhub/internal/domain/service"
	"taskhub/internal/infra/auth"
	logs "taskhub/internal/infra/log"
	"taskhub/internal/infra/notification"
	"taskhub/internal/infra/persistence/postgres"
	"taskhub/internal/infra/pubsub"
	"taskhub/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTaskRepository,
			postgres.NewDeviceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newPushService,
		),
		pubsub.Module,
	)
}

// newPushService creates the Firebase-backed push gateway, or a no-op
// gateway when Firebase is not configured.
func newPushService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil {
		logger.Warn("Firebase not configured, push delivery disabled")

		return notification.NewNoopService(logger), nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewTaskService,
			impl.NewDeviceService,
			impl.NewDispatchService,
			impl.NewReminderService,
			impl.NewSyncService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewTaskHandler,
			handler.NewDeviceHandler,
			handler.NewSyncHandler,
			handler.NewTestHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
