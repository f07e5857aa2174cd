// Command gatekeeper serves the credential auth API.
package main

import (
	"context"
	"log/slog"
	"os"

	"gatekeeper/config"
	"gatekeeper/internal/delivery"
	"gatekeeper/internal/delivery/http"
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"
	"gatekeeper/internal/infra/auth"
	logs "gatekeeper/internal/infra/log"
	"gatekeeper/internal/infra/persistence"
	"gatekeeper/internal/infra/pubsub"
	"gatekeeper/internal/infra/ratelimit"
	"gatekeeper/internal/infra/redis"
	"gatekeeper/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

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
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			redis.New,
			ratelimit.NewLimiter,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		persistence.NewRepositories,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
		auth.NewRefreshHashStore,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthService,
		impl.NewAuditService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewRateLimitMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
		handler.NewActivityHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
