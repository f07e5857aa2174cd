// Package pubsub publishes auth events to Google Pub/Sub or a local push endpoint.
package pubsub

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
)

// noopPublisher drops events when no provider is configured; auth calls
// never depend on delivery.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishAuthEvent(ctx context.Context, event *entity.AuthEvent) error {
	p.logger.DebugContext(ctx, "Auth event not published, pubsub disabled",
		slog.String("event_type", string(event.Type)),
		slog.String("event_id", event.ID.String()),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher opens the publisher named by pubsub.provider and closes
// it when the app stops.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	publisher, err := openPublisher(params.Ctx, params.Config.PubSub, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.StopHook(func() error {
		params.Logger.Info("Closing auth event publisher")

		return publisher.Close()
	}))

	return publisher, nil
}

func openPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if err := validatePubSub(cfg); err != nil {
		return nil, err
	}

	switch provider(cfg) {
	case config.PubSubProviderLocal:
		logger.Info("Publishing auth events to local push endpoint", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil
	case config.PubSubProviderGoogle:
		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
	default:
		logger.Info("Auth event publishing disabled")

		return &noopPublisher{logger: logger}, nil
	}
}

// validatePubSub checks the fields each provider needs before anything is dialled.
func validatePubSub(cfg *config.PubSubConfig) error {
	switch provider(cfg) {
	case "":
		return nil
	case config.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return errors.New("pubsub.localEndpoint is required for the local provider")
		}
	case config.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
	default:
		return errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	return nil
}

func provider(cfg *config.PubSubConfig) string {
	if cfg == nil {
		return ""
	}

	return cfg.Provider
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
