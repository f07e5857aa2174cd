package service

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// EventPublisher defines the interface for publishing auth events to a message queue
type EventPublisher interface {
	// PublishAuthEvent publishes an event describing a completed auth operation
	PublishAuthEvent(ctx context.Context, event *entity.AuthEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
