package pubsub

import "gatekeeper/internal/domain/entity"

// eventAttributes are the message attributes subscribers filter and trace on.
func eventAttributes(event *entity.AuthEvent) map[string]string {
	attributes := map[string]string{
		"event_id":   event.ID.String(),
		"event_type": string(event.Type),
		"user_id":    event.UserID.String(),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
