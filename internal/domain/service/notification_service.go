package service

import (
	"context"
)

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendToUser sends a push notification to the topic of a single user.
	SendToUser(ctx context.Context, userID string, title, body string, data map[string]string) error

	// SendToTopic sends a push notification to a named topic, e.g. staff alerts
	// for new orders.
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}
