package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event names published on the broadcast topic. Consumers (admin dashboards,
// room displays) subscribe to these to refresh their views.
const (
	EventRoomStatusChanged = "room:status_changed"
	EventSessionStarted    = "session:started"
	EventSessionEnded      = "session:ended"
	EventOrderCreated      = "order:new"
	EventOrderStatusUpdate = "order:status_updated"
	EventWalletDeposited   = "wallet:deposited"
)

// BroadcastEvent is the envelope published for every cafe event.
type BroadcastEvent struct {
	RequestID  string         `json:"request_id,omitempty"` // For distributed tracing
	Event      string         `json:"event"`
	UserID     uuid.UUID      `json:"user_id,omitempty"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
// Publishing is fire-and-forget: callers emit after their transaction commits
// and log failures instead of propagating them.
type EventPublisher interface {
	// PublishBroadcastEvent publishes a cafe event for async fan-out.
	PublishBroadcastEvent(ctx context.Context, event *BroadcastEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
