package messaging

import (
	"context"
)

// Broker publishes notification events for external consumers.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Message is the envelope published on notification channels.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
