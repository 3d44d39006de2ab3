// Package pubsub fans events out from one publisher to many subscribers.
// scribe uses it for log entries, document change notifications and
// config reloads, and bridges subscriptions into the Bubble Tea loop.
package pubsub

import (
	"context"
	"time"
)

// EventType tags what happened to the payload.
type EventType string

const (
	// CreatedEvent carries a new value, such as a log line.
	CreatedEvent EventType = "created"
	// UpdatedEvent carries the new state of something that already existed.
	UpdatedEvent EventType = "updated"
	// ReloadedEvent carries state that was re-read from disk.
	ReloadedEvent EventType = "reloaded"
	// FailedEvent reports that producing the payload went wrong.
	FailedEvent EventType = "failed"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
