// Package event provides the synchronous publish/subscribe bus that drives
// statusline invalidation. The host delivers lifecycle changes on a single
// logical thread, so delivery is always in-line: Publish returns only after
// every matching handler has run.
package event

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/dshills/statline/internal/event/topic"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event. The event parameter is type-erased;
	// handlers should type-assert.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// TopicProvider is implemented by event types that can name their topic.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Envelope wraps an arbitrary payload for type-erased publishing.
type Envelope struct {
	// Topic is the event topic.
	Topic topic.Topic

	// Payload is the event payload.
	Payload any
}

// EventTopic implements TopicProvider.
func (e Envelope) EventTopic() topic.Topic {
	return e.Topic
}

// generateID generates a unique subscription ID.
func generateID() string {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		// Fallback to timestamp-based ID if crypto/rand fails
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
