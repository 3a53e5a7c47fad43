package event

import (
	"sync/atomic"

	"github.com/dshills/statline/internal/event/topic"
)

// Priority determines handler execution order. Lower values execute first.
type Priority int

const (
	// PriorityCritical is for cache and highlight handlers that must run
	// before anything that might trigger a redraw.
	PriorityCritical Priority = 0

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 100

	// PriorityLow is for observers that run last.
	PriorityLow Priority = 200
)

// Subscription represents an active event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Cancel permanently cancels the subscription.
	Cancel()
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate; events are only delivered when it
	// returns true.
	Filter FilterFunc

	// Once indicates the subscription auto-cancels after the first delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce sets the subscription to auto-cancel after the first delivery.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// subscription is the internal implementation of Subscription.
type subscription struct {
	id        string
	topic     topic.Topic
	handler   Handler
	config    SubscriptionConfig
	cancelled atomic.Bool
}

func newSubscription(id string, t topic.Topic, h Handler, opts ...SubscriptionOption) *subscription {
	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	return &subscription{
		id:      id,
		topic:   t,
		handler: h,
		config:  config,
	}
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Topic() topic.Topic {
	return s.topic
}

func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *subscription) Cancel() {
	s.cancelled.Store(true)
}

// shouldDeliver applies the subscription filter.
func (s *subscription) shouldDeliver(event any) bool {
	if s.config.Filter == nil {
		return true
	}
	return s.config.Filter(event)
}
