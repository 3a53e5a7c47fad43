package event

import "errors"

// Bus errors.
var (
	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("event: nil handler")

	// ErrInvalidTopic is returned when subscribing with an empty topic.
	ErrInvalidTopic = errors.New("event: invalid topic")

	// ErrInvalidEvent is returned when publishing an event with no topic.
	ErrInvalidEvent = errors.New("event: cannot determine event topic")

	// ErrInvalidSubscription is returned when unsubscribing a nil subscription.
	ErrInvalidSubscription = errors.New("event: invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown subscription.
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
)
