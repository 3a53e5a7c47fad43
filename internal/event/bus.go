package event

import (
	"context"
	"sort"
	"sync"

	"github.com/dshills/statline/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publish delivers an event synchronously to every matching handler.
	Publish(ctx context.Context, event any) error

	// Subscribe creates a new subscription for a topic pattern.
	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc is a convenience method for function handlers.
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe removes a subscription.
	Unsubscribe(sub Subscription) error
}

// bus is the default Bus implementation. Handlers run in the publisher's
// goroutine; the host contract serializes event delivery before the next
// redraw, so a publish that returns guarantees every cache update it
// triggered is visible to subsequent renders. The mutex exists for hosts
// that break the single-thread assumption, not for the common path.
type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
}

// NewBus creates a new synchronous event bus.
func NewBus() Bus {
	return &bus{
		subs: make(map[string]*subscription),
	}
}

// Publish delivers an event to all matching handlers in priority order.
// Handler errors and panics are swallowed: a failing observer must never
// break statusline rendering.
func (b *bus) Publish(ctx context.Context, event any) error {
	eventTopic := extractTopic(event)
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	for _, sub := range b.matching(eventTopic) {
		if !sub.IsActive() || !sub.shouldDeliver(event) {
			continue
		}

		dispatch(ctx, event, sub.handler)

		if sub.config.Once {
			sub.Cancel()
			b.remove(sub.id)
		}
	}

	return nil
}

// dispatch runs one handler with panic recovery.
func dispatch(ctx context.Context, event any, h Handler) {
	defer func() {
		_ = recover()
	}()
	_ = h.Handle(ctx, event)
}

// Subscribe creates a new subscription for the given topic pattern.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), pattern, handler, opts...)

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// matching returns active subscriptions whose patterns match the topic,
// sorted by priority (lower values first).
func (b *bus) matching(t topic.Topic) []*subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var matched []*subscription
	for _, sub := range b.subs {
		if topic.Match(sub.topic, t) {
			matched = append(matched, sub)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].config.Priority < matched[j].config.Priority
	})

	return matched
}

func (b *bus) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[id]; !ok {
		return false
	}
	delete(b.subs, id)
	return true
}

// extractTopic extracts the topic from an event.
func extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
