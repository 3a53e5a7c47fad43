package statusline

import (
	"context"

	"github.com/dshills/statline/internal/event"
	"github.com/dshills/statline/internal/event/events"
	"github.com/dshills/statline/internal/event/topic"
	"github.com/dshills/statline/internal/host"
)

// subscribe installs the engine's bus handlers. They run at critical
// priority so caches and highlights are settled before any lower-priority
// observer can trigger a redraw.
func (e *Engine) subscribe() error {
	critical := event.WithPriority(event.PriorityCritical)

	handlers := []struct {
		topic topic.Topic
		fn    event.HandlerFunc
	}{
		{events.TopicEntityFocused, e.onEntityFocused},
		{events.TopicDiagnosticsChanged, e.onDiagnosticsChanged},
		{events.TopicEntityDestroyed, e.onEntityDestroyed},
		{events.TopicThemeChanged, e.onThemeChanged},
	}

	for _, h := range handlers {
		if _, err := e.bus.SubscribeFunc(h.topic, h.fn, critical); err != nil {
			return err
		}
	}

	_, err := e.bus.SubscribeFunc(events.TopicConfigChanged, e.onConfigChanged,
		event.WithPriority(event.PriorityLow))
	return err
}

// bindHost forwards the host's lifecycle callbacks onto the bus. The bus is
// synchronous, so by the time a host callback returns, every handler has run
// and the next redraw sees consistent caches.
func (e *Engine) bindHost(ev host.Events) {
	ctx := context.Background()
	ev.OnFocusChange(func(id host.EntityID) {
		_ = e.bus.Publish(ctx, events.EntityFocused{Entity: id})
	})
	ev.OnDiagnosticsChanged(func(id host.EntityID) {
		_ = e.bus.Publish(ctx, events.DiagnosticsChanged{Entity: id})
	})
	ev.OnEntityDestroyed(func(id host.EntityID) {
		_ = e.bus.Publish(ctx, events.EntityDestroyed{Entity: id})
	})
	ev.OnThemeChanged(func() {
		_ = e.bus.Publish(ctx, events.ThemeChanged{})
	})
}

func (e *Engine) onEntityFocused(_ context.Context, ev any) error {
	if p, ok := ev.(events.EntityFocused); ok {
		e.summaries().Update(p.Entity)
	}
	return nil
}

func (e *Engine) onDiagnosticsChanged(_ context.Context, ev any) error {
	if p, ok := ev.(events.DiagnosticsChanged); ok {
		e.summaries().Update(p.Entity)
	}
	return nil
}

// onEntityDestroyed evicts unconditionally: the handle may already be dead
// on the host side, and a later entity may reuse it, so the stale entry must
// go regardless of what EntityValid says right now.
func (e *Engine) onEntityDestroyed(_ context.Context, ev any) error {
	if p, ok := ev.(events.EntityDestroyed); ok {
		e.summaries().Evict(p.Entity)
	}
	return nil
}

func (e *Engine) onThemeChanged(context.Context, any) error {
	if e.resolver != nil {
		e.resolver.ResolveAll()
	}
	return nil
}

func (e *Engine) onConfigChanged(_ context.Context, ev any) error {
	if p, ok := ev.(events.ConfigChanged); ok {
		e.log.Debug("config changed: %s", p.Path)
	}
	return nil
}
