// Package events defines the typed events and topics the statusline engine
// publishes and consumes.
package events

import (
	"github.com/dshills/statline/internal/event/topic"
	"github.com/dshills/statline/internal/host"
)

// Statusline event topics.
const (
	// TopicEntityFocused is published when a window gains focus on an entity.
	TopicEntityFocused topic.Topic = "statusline.entity.focused"

	// TopicEntityDestroyed is published when the host closes an entity.
	TopicEntityDestroyed topic.Topic = "statusline.entity.destroyed"

	// TopicDiagnosticsChanged is published when an entity's diagnostics change.
	TopicDiagnosticsChanged topic.Topic = "statusline.diagnostics.changed"

	// TopicThemeChanged is published when the host color theme changes.
	TopicThemeChanged topic.Topic = "statusline.theme.changed"

	// TopicConfigChanged is published when the layout configuration is reloaded.
	TopicConfigChanged topic.Topic = "statusline.config.changed"
)

// EntityFocused is published when a window gains focus on an entity.
type EntityFocused struct {
	// Entity is the focused entity handle.
	Entity host.EntityID
}

// EventTopic implements event.TopicProvider.
func (EntityFocused) EventTopic() topic.Topic {
	return TopicEntityFocused
}

// EntityDestroyed is published when the host closes an entity.
type EntityDestroyed struct {
	// Entity is the destroyed entity handle. The handle may be reused by
	// the host for a later entity.
	Entity host.EntityID
}

// EventTopic implements event.TopicProvider.
func (EntityDestroyed) EventTopic() topic.Topic {
	return TopicEntityDestroyed
}

// DiagnosticsChanged is published when an entity's diagnostic set changes.
type DiagnosticsChanged struct {
	// Entity is the affected entity handle.
	Entity host.EntityID
}

// EventTopic implements event.TopicProvider.
func (DiagnosticsChanged) EventTopic() topic.Topic {
	return TopicDiagnosticsChanged
}

// ThemeChanged is published when the host color theme changes.
type ThemeChanged struct{}

// EventTopic implements event.TopicProvider.
func (ThemeChanged) EventTopic() topic.Topic {
	return TopicThemeChanged
}

// ConfigChanged is published when the layout configuration is reloaded.
type ConfigChanged struct {
	// Path is the configuration file that changed, if any.
	Path string
}

// EventTopic implements event.TopicProvider.
func (ConfigChanged) EventTopic() topic.Topic {
	return TopicConfigChanged
}
