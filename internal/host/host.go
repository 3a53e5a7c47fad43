// Package host defines the boundary between the statusline engine and the
// editor that embeds it. The engine never talks to an editor directly; it
// consumes the interfaces declared here and treats every call as fallible.
package host

// EntityID identifies an open buffer. Handles are opaque positive integers
// assigned by the host; zero means "no entity".
type EntityID int

// Valid reports whether the handle could refer to an entity.
func (id EntityID) Valid() bool {
	return id > 0
}

// WindowID identifies an editor window. Render requests are always scoped
// to one window.
type WindowID int

// Valid reports whether the handle could refer to a window.
func (id WindowID) Valid() bool {
	return id > 0
}

// Attrs describes a resolved highlight definition. Colors are hex strings
// in "#rrggbb" form; an empty string means the host default.
type Attrs struct {
	Foreground string
	Background string
	Bold       bool
}

// Editor exposes entity and window introspection plus the statusline
// registration hook. Implementations are expected to return errors for
// stale handles rather than panic, but callers guard against both via Query.
type Editor interface {
	// CurrentWindow returns the focused window handle.
	CurrentWindow() WindowID

	// WindowValid reports whether the window handle refers to a live window.
	WindowValid(id WindowID) bool

	// WindowEntity returns the entity bound to a window.
	WindowEntity(id WindowID) (EntityID, error)

	// EntityValid reports whether the entity handle refers to a live entity.
	EntityValid(id EntityID) bool

	// EntityName returns the entity's display name, usually a file path.
	// Empty means untitled.
	EntityName(id EntityID) (string, error)

	// EntityModified reports whether the entity has unsaved changes.
	EntityModified(id EntityID) (bool, error)

	// EntityOption returns a per-entity string option such as "filetype".
	EntityOption(id EntityID, name string) (string, error)

	// EntityVars returns the entity's variable store as a JSON document.
	// Externally computed VCS summaries live here.
	EntityVars(id EntityID) ([]byte, error)

	// Mode returns the current editor mode string (e.g. "normal").
	Mode() (string, error)

	// WorkingDir returns the editor's current working directory.
	WorkingDir() (string, error)

	// RegisterStatusline installs the render entry point invoked by the
	// host on every redraw.
	RegisterStatusline(render func(WindowID) string)
}

// HighlightRegistry is the host's named highlight table.
type HighlightRegistry interface {
	// LookupHighlight returns the currently resolved attributes for a
	// group, or an error if the theme defines nothing for it.
	LookupHighlight(group string) (Attrs, error)

	// DefineHighlight writes a highlight definition into the registry.
	DefineHighlight(group string, attrs Attrs) error
}

// BranchProvider supplies the version-control branch label for an entity.
// An empty label means the information is unavailable, which is not an error.
type BranchProvider interface {
	Branch(id EntityID) (string, error)
}

// Events is the host's lifecycle subscription surface. Handlers run
// synchronously on the host's event thread and are not reentrant: a handler
// must not trigger delivery of further events while it is running.
type Events interface {
	OnFocusChange(fn func(EntityID))
	OnDiagnosticsChanged(fn func(EntityID))
	OnEntityDestroyed(fn func(EntityID))
	OnThemeChanged(fn func())
}
