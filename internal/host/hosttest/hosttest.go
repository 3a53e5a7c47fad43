// Package hosttest provides an in-memory host implementation for tests.
// It implements every boundary interface the engine consumes and exposes
// mutators that fire the corresponding lifecycle callbacks, mimicking a
// host that serializes event delivery before the next redraw.
package hosttest

import (
	"errors"

	"github.com/tidwall/sjson"

	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
)

// ErrNoEntity is returned for lookups against unknown handles.
var ErrNoEntity = errors.New("hosttest: no such entity")

// Entity is the mutable state behind one entity handle.
type Entity struct {
	Name     string
	Filetype string
	Modified bool
	Vars     []byte
	Diags    []diagnostic.Diagnostic
}

// Host is a scriptable in-memory editor host.
type Host struct {
	entities map[host.EntityID]*Entity
	windows  map[host.WindowID]host.EntityID
	current  host.WindowID
	nextID   int

	mode string
	wd   string

	theme   map[string]host.Attrs
	defined map[string]host.Attrs

	branches map[host.EntityID]string

	render func(host.WindowID) string

	focusFns   []func(host.EntityID)
	diagFns    []func(host.EntityID)
	destroyFns []func(host.EntityID)
	themeFns   []func()
}

// New creates an empty host in normal mode with no entities.
func New() *Host {
	return &Host{
		entities: make(map[host.EntityID]*Entity),
		windows:  make(map[host.WindowID]host.EntityID),
		mode:     "normal",
		wd:       "/",
		theme:    make(map[string]host.Attrs),
		defined:  make(map[string]host.Attrs),
		branches: make(map[host.EntityID]string),
	}
}

// --- scripting helpers ---

// Open creates an entity bound to a new window and focuses it. It returns
// the entity and window handles and fires the focus callback.
func (h *Host) Open(name, filetype string) (host.EntityID, host.WindowID) {
	h.nextID++
	eid := host.EntityID(h.nextID)
	wid := host.WindowID(h.nextID)

	h.entities[eid] = &Entity{Name: name, Filetype: filetype}
	h.windows[wid] = eid
	h.current = wid

	for _, fn := range h.focusFns {
		fn(eid)
	}
	return eid, wid
}

// Focus switches the current window and fires the focus callback for its
// entity.
func (h *Host) Focus(wid host.WindowID) {
	h.current = wid
	if eid, ok := h.windows[wid]; ok {
		for _, fn := range h.focusFns {
			fn(eid)
		}
	}
}

// SetDiagnostics replaces an entity's diagnostics and fires the
// diagnostics-changed callback.
func (h *Host) SetDiagnostics(id host.EntityID, diags []diagnostic.Diagnostic) {
	if e, ok := h.entities[id]; ok {
		e.Diags = diags
	}
	for _, fn := range h.diagFns {
		fn(id)
	}
}

// Destroy removes an entity and its windows and fires the destroy callback.
func (h *Host) Destroy(id host.EntityID) {
	delete(h.entities, id)
	for wid, eid := range h.windows {
		if eid == id {
			delete(h.windows, wid)
		}
	}
	for _, fn := range h.destroyFns {
		fn(id)
	}
}

// SetThemeColor installs a theme color and fires the theme-changed callback.
func (h *Host) SetThemeColor(group string, attrs host.Attrs) {
	h.theme[group] = attrs
	for _, fn := range h.themeFns {
		fn()
	}
}

// SetMode changes the reported editor mode.
func (h *Host) SetMode(mode string) {
	h.mode = mode
}

// SetWorkingDir changes the reported working directory.
func (h *Host) SetWorkingDir(dir string) {
	h.wd = dir
}

// SetModified flips an entity's modified flag.
func (h *Host) SetModified(id host.EntityID, modified bool) {
	if e, ok := h.entities[id]; ok {
		e.Modified = modified
	}
}

// SetBranch installs a branch label for an entity.
func (h *Host) SetBranch(id host.EntityID, branch string) {
	h.branches[id] = branch
}

// SetVar writes one value into an entity's JSON variable store.
func (h *Host) SetVar(id host.EntityID, path string, value any) error {
	e, ok := h.entities[id]
	if !ok {
		return ErrNoEntity
	}
	doc, err := sjson.SetBytes(e.Vars, path, value)
	if err != nil {
		return err
	}
	e.Vars = doc
	return nil
}

// Defined returns the highlight attributes the engine wrote for a group.
func (h *Host) Defined(group string) (host.Attrs, bool) {
	attrs, ok := h.defined[group]
	return attrs, ok
}

// Render invokes the registered render entry point, as the host would on
// redraw. It returns "" when nothing is registered.
func (h *Host) Render(wid host.WindowID) string {
	if h.render == nil {
		return ""
	}
	return h.render(wid)
}

// --- host.Editor ---

func (h *Host) CurrentWindow() host.WindowID {
	return h.current
}

func (h *Host) WindowValid(id host.WindowID) bool {
	_, ok := h.windows[id]
	return ok
}

func (h *Host) WindowEntity(id host.WindowID) (host.EntityID, error) {
	eid, ok := h.windows[id]
	if !ok {
		return 0, ErrNoEntity
	}
	return eid, nil
}

func (h *Host) EntityValid(id host.EntityID) bool {
	_, ok := h.entities[id]
	return ok
}

func (h *Host) EntityName(id host.EntityID) (string, error) {
	e, ok := h.entities[id]
	if !ok {
		return "", ErrNoEntity
	}
	return e.Name, nil
}

func (h *Host) EntityModified(id host.EntityID) (bool, error) {
	e, ok := h.entities[id]
	if !ok {
		return false, ErrNoEntity
	}
	return e.Modified, nil
}

func (h *Host) EntityOption(id host.EntityID, name string) (string, error) {
	e, ok := h.entities[id]
	if !ok {
		return "", ErrNoEntity
	}
	if name != "filetype" {
		return "", errors.New("hosttest: unknown option " + name)
	}
	return e.Filetype, nil
}

func (h *Host) EntityVars(id host.EntityID) ([]byte, error) {
	e, ok := h.entities[id]
	if !ok {
		return nil, ErrNoEntity
	}
	return e.Vars, nil
}

func (h *Host) Mode() (string, error) {
	return h.mode, nil
}

func (h *Host) WorkingDir() (string, error) {
	return h.wd, nil
}

func (h *Host) RegisterStatusline(render func(host.WindowID) string) {
	h.render = render
}

// --- diagnostic.Source ---

func (h *Host) Diagnostics(id host.EntityID) ([]diagnostic.Diagnostic, error) {
	e, ok := h.entities[id]
	if !ok {
		return nil, ErrNoEntity
	}
	return e.Diags, nil
}

// --- host.HighlightRegistry ---

func (h *Host) LookupHighlight(group string) (host.Attrs, error) {
	if attrs, ok := h.theme[group]; ok {
		return attrs, nil
	}
	attrs, ok := h.defined[group]
	if !ok {
		return host.Attrs{}, errors.New("hosttest: undefined highlight " + group)
	}
	return attrs, nil
}

func (h *Host) DefineHighlight(group string, attrs host.Attrs) error {
	h.defined[group] = attrs
	return nil
}

// --- host.BranchProvider ---

func (h *Host) Branch(id host.EntityID) (string, error) {
	return h.branches[id], nil
}

// --- host.Events ---

func (h *Host) OnFocusChange(fn func(host.EntityID)) {
	h.focusFns = append(h.focusFns, fn)
}

func (h *Host) OnDiagnosticsChanged(fn func(host.EntityID)) {
	h.diagFns = append(h.diagFns, fn)
}

func (h *Host) OnEntityDestroyed(fn func(host.EntityID)) {
	h.destroyFns = append(h.destroyFns, fn)
}

func (h *Host) OnThemeChanged(fn func()) {
	h.themeFns = append(h.themeFns, fn)
}
