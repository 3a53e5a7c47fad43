// Package term is a tcell-backed host for running the statusline engine in
// a real terminal. It keeps entity and window state in memory, fires the
// lifecycle callbacks the engine binds to, and draws the rendered line into
// the bottom screen row with resolved highlight styles.
package term

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/sjson"

	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
)

// ErrNoEntity is returned for lookups against unknown handles.
var ErrNoEntity = errors.New("term: no such entity")

type entity struct {
	name     string
	filetype string
	modified bool
	vars     []byte
	diags    []diagnostic.Diagnostic
}

type cursor struct {
	line  int
	col   int
	total int
}

// Host is an in-memory editor host wired for terminal display. It
// implements the editor, highlight registry, event, and diagnostic source
// boundaries the engine consumes.
type Host struct {
	mu       sync.RWMutex
	entities map[host.EntityID]*entity
	windows  map[host.WindowID]host.EntityID
	cursors  map[host.WindowID]cursor
	current  host.WindowID
	nextID   int

	mode string
	wd   string

	theme   map[string]host.Attrs
	defined map[string]host.Attrs

	render func(host.WindowID) string

	focusFns   []func(host.EntityID)
	diagFns    []func(host.EntityID)
	destroyFns []func(host.EntityID)
	themeFns   []func()
}

// NewHost creates an empty host in normal mode with the given working
// directory.
func NewHost(wd string) *Host {
	return &Host{
		entities: make(map[host.EntityID]*entity),
		windows:  make(map[host.WindowID]host.EntityID),
		cursors:  make(map[host.WindowID]cursor),
		mode:     "normal",
		wd:       wd,
		theme:    make(map[string]host.Attrs),
		defined:  make(map[string]host.Attrs),
	}
}

// Open creates an entity in a new window and focuses it.
func (h *Host) Open(name, filetype string) (host.EntityID, host.WindowID) {
	h.mu.Lock()
	h.nextID++
	eid := host.EntityID(h.nextID)
	wid := host.WindowID(h.nextID)
	h.entities[eid] = &entity{name: name, filetype: filetype}
	h.windows[wid] = eid
	h.cursors[wid] = cursor{line: 1, col: 1, total: 1}
	h.current = wid
	fns := h.focusFns
	h.mu.Unlock()

	for _, fn := range fns {
		fn(eid)
	}
	return eid, wid
}

// Focus switches the current window and fires the focus callback.
func (h *Host) Focus(wid host.WindowID) {
	h.mu.Lock()
	eid, ok := h.windows[wid]
	if ok {
		h.current = wid
	}
	fns := h.focusFns
	h.mu.Unlock()

	if ok {
		for _, fn := range fns {
			fn(eid)
		}
	}
}

// Windows returns every live window handle.
func (h *Host) Windows() []host.WindowID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]host.WindowID, 0, len(h.windows))
	for wid := range h.windows {
		out = append(out, wid)
	}
	return out
}

// SetDiagnostics replaces an entity's diagnostics and fires the callback.
func (h *Host) SetDiagnostics(id host.EntityID, diags []diagnostic.Diagnostic) {
	h.mu.Lock()
	if e, ok := h.entities[id]; ok {
		e.diags = diags
	}
	fns := h.diagFns
	h.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// Destroy removes an entity and its windows and fires the callback.
func (h *Host) Destroy(id host.EntityID) {
	h.mu.Lock()
	delete(h.entities, id)
	for wid, eid := range h.windows {
		if eid == id {
			delete(h.windows, wid)
			delete(h.cursors, wid)
		}
	}
	fns := h.destroyFns
	h.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// SetThemeColor installs a theme color and fires the theme callback.
func (h *Host) SetThemeColor(group string, attrs host.Attrs) {
	h.mu.Lock()
	h.theme[group] = attrs
	fns := h.themeFns
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// SetMode changes the reported editor mode.
func (h *Host) SetMode(mode string) {
	h.mu.Lock()
	h.mode = mode
	h.mu.Unlock()
}

// SetModified flips an entity's modified flag.
func (h *Host) SetModified(id host.EntityID, modified bool) {
	h.mu.Lock()
	if e, ok := h.entities[id]; ok {
		e.modified = modified
	}
	h.mu.Unlock()
}

// SetCursor updates a window's cursor position and entity line count.
func (h *Host) SetCursor(wid host.WindowID, line, col, total int) {
	h.mu.Lock()
	if _, ok := h.windows[wid]; ok {
		if total < 1 {
			total = 1
		}
		h.cursors[wid] = cursor{line: line, col: col, total: total}
	}
	h.mu.Unlock()
}

// SetVar writes one value into an entity's JSON variable store.
func (h *Host) SetVar(id host.EntityID, path string, value any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entities[id]
	if !ok {
		return ErrNoEntity
	}
	doc, err := sjson.SetBytes(e.vars, path, value)
	if err != nil {
		return err
	}
	e.vars = doc
	return nil
}

// Draw renders the statusline for the current window into the bottom row of
// the screen. Other rows are left alone.
func (h *Host) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	if height == 0 || width == 0 {
		return
	}
	row := height - 1

	h.mu.RLock()
	wid := h.current
	render := h.render
	st := h.state(wid)
	h.mu.RUnlock()

	if render == nil {
		return
	}

	cells := Layout(Parse(render(wid), st), width)
	base := h.styleFor("StatusLine")
	for x := 0; x < width; x++ {
		style := base
		r := ' '
		if x < len(cells) {
			r = cells[x].R
			if cells[x].Group != "" {
				style = h.styleFor(cells[x].Group)
			}
		}
		screen.SetContent(x, row, r, nil, style)
	}
	screen.Show()
}

// state assembles the markup substitution state for a window. Caller holds
// at least the read lock.
func (h *Host) state(wid host.WindowID) State {
	st := State{Line: 1, Col: 1, Percent: 100}
	cur, ok := h.cursors[wid]
	if !ok {
		return st
	}
	st.Line = cur.line
	st.Col = cur.col
	st.Percent = cur.line * 100 / cur.total
	if e, ok := h.entities[h.windows[wid]]; ok {
		st.Modified = e.modified
	}
	return st
}

func (h *Host) styleFor(group string) tcell.Style {
	h.mu.RLock()
	attrs, ok := h.defined[group]
	if !ok {
		attrs, ok = h.theme[group]
	}
	h.mu.RUnlock()

	style := tcell.StyleDefault
	if !ok {
		return style.Reverse(true)
	}
	if attrs.Foreground != "" {
		style = style.Foreground(tcell.GetColor(attrs.Foreground))
	}
	if attrs.Background != "" {
		style = style.Background(tcell.GetColor(attrs.Background))
	}
	return style.Bold(attrs.Bold)
}

// --- host.Editor ---

func (h *Host) CurrentWindow() host.WindowID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Host) WindowValid(id host.WindowID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.windows[id]
	return ok
}

func (h *Host) WindowEntity(id host.WindowID) (host.EntityID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eid, ok := h.windows[id]
	if !ok {
		return 0, ErrNoEntity
	}
	return eid, nil
}

func (h *Host) EntityValid(id host.EntityID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.entities[id]
	return ok
}

func (h *Host) EntityName(id host.EntityID) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return "", ErrNoEntity
	}
	return e.name, nil
}

func (h *Host) EntityModified(id host.EntityID) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return false, ErrNoEntity
	}
	return e.modified, nil
}

func (h *Host) EntityOption(id host.EntityID, name string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return "", ErrNoEntity
	}
	if name != "filetype" {
		return "", errors.New("term: unknown option " + name)
	}
	return e.filetype, nil
}

func (h *Host) EntityVars(id host.EntityID) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return nil, ErrNoEntity
	}
	return e.vars, nil
}

func (h *Host) Mode() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode, nil
}

func (h *Host) WorkingDir() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.wd, nil
}

func (h *Host) RegisterStatusline(render func(host.WindowID) string) {
	h.mu.Lock()
	h.render = render
	h.mu.Unlock()
}

// --- diagnostic.Source ---

func (h *Host) Diagnostics(id host.EntityID) ([]diagnostic.Diagnostic, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entities[id]
	if !ok {
		return nil, ErrNoEntity
	}
	return e.diags, nil
}

// --- host.HighlightRegistry ---

func (h *Host) LookupHighlight(group string) (host.Attrs, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if attrs, ok := h.theme[group]; ok {
		return attrs, nil
	}
	attrs, ok := h.defined[group]
	if !ok {
		return host.Attrs{}, errors.New("term: undefined highlight " + group)
	}
	return attrs, nil
}

func (h *Host) DefineHighlight(group string, attrs host.Attrs) error {
	h.mu.Lock()
	h.defined[group] = attrs
	h.mu.Unlock()
	return nil
}

// --- host.Events ---

func (h *Host) OnFocusChange(fn func(host.EntityID)) {
	h.mu.Lock()
	h.focusFns = append(h.focusFns, fn)
	h.mu.Unlock()
}

func (h *Host) OnDiagnosticsChanged(fn func(host.EntityID)) {
	h.mu.Lock()
	h.diagFns = append(h.diagFns, fn)
	h.mu.Unlock()
}

func (h *Host) OnEntityDestroyed(fn func(host.EntityID)) {
	h.mu.Lock()
	h.destroyFns = append(h.destroyFns, fn)
	h.mu.Unlock()
}

func (h *Host) OnThemeChanged(fn func()) {
	h.mu.Lock()
	h.themeFns = append(h.themeFns, fn)
	h.mu.Unlock()
}
