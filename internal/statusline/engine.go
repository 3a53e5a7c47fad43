// Package statusline wires the segment providers, diagnostic summary cache,
// highlight resolver, and layout assembler into the render entry point the
// host invokes on every redraw.
package statusline

import (
	"context"
	"errors"
	"sync"

	"github.com/dshills/statline/internal/config"
	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/event"
	"github.com/dshills/statline/internal/event/events"
	"github.com/dshills/statline/internal/highlight"
	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/layout"
	"github.com/dshills/statline/internal/log"
	"github.com/dshills/statline/internal/segment"
	"github.com/dshills/statline/internal/vcs"
)

// Engine construction errors.
var (
	ErrNoEditor      = errors.New("statusline: editor is required")
	ErrNoDiagnostics = errors.New("statusline: diagnostic source is required")
)

// Options configures an Engine. Editor and Diagnostics are required; the
// rest default to sensible implementations.
type Options struct {
	// Editor is the host introspection surface.
	Editor host.Editor

	// Diagnostics enumerates an entity's current diagnostics. It is read
	// only inside cache updates, never during a render.
	Diagnostics diagnostic.Source

	// Registry is the host highlight table. Nil disables highlight
	// resolution; segments still emit group markers.
	Registry host.HighlightRegistry

	// Branch supplies VCS branch labels. Nil defaults to the exec-based
	// git provider.
	Branch host.BranchProvider

	// Events is the host lifecycle surface. Nil means the embedder drives
	// the bus itself.
	Events host.Events

	// Markup renders host escape sequences. Nil defaults to vim-flavored
	// markup.
	Markup host.Markup

	// Bus carries lifecycle events between the host adapter and the
	// engine's handlers. Nil creates a private bus.
	Bus event.Bus

	// Config is the initial layout configuration. Nil uses the defaults.
	Config *config.Config

	// Logger receives setup and reload diagnostics. Nil discards them.
	Logger *log.Logger
}

// Engine is the statusline engine. One engine serves every window of its
// host; per-window state is resolved at render time from the window handle.
type Engine struct {
	ed       host.Editor
	src      diagnostic.Source
	reg      host.HighlightRegistry
	branch   host.BranchProvider
	markup   host.Markup
	bus      event.Bus
	resolver *highlight.Resolver
	asm      *layout.Assembler
	log      *log.Logger

	// mu guards the reloadable state below. Renders take the read side;
	// only config reloads take the write side.
	mu                sync.RWMutex
	cache             *diagnostic.SummaryCache
	order             layout.Order
	dashboardFiletype string
	vcsPrefix         string
}

// New builds a fully wired engine: highlights resolved, event handlers
// subscribed, host callbacks bound, and the render entry point registered.
func New(opts Options) (*Engine, error) {
	if opts.Editor == nil {
		return nil, ErrNoEditor
	}
	if opts.Diagnostics == nil {
		return nil, ErrNoDiagnostics
	}
	if opts.Markup == nil {
		opts.Markup = host.VimMarkup{}
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Branch == nil {
		opts.Branch = vcs.NewGitBranch(opts.Editor)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	opts.Config.Normalize()
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}

	e := &Engine{
		ed:     opts.Editor,
		src:    opts.Diagnostics,
		reg:    opts.Registry,
		branch: opts.Branch,
		markup: opts.Markup,
		bus:    opts.Bus,
		asm:    layout.NewAssembler(opts.Markup),
		log:    opts.Logger.WithComponent("engine"),
	}
	if opts.Registry != nil {
		e.resolver = highlight.NewResolver(opts.Registry)
		e.resolver.ResolveAll()
	}

	e.applyConfig(opts.Config)

	if err := e.subscribe(); err != nil {
		return nil, err
	}
	if opts.Events != nil {
		e.bindHost(opts.Events)
	}

	// Prime the cache for whatever is already focused; later entities
	// arrive through focus events.
	if eid := e.focusedEntity(); eid.Valid() {
		e.summaries().Update(eid)
	}

	e.ed.RegisterStatusline(e.Render)
	e.log.Info("engine ready")
	return e, nil
}

// Render is the host-invoked entry point. It renders the statusline for one
// window: the full configured layout for the focused window, the minimal
// path-only line for any other, and the empty string for a window that no
// longer exists or has no live entity.
func (e *Engine) Render(win host.WindowID) string {
	if !win.Valid() || !e.ed.WindowValid(win) {
		return ""
	}

	eid := host.Query("window entity", host.EntityID(0), func() (host.EntityID, error) {
		return e.ed.WindowEntity(win)
	})
	if !eid.Valid() || !e.ed.EntityValid(eid) {
		return ""
	}

	ctx, order := e.snapshot(eid)
	if win != e.ed.CurrentWindow() {
		return e.asm.RenderInactive(ctx)
	}
	return e.asm.RenderActive(ctx, order)
}

// ApplyConfig installs a new configuration. The layout order swaps
// atomically with respect to renders; the summary cache is rebuilt so new
// symbols take effect, and the focused entity is recomputed immediately.
// Other entities repopulate on their next focus or diagnostics event.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	cfg.Normalize()
	e.applyConfig(cfg)

	if eid := e.focusedEntity(); eid.Valid() {
		e.summaries().Update(eid)
	}
	e.log.Info("configuration applied")
}

// WatchConfig reloads the engine's configuration whenever the file at path
// changes, then announces the reload on the bus. The caller owns the
// returned watcher and must close it on shutdown.
func (e *Engine) WatchConfig(path string) (*config.Watcher, error) {
	return config.NewWatcher(path,
		func(cfg *config.Config) {
			e.ApplyConfig(cfg)
			_ = e.bus.Publish(context.Background(), events.ConfigChanged{Path: path})
		},
		func(err error) {
			e.log.Error("config reload failed: %v", err)
		},
	)
}

// Bus returns the engine's event bus, for hosts that publish lifecycle
// events directly instead of through a host.Events binding.
func (e *Engine) Bus() event.Bus {
	return e.bus
}

func (e *Engine) applyConfig(cfg *config.Config) {
	cache := diagnostic.NewSummaryCache(e.ed, e.src, e.markup,
		diagnostic.WithSymbols(cfg.SeveritySymbols()))

	e.mu.Lock()
	e.cache = cache
	e.order = cfg.Order()
	e.dashboardFiletype = cfg.DashboardFiletype
	e.vcsPrefix = cfg.VCSPrefix
	e.mu.Unlock()
}

func (e *Engine) summaries() *diagnostic.SummaryCache {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache
}

func (e *Engine) snapshot(eid host.EntityID) (segment.Context, layout.Order) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return segment.Context{
		Entity:            eid,
		Editor:            e.ed,
		Markup:            e.markup,
		Branch:            e.branch,
		Summaries:         e.cache,
		DashboardFiletype: e.dashboardFiletype,
		VCSPrefix:         e.vcsPrefix,
	}, e.order
}

func (e *Engine) focusedEntity() host.EntityID {
	win := e.ed.CurrentWindow()
	if !win.Valid() || !e.ed.WindowValid(win) {
		return 0
	}
	return host.Query("window entity", host.EntityID(0), func() (host.EntityID, error) {
		return e.ed.WindowEntity(win)
	})
}
