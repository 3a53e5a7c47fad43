// Package main is an interactive terminal demo for the statusline engine.
// It opens the files named on the command line in an in-memory host and
// maps keys to the host mutations the engine reacts to.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	xterm "golang.org/x/term"

	"github.com/dshills/statline/internal/config"
	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/host/term"
	"github.com/dshills/statline/internal/log"
	"github.com/dshills/statline/internal/statusline"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var configPath, logLevel string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Println("statline", version)
		return 0
	}

	if !xterm.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: the demo requires a terminal")
		return 1
	}

	logger, closeLog := openLogger(logLevel)
	defer closeLog()

	wd, err := os.Getwd()
	if err != nil {
		wd = "/"
	}
	h := term.NewHost(wd)

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	eng, err := statusline.New(statusline.Options{
		Editor:      h,
		Diagnostics: h,
		Registry:    h,
		Events:      h,
		Config:      cfg,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if configPath != "" {
		w, err := eng.WatchConfig(configPath)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	for _, arg := range flag.Args() {
		abs, err := filepath.Abs(arg)
		if err != nil {
			abs = arg
		}
		h.Open(abs, filetypeOf(abs))
	}
	if len(flag.Args()) == 0 {
		h.Open("", "")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	loop(screen, h)
	return 0
}

type demoState struct {
	line, col int
	dark      bool
}

// loop runs the demo event loop until q or Ctrl-C.
func loop(screen tcell.Screen, h *term.Host) {
	states := map[host.WindowID]*demoState{}
	h.Draw(screen)

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !handleKey(ev, h, states) {
				return
			}
		default:
			continue
		}
		h.Draw(screen)
	}
}

func handleKey(ev *tcell.EventKey, h *term.Host, states map[host.WindowID]*demoState) bool {
	wid := h.CurrentWindow()
	eid, _ := h.WindowEntity(wid)
	st, ok := states[wid]
	if !ok {
		st = &demoState{line: 1, col: 1}
		states[wid] = st
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		h.SetMode("normal")
		return true
	case tcell.KeyTab:
		focusNext(h, wid)
		return true
	case tcell.KeyUp:
		if st.line > 1 {
			st.line--
		}
	case tcell.KeyDown:
		st.line++
	case tcell.KeyLeft:
		if st.col > 1 {
			st.col--
		}
	case tcell.KeyRight:
		st.col++
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'i':
			h.SetMode("insert")
		case 'v':
			h.SetMode("visual")
		case 'e':
			addDiagnostic(h, eid, diagnostic.SeverityError)
		case 'w':
			addDiagnostic(h, eid, diagnostic.SeverityWarn)
		case 'n':
			addDiagnostic(h, eid, diagnostic.SeverityInfo)
		case 'h':
			addDiagnostic(h, eid, diagnostic.SeverityHint)
		case 'x':
			h.SetDiagnostics(eid, nil)
		case 'm':
			toggleModified(h, eid)
		case 't':
			st.dark = !st.dark
			toggleTheme(h, st.dark)
		case 'd':
			h.Destroy(eid)
		}
	}

	h.SetCursor(wid, st.line, st.col, st.line+20)
	return true
}

func focusNext(h *term.Host, current host.WindowID) {
	wids := h.Windows()
	if len(wids) < 2 {
		return
	}
	sort.Slice(wids, func(i, j int) bool { return wids[i] < wids[j] })
	for i, wid := range wids {
		if wid == current {
			h.Focus(wids[(i+1)%len(wids)])
			return
		}
	}
	h.Focus(wids[0])
}

func addDiagnostic(h *term.Host, eid host.EntityID, sev diagnostic.Severity) {
	diags, err := h.Diagnostics(eid)
	if err != nil {
		return
	}
	h.SetDiagnostics(eid, append(diags, diagnostic.Diagnostic{Severity: sev, Source: "demo"}))
}

func toggleModified(h *term.Host, eid host.EntityID) {
	modified, err := h.EntityModified(eid)
	if err != nil {
		return
	}
	h.SetModified(eid, !modified)
}

func toggleTheme(h *term.Host, dark bool) {
	if dark {
		h.SetThemeColor("StatusLine", host.Attrs{Background: "#16161e"})
		h.SetThemeColor("Function", host.Attrs{Foreground: "#bb9af7"})
		h.SetThemeColor("DiagnosticError", host.Attrs{Foreground: "#f7768e"})
		return
	}
	h.SetThemeColor("StatusLine", host.Attrs{Background: "#1f2335"})
	h.SetThemeColor("Function", host.Attrs{Foreground: "#7aa2f7"})
	h.SetThemeColor("DiagnosticError", host.Attrs{Foreground: "#db4b4b"})
}

// openLogger writes engine logs to a file in the temp dir; stderr belongs
// to the screen while the demo runs.
func openLogger(level string) (*log.Logger, func()) {
	f, err := os.Create(filepath.Join(os.TempDir(), "statline.log"))
	if err != nil {
		return log.Nop(), func() {}
	}
	return log.New(f, log.ParseLevel(level)), func() { _ = f.Close() }
}

func filetypeOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
