package segment_test

import (
	"strings"
	"testing"

	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/host/hosttest"
	"github.com/dshills/statline/internal/segment"
)

func newContext(h *hosttest.Host, eid host.EntityID) segment.Context {
	return segment.Context{
		Entity:            eid,
		Editor:            h,
		Markup:            host.VimMarkup{},
		Branch:            h,
		Summaries:         diagnostic.NewSummaryCache(h, h, host.VimMarkup{}),
		DashboardFiletype: "dashboard",
		VCSPrefix:         "git:",
	}
}

func TestMode(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/x.go", "go")
	h.SetMode("insert")

	got := segment.Mode(newContext(h, eid))
	want := "%#StatuslineMode# INSERT %*"
	if got != want {
		t.Errorf("Mode() = %q, want %q", got, want)
	}
}

func TestFilepath(t *testing.T) {
	h := hosttest.New()
	h.SetWorkingDir("/home/u")
	eid, _ := h.Open("/home/u/project/file.lua", "lua")

	got := segment.Filepath(newContext(h, eid))
	if !strings.HasSuffix(got, "project/") {
		t.Errorf("Filepath() = %q, want suffix %q", got, "project/")
	}
	if !strings.HasPrefix(got, "%<") {
		t.Errorf("Filepath() = %q, want truncation marker prefix", got)
	}
}

func TestFilepath_Untitled(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("", "")

	if got := segment.Filepath(newContext(h, eid)); got != " " {
		t.Errorf("Filepath() = %q, want single space", got)
	}
}

func TestFilename(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/home/u/project/file.lua", "lua")

	got := segment.Filename(newContext(h, eid))
	want := "file.lua%m "
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFilename_Untitled(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("", "")

	if got := segment.Filename(newContext(h, eid)); got != "" {
		t.Errorf("Filename() = %q, want empty", got)
	}
}

func TestDiagnostics_ReadsCacheOnly(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/x.go", "go")
	ctx := newContext(h, eid)

	h.SetDiagnostics(eid, []diagnostic.Diagnostic{{Severity: diagnostic.SeverityError}})

	// No cache update has run, so the provider must see nothing.
	if got := segment.Diagnostics(ctx); got != "" {
		t.Errorf("Diagnostics() = %q, want empty before cache update", got)
	}

	ctx.Summaries.Update(eid)
	if got := segment.Diagnostics(ctx); !strings.Contains(got, " E 1 ") {
		t.Errorf("Diagnostics() = %q, want error fragment", got)
	}
}

func TestVCS(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/repo/file.go", "go")
	ctx := newContext(h, eid)

	h.SetBranch(eid, "main")
	if err := h.SetVar(eid, "vcs.head", "origin/main"); err != nil {
		t.Fatal(err)
	}
	h.SetVar(eid, "vcs.added", 5)
	h.SetVar(eid, "vcs.changed", 2)

	got := segment.VCS(ctx)
	want := " git:main +5 ~2 "
	if got != want {
		t.Errorf("VCS() = %q, want %q", got, want)
	}
}

func TestVCS_OriginLabelFallback(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/repo/file.go", "go")
	ctx := newContext(h, eid)

	h.SetVar(eid, "vcs.head", "upstream")
	h.SetVar(eid, "vcs.removed", 3)

	got := segment.VCS(ctx)
	want := " git:upstream -3 "
	if got != want {
		t.Errorf("VCS() = %q, want %q", got, want)
	}
}

func TestVCS_PrecomputedStatusWins(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/repo/file.go", "go")
	ctx := newContext(h, eid)

	h.SetBranch(eid, "main")
	h.SetVar(eid, "vcs.head", "origin/main")
	h.SetVar(eid, "vcs.added", 9)
	h.SetVar(eid, "vcs.status", "+1")

	got := segment.VCS(ctx)
	want := " git:main +1 "
	if got != want {
		t.Errorf("VCS() = %q, want %q", got, want)
	}
}

func TestVCS_BranchOnly(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/repo/file.go", "go")
	ctx := newContext(h, eid)

	h.SetBranch(eid, "main")

	got := segment.VCS(ctx)
	want := " git:main "
	if got != want {
		t.Errorf("VCS() = %q, want %q", got, want)
	}
}

func TestVCS_NothingAvailable(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/file.txt", "text")
	ctx := newContext(h, eid)

	if got := segment.VCS(ctx); got != "" {
		t.Errorf("VCS() = %q, want empty", got)
	}
}

func TestFiletype(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/file.lua", "lua")

	got := segment.Filetype(newContext(h, eid))
	if got != " LUA " {
		t.Errorf("Filetype() = %q, want %q", got, " LUA ")
	}
}

func TestFiletype_Unset(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/file", "")

	if got := segment.Filetype(newContext(h, eid)); got != "" {
		t.Errorf("Filetype() = %q, want empty", got)
	}
}

func TestPosition(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/file.lua", "lua")

	got := segment.Position(newContext(h, eid))
	if got != " %p%% %l:%c " {
		t.Errorf("Position() = %q, want ruler template", got)
	}
}

func TestPosition_DashboardSuppressed(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("", "dashboard")

	if got := segment.Position(newContext(h, eid)); got != "" {
		t.Errorf("Position() = %q, want empty for dashboard filetype", got)
	}
}

func TestBufnr(t *testing.T) {
	h := hosttest.New()
	eid, _ := h.Open("/tmp/file.lua", "lua")

	got := segment.Bufnr(newContext(h, eid))
	want := " 1 "
	if got != want {
		t.Errorf("Bufnr() = %q, want %q", got, want)
	}

	if got := segment.Bufnr(newContext(h, 0)); got != "" {
		t.Errorf("Bufnr() = %q, want empty for invalid handle", got)
	}
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		name string
		path string
		cwd  string
		home string
		want string
	}{
		{"inside cwd", "/home/u/project/sub", "/home/u/project", "/home/u", "sub"},
		{"cwd itself", "/home/u/project", "/home/u/project", "/home/u", "."},
		{"outside cwd inside home", "/home/u/other", "/home/u/project", "/home/u", "~/other"},
		{"home itself", "/home/u", "/home/u/project", "/home/u", "~"},
		{"outside both", "/etc/nginx", "/home/u/project", "/home/u", "/etc/nginx"},
		{"no cwd no home", "/var/log", "", "", "/var/log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segment.Relativize(tt.path, tt.cwd, tt.home); got != tt.want {
				t.Errorf("Relativize(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRecognized(t *testing.T) {
	if !segment.Name("vcs").Recognized() {
		t.Error("vcs should be recognized")
	}
	if segment.Name("clock").Recognized() {
		t.Error("clock should not be recognized")
	}
}

func TestProviders_CoversAllNames(t *testing.T) {
	providers := segment.Providers()
	for _, name := range segment.Names {
		if _, ok := providers[name]; !ok {
			t.Errorf("no provider for %q", name)
		}
	}
}
