package segment

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/statline/internal/highlight"
	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/vcs"
)

var upper = cases.Upper(language.Und)

// Mode renders the uppercased editor mode, padded and wrapped in the Mode
// highlight role.
func Mode(ctx Context) string {
	mode := host.Query("mode", "", ctx.Editor.Mode)
	return ctx.Markup.Highlight(highlight.RoleMode.Group()) +
		" " + upper.String(mode) + " " +
		ctx.Markup.Reset()
}

// Filepath renders the entity's directory, home- and cwd-relative where
// possible, followed by the path separator. The fragment is marked as the
// truncation point so the host shortens here rather than mid-path. An
// untitled entity renders a single space.
func Filepath(ctx Context) string {
	name := entityName(ctx)
	if name == "" {
		return " "
	}
	dir := Relativize(filepath.Dir(name), workingDir(ctx), homeDir())
	return ctx.Markup.Truncate() + dir + string(filepath.Separator)
}

// Filename renders the base name with the host's modified indicator, or
// nothing for an unnamed entity.
func Filename(ctx Context) string {
	name := entityName(ctx)
	if name == "" {
		return ""
	}
	return filepath.Base(name) + ctx.Markup.Modified() + " "
}

// Diagnostics reads the precomputed summary from the cache. It never
// enumerates diagnostics itself.
func Diagnostics(ctx Context) string {
	if ctx.Summaries == nil {
		return ""
	}
	return ctx.Summaries.Get(ctx.Entity)
}

// VCS combines the branch label with the diff-stat built from the entity's
// VCS summary. When the branch provider has nothing, the summary's origin
// label stands in. Both absent renders nothing.
func VCS(ctx Context) string {
	var branch string
	if ctx.Branch != nil {
		branch = host.Query("branch", "", func() (string, error) {
			return ctx.Branch.Branch(ctx.Entity)
		})
	}

	vars := host.Query("entity vars", nil, func() ([]byte, error) {
		return ctx.Editor.EntityVars(ctx.Entity)
	})
	summary, hasSummary := vcs.ParseSummary(vars)

	diffstat, ok := vcs.PrecomputedStatus(vars)
	if !ok && hasSummary {
		diffstat = summary.DiffStat()
	}

	label := branch
	if label == "" && hasSummary {
		label = summary.Head
	}
	if label == "" && diffstat == "" {
		return ""
	}

	frag := " " + ctx.VCSPrefix + label + " "
	if diffstat != "" {
		frag += diffstat + " "
	}
	return frag
}

// Filetype renders the uppercased filetype label, or nothing when unset.
func Filetype(ctx Context) string {
	ft := filetype(ctx)
	if ft == "" {
		return ""
	}
	return " " + upper.String(ft) + " "
}

// Position renders the host's percent/line/column template. Dashboard-like
// entities suppress it entirely.
func Position(ctx Context) string {
	if ctx.DashboardFiletype != "" && filetype(ctx) == ctx.DashboardFiletype {
		return ""
	}
	return ctx.Markup.Ruler()
}

// Bufnr renders the entity handle, for layouts that want it.
func Bufnr(ctx Context) string {
	if !ctx.Entity.Valid() {
		return ""
	}
	return " " + strconv.Itoa(int(ctx.Entity)) + " "
}

// Relativize rewrites path relative to cwd when it lies inside it,
// otherwise relative to home with a "~" prefix, otherwise unchanged.
func Relativize(path, cwd, home string) string {
	sep := string(filepath.Separator)

	if cwd != "" {
		if rel, err := filepath.Rel(cwd, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+sep) {
			return rel
		}
	}
	if home != "" {
		if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
			if rel == "." {
				return "~"
			}
			return "~" + sep + rel
		}
	}
	return path
}

func entityName(ctx Context) string {
	return host.Query("entity name", "", func() (string, error) {
		return ctx.Editor.EntityName(ctx.Entity)
	})
}

func filetype(ctx Context) string {
	return host.Query("filetype", "", func() (string, error) {
		return ctx.Editor.EntityOption(ctx.Entity, "filetype")
	})
}

func workingDir(ctx Context) string {
	return host.Query("working dir", "", func() (string, error) {
		return ctx.Editor.WorkingDir()
	})
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
