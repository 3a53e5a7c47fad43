// Package segment implements the statusline segment providers. Each
// provider is a pure function from entity context to a display fragment;
// anything expensive (diagnostic summaries, branch labels) is read from
// caches populated elsewhere, never computed here.
package segment

import (
	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/host"
)

// Name identifies a segment in layout configuration.
type Name string

// Recognized segment names.
const (
	NameMode        Name = "mode"
	NameFilepath    Name = "filepath"
	NameFilename    Name = "filename"
	NameDiagnostics Name = "diagnostics"
	NameVCS         Name = "vcs"
	NameFiletype    Name = "filetype"
	NamePosition    Name = "position"
	NameBufnr       Name = "bufnr"
)

// Names lists every recognized segment name.
var Names = [...]Name{
	NameMode,
	NameFilepath,
	NameFilename,
	NameDiagnostics,
	NameVCS,
	NameFiletype,
	NamePosition,
	NameBufnr,
}

// Recognized reports whether the name maps to a provider.
func (n Name) Recognized() bool {
	for _, known := range Names {
		if n == known {
			return true
		}
	}
	return false
}

// Provider produces one display fragment for the current render. Fragments
// may be empty and may embed markup for the host renderer.
type Provider func(ctx Context) string

// Context carries everything a provider may read during one render. All
// host access goes through the fallible-query guard; a provider that
// cannot get an answer renders an omission.
type Context struct {
	// Entity is the entity the window being rendered is bound to.
	Entity host.EntityID

	// Editor is the host introspection surface.
	Editor host.Editor

	// Markup renders host escape sequences.
	Markup host.Markup

	// Branch supplies the VCS branch label; nil means no VCS integration.
	Branch host.BranchProvider

	// Summaries is the diagnostic summary cache.
	Summaries *diagnostic.SummaryCache

	// DashboardFiletype suppresses the position segment when it matches
	// the entity's filetype.
	DashboardFiletype string

	// VCSPrefix precedes the branch label, e.g. "git:".
	VCSPrefix string
}

// Providers returns the full provider table keyed by segment name.
func Providers() map[Name]Provider {
	return map[Name]Provider{
		NameMode:        Mode,
		NameFilepath:    Filepath,
		NameFilename:    Filename,
		NameDiagnostics: Diagnostics,
		NameVCS:         VCS,
		NameFiletype:    Filetype,
		NamePosition:    Position,
		NameBufnr:       Bufnr,
	}
}
