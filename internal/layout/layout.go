// Package layout orders segments around alignment breakpoints and
// assembles the final statusline string.
package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/statline/internal/host"
	"github.com/dshills/statline/internal/segment"
)

// Order groups segment names into the three alignment buckets. The host
// renderer distributes remaining space at the two breakpoints between them.
type Order struct {
	Left   []segment.Name
	Middle []segment.Name
	Right  []segment.Name
}

// DefaultOrder returns the built-in layout.
func DefaultOrder() Order {
	return Order{
		Left: []segment.Name{
			segment.NameMode,
			segment.NameFilepath,
			segment.NameFilename,
			segment.NameDiagnostics,
		},
		Right: []segment.Name{
			segment.NameVCS,
			segment.NameFiletype,
			segment.NamePosition,
		},
	}
}

// Assembler concatenates provider fragments into the final line.
type Assembler struct {
	providers map[segment.Name]segment.Provider
	markup    host.Markup
}

// NewAssembler creates an assembler over the full provider table.
func NewAssembler(markup host.Markup) *Assembler {
	return &Assembler{
		providers: segment.Providers(),
		markup:    markup,
	}
}

// RenderActive assembles the full layout for the focused window:
// left bucket, breakpoint, middle bucket, breakpoint, right bucket.
// Unrecognized names in the order are skipped without error.
func (a *Assembler) RenderActive(ctx segment.Context, order Order) string {
	var b strings.Builder
	a.renderBucket(&b, ctx, order.Left)
	b.WriteString(a.markup.AlignBreak())
	a.renderBucket(&b, ctx, order.Middle)
	b.WriteString(a.markup.AlignBreak())
	a.renderBucket(&b, ctx, order.Right)
	return b.String()
}

// RenderInactive assembles the minimal layout for unfocused windows: the
// entity's path with no decoration, regardless of configuration.
func (a *Assembler) RenderInactive(ctx segment.Context) string {
	name := host.Query("entity name", "", func() (string, error) {
		return ctx.Editor.EntityName(ctx.Entity)
	})
	if name == "" {
		return " "
	}

	cwd := host.Query("working dir", "", ctx.Editor.WorkingDir)
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	dir := segment.Relativize(filepath.Dir(name), cwd, home)
	return " " + dir + string(filepath.Separator) + filepath.Base(name) + " "
}

func (a *Assembler) renderBucket(b *strings.Builder, ctx segment.Context, names []segment.Name) {
	for _, name := range names {
		provider, ok := a.providers[name]
		if !ok {
			continue
		}
		b.WriteString(provider(ctx))
	}
}
