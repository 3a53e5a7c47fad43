package highlight

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/statline/internal/host"
)

// Resolver derives the statusline highlight groups from the host's current
// theme. It holds no state between runs, so ResolveAll is idempotent and
// safe to call at any time, including before any entity exists.
type Resolver struct {
	reg host.HighlightRegistry
}

// NewResolver creates a resolver writing into the given registry.
func NewResolver(reg host.HighlightRegistry) *Resolver {
	return &Resolver{reg: reg}
}

// ResolveAll re-reads the theme and rewrites all derived groups. Each
// derived group gets the source group's foreground (or the role fallback),
// the StatusLine background, and bold set.
func (r *Resolver) ResolveAll() {
	base := host.Query("lookup "+BaseGroup, host.Attrs{}, func() (host.Attrs, error) {
		return r.reg.LookupHighlight(BaseGroup)
	})
	bg := normalizeHex(base.Background, FallbackBg)

	for _, role := range Roles {
		src := host.Query("lookup "+role.Source(), host.Attrs{}, func() (host.Attrs, error) {
			return r.reg.LookupHighlight(role.Source())
		})
		fg := normalizeHex(src.Foreground, role.FallbackFg())

		// Registry write failures degrade to a statusline without that
		// color, never an error.
		_ = host.Query("define "+role.Group(), struct{}{}, func() (struct{}, error) {
			return struct{}{}, r.reg.DefineHighlight(role.Group(), host.Attrs{
				Foreground: fg,
				Background: bg,
				Bold:       true,
			})
		})
	}
}

// normalizeHex parses a theme color and returns it in canonical "#rrggbb"
// form, substituting the fallback for anything unparseable.
func normalizeHex(hex, fallback string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c.Hex()
}
