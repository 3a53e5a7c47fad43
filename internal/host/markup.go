package host

// Markup abstracts the host's statusline escape syntax. Segment providers
// embed these markers in their fragments; the host's renderer interprets
// them when the final line is displayed.
type Markup interface {
	// Highlight switches subsequent text to the named highlight group.
	Highlight(group string) string

	// Reset switches back to the default statusline highlight.
	Reset() string

	// AlignBreak marks a point where the host distributes remaining space.
	AlignBreak() string

	// Modified expands to the host-native modified indicator.
	Modified() string

	// Truncate marks the point where the host may shorten the line.
	Truncate() string

	// Ruler expands to the host-native percent/line/column template.
	Ruler() string
}

// VimMarkup renders vim-flavored statusline escapes, the syntax the engine
// was originally written against.
type VimMarkup struct{}

func (VimMarkup) Highlight(group string) string { return "%#" + group + "#" }
func (VimMarkup) Reset() string                 { return "%*" }
func (VimMarkup) AlignBreak() string            { return "%=" }
func (VimMarkup) Modified() string              { return "%m" }
func (VimMarkup) Truncate() string              { return "%<" }
func (VimMarkup) Ruler() string                 { return " %p%% %l:%c " }
