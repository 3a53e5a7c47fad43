// Package config provides the typed statusline configuration, file loading
// (TOML, YAML, or Lua), and live reload.
package config

import (
	"github.com/dshills/statline/internal/diagnostic"
	"github.com/dshills/statline/internal/layout"
	"github.com/dshills/statline/internal/segment"
)

// Config is the statusline configuration surface. The three buckets hold
// segment names in display order; a nil bucket means "use the default
// layout for this bucket", while an empty one means "render nothing here".
type Config struct {
	Left   []string `toml:"left" yaml:"left"`
	Middle []string `toml:"middle" yaml:"middle"`
	Right  []string `toml:"right" yaml:"right"`

	// Symbols overrides the diagnostic summary symbols, keyed by severity
	// name ("error", "warn", "info", "hint").
	Symbols map[string]string `toml:"symbols" yaml:"symbols"`

	// DashboardFiletype names the filetype whose windows suppress the
	// position segment.
	DashboardFiletype string `toml:"dashboard_filetype" yaml:"dashboard_filetype"`

	// VCSPrefix precedes the branch label in the vcs segment.
	VCSPrefix string `toml:"vcs_prefix" yaml:"vcs_prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DashboardFiletype: "dashboard",
		VCSPrefix:         "git:",
	}
}

// Normalize drops unrecognized segment names from the buckets and fills
// zero-valued knobs with their defaults. Unknown names are ignored rather
// than rejected, so a config written for a newer engine still loads.
func (c *Config) Normalize() {
	c.Left = keepRecognized(c.Left)
	c.Middle = keepRecognized(c.Middle)
	c.Right = keepRecognized(c.Right)

	def := Default()
	if c.DashboardFiletype == "" {
		c.DashboardFiletype = def.DashboardFiletype
	}
	if c.VCSPrefix == "" {
		c.VCSPrefix = def.VCSPrefix
	}
}

// Order converts the buckets into a layout order, substituting the default
// bucket for any left unspecified.
func (c *Config) Order() layout.Order {
	def := layout.DefaultOrder()
	return layout.Order{
		Left:   bucketOrDefault(c.Left, def.Left),
		Middle: bucketOrDefault(c.Middle, def.Middle),
		Right:  bucketOrDefault(c.Right, def.Right),
	}
}

// SeveritySymbols converts the symbol overrides into severity keys.
// Unknown severity names and empty symbols are dropped.
func (c *Config) SeveritySymbols() map[diagnostic.Severity]string {
	if len(c.Symbols) == 0 {
		return nil
	}

	bySev := map[string]diagnostic.Severity{
		"error": diagnostic.SeverityError,
		"warn":  diagnostic.SeverityWarn,
		"info":  diagnostic.SeverityInfo,
		"hint":  diagnostic.SeverityHint,
	}

	out := make(map[diagnostic.Severity]string, len(c.Symbols))
	for name, sym := range c.Symbols {
		if sev, ok := bySev[name]; ok && sym != "" {
			out[sev] = sym
		}
	}
	return out
}

func keepRecognized(names []string) []string {
	if names == nil {
		return nil
	}
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if segment.Name(name).Recognized() {
			kept = append(kept, name)
		}
	}
	return kept
}

func bucketOrDefault(bucket []string, def []segment.Name) []segment.Name {
	if bucket == nil {
		return def
	}
	names := make([]segment.Name, 0, len(bucket))
	for _, name := range bucket {
		names = append(names, segment.Name(name))
	}
	return names
}
