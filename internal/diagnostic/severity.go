// Package diagnostic holds the diagnostic model and the per-entity summary
// cache. Summaries are recomputed only on explicit events, never at render
// time.
package diagnostic

import (
	"github.com/dshills/statline/internal/highlight"
	"github.com/dshills/statline/internal/host"
)

// Severity is a diagnostic severity level. Values match the LSP
// specification's ordered set.
type Severity int

const (
	// SeverityError is the most severe level.
	SeverityError Severity = 1

	// SeverityWarn is a warning.
	SeverityWarn Severity = 2

	// SeverityInfo is informational.
	SeverityInfo Severity = 3

	// SeverityHint is the least severe level.
	SeverityHint Severity = 4
)

// Severities lists the known severities in fixed display order.
var Severities = [...]Severity{SeverityError, SeverityWarn, SeverityInfo, SeverityHint}

// Known reports whether the severity is in the fixed 4-level set.
// Diagnostics outside it are dropped from summaries.
func (s Severity) Known() bool {
	return s >= SeverityError && s <= SeverityHint
}

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Role returns the highlight role that decorates this severity's count.
func (s Severity) Role() highlight.Role {
	switch s {
	case SeverityError:
		return highlight.RoleError
	case SeverityWarn:
		return highlight.RoleWarn
	case SeverityInfo:
		return highlight.RoleInfo
	case SeverityHint:
		return highlight.RoleHint
	default:
		return highlight.RoleInfo
	}
}

// DefaultSymbols maps each severity to its default summary symbol.
func DefaultSymbols() map[Severity]string {
	return map[Severity]string{
		SeverityError: "E",
		SeverityWarn:  "W",
		SeverityInfo:  "I",
		SeverityHint:  "H",
	}
}

// Diagnostic is one diagnostic attached to an entity. Only the severity is
// relevant to rendering; message and source are carried for hosts that
// expose them elsewhere.
type Diagnostic struct {
	Severity Severity
	Message  string
	Source   string
}

// Source enumerates the current diagnostics for an entity.
type Source interface {
	Diagnostics(id host.EntityID) ([]Diagnostic, error)
}
