// Package highlight resolves the statusline's semantic color roles against
// the host's active theme and writes the derived highlight groups into the
// host registry.
package highlight

// Role is a semantic color target on the statusline.
type Role int

const (
	// RoleMode colors the mode indicator block.
	RoleMode Role = iota

	// RoleError colors error counts in the diagnostics segment.
	RoleError

	// RoleWarn colors warning counts.
	RoleWarn

	// RoleInfo colors info counts.
	RoleInfo

	// RoleHint colors hint counts.
	RoleHint
)

// Roles lists every role the resolver derives, in definition order.
var Roles = [...]Role{RoleMode, RoleError, RoleWarn, RoleInfo, RoleHint}

// BaseGroup is the host highlight group whose background all derived
// groups inherit.
const BaseGroup = "StatusLine"

// FallbackBg is used when the theme defines no usable StatusLine background.
const FallbackBg = "#1f2335"

// Group returns the derived highlight group name written to the registry.
func (r Role) Group() string {
	switch r {
	case RoleMode:
		return "StatuslineMode"
	case RoleError:
		return "StatuslineError"
	case RoleWarn:
		return "StatuslineWarn"
	case RoleInfo:
		return "StatuslineInfo"
	case RoleHint:
		return "StatuslineHint"
	default:
		return "Statusline"
	}
}

// Source returns the theme group whose foreground the role borrows.
func (r Role) Source() string {
	switch r {
	case RoleMode:
		return "Function"
	case RoleError:
		return "DiagnosticError"
	case RoleWarn:
		return "DiagnosticWarn"
	case RoleInfo:
		return "DiagnosticInfo"
	case RoleHint:
		return "DiagnosticHint"
	default:
		return BaseGroup
	}
}

// FallbackFg returns the fixed foreground used when the theme provides
// nothing usable for the role's source group.
func (r Role) FallbackFg() string {
	switch r {
	case RoleMode:
		return "#7aa2f7"
	case RoleError:
		return "#db4b4b"
	case RoleWarn:
		return "#e0af68"
	case RoleInfo:
		return "#0db9d7"
	case RoleHint:
		return "#1abc9c"
	default:
		return "#c0caf5"
	}
}
