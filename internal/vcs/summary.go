// Package vcs models the externally computed version-control summary the
// statusline consumes, plus a reference branch label provider. The engine
// never runs diffs itself; it only reads what the host's VCS integration
// has already written into the entity variable store.
package vcs

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Variable store paths.
const (
	// VarSummary is the entity variable holding the VCS summary object.
	VarSummary = "vcs"

	// VarStatus is the optional precomputed diff-stat string. When present
	// it is displayed as-is instead of formatting the counts.
	VarStatus = "vcs.status"
)

// Summary is the per-entity record written by the host's VCS integration.
// Counts are never negative; a missing record means the file is untracked.
type Summary struct {
	// Head is the origin label, typically the checked-out ref.
	Head string

	// Added is the number of added lines.
	Added int

	// Changed is the number of changed lines.
	Changed int

	// Removed is the number of removed lines.
	Removed int
}

// ParseSummary reads the summary from an entity's variable store document.
// The second return is false when no summary has been written.
func ParseSummary(vars []byte) (Summary, bool) {
	v := gjson.GetBytes(vars, VarSummary)
	if !v.Exists() {
		return Summary{}, false
	}
	return Summary{
		Head:    v.Get("head").String(),
		Added:   clampCount(v.Get("added").Int()),
		Changed: clampCount(v.Get("changed").Int()),
		Removed: clampCount(v.Get("removed").Int()),
	}, true
}

// PrecomputedStatus reads the host-provided diff-stat string, if any.
func PrecomputedStatus(vars []byte) (string, bool) {
	v := gjson.GetBytes(vars, VarStatus)
	if !v.Exists() {
		return "", false
	}
	return v.String(), true
}

// DiffStat renders the counts as "+N ~N -N", space-joined, omitting zero
// counts. All-zero counts render as the empty string.
func (s Summary) DiffStat() string {
	parts := make([]string, 0, 3)
	if s.Added > 0 {
		parts = append(parts, "+"+strconv.Itoa(s.Added))
	}
	if s.Changed > 0 {
		parts = append(parts, "~"+strconv.Itoa(s.Changed))
	}
	if s.Removed > 0 {
		parts = append(parts, "-"+strconv.Itoa(s.Removed))
	}
	return strings.Join(parts, " ")
}

func clampCount(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
