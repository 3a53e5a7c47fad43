// Package topic provides hierarchical event topics with wildcard matching.
package topic

import "strings"

// Topic represents a hierarchical event type using dot notation.
// Examples: "statusline.entity.focused", "statusline.theme.changed".
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator is the character used to separate topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Base returns the last segment of the topic.
//
// Example: "statusline.entity.focused" -> "focused"
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// IsPattern reports whether the topic contains wildcards.
func (t Topic) IsPattern() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// Match reports whether the concrete topic t matches the given pattern.
// Patterns may use "*" for exactly one segment and "**" for zero or more.
func Match(pattern, t Topic) bool {
	return matchSegments(pattern.Segments(), t.Segments())
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}

	if pattern[0] == WildcardMulti {
		// "**" absorbs zero segments, or one and retries.
		if matchSegments(pattern[1:], segs) {
			return true
		}
		if len(segs) > 0 {
			return matchSegments(pattern, segs[1:])
		}
		return false
	}

	if len(segs) == 0 {
		return false
	}
	if pattern[0] != WildcardSingle && pattern[0] != segs[0] {
		return false
	}
	return matchSegments(pattern[1:], segs[1:])
}
