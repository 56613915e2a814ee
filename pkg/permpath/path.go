package permpath

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// SegmentDelimiter separates the segments of a permission path (e.g., "first.second").
	SegmentDelimiter = "."

	// ArgumentDelimiter separates the path from its optional argument (e.g., "first.second:someArg").
	ArgumentDelimiter = ":"
)

// Path is an immutable permission path: an ordered sequence of non-empty
// segments with an optional free-form argument. Two paths with the same
// segments are the same path for matching purposes regardless of their
// arguments; the argument travels with a grant but does not distinguish it.
//
// The zero value is not a valid path; obtain one via Parse or MustParse.
type Path struct {
	segments    []string
	argument    string
	hasArgument bool
}

// Parse converts a permission path string into a Path.
//
// The string consists of dot-separated segments, optionally followed by
// ":" and a free-form argument. Everything after the first ":" is the
// argument verbatim, so arguments may themselves contain ":" or ".".
// Surrounding whitespace is trimmed. A trailing bare ":" yields an
// empty-but-present argument.
//
// Returns ErrInvalidPath when the input is empty or contains an empty
// segment (leading, trailing, or doubled delimiter).
func Parse(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, errors.Join(ErrInvalidPath, errors.New("path cannot be empty"))
	}

	var (
		argument    string
		hasArgument bool
	)
	if idx := strings.Index(s, ArgumentDelimiter); idx >= 0 {
		argument = s[idx+len(ArgumentDelimiter):]
		hasArgument = true
		s = s[:idx]
	}

	if s == "" {
		return Path{}, errors.Join(ErrInvalidPath, errors.New("path cannot consist of only an argument"))
	}

	segments := strings.Split(s, SegmentDelimiter)
	for i, segment := range segments {
		if segment == "" {
			return Path{}, errors.Join(ErrInvalidPath,
				fmt.Errorf("empty segment at position %d in %q", i, s))
		}
	}

	return Path{
		segments:    segments,
		argument:    argument,
		hasArgument: hasArgument,
	}, nil
}

// MustParse is like Parse but panics on malformed input.
// Intended for statically-known paths such as package-level declarations.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("permpath: parse %q: %v", s, err))
	}
	return p
}

// Covers reports whether p covers other: p's segments are a prefix of
// other's segments (p is other or an ancestor of it). Granting a covering
// path implicitly grants every path it covers.
func (p Path) Covers(other Path) bool {
	if len(p.segments) > len(other.segments) {
		return false
	}
	for i, segment := range p.segments {
		if other.segments[i] != segment {
			return false
		}
	}
	return true
}

// Specificity is the number of segments. Among several covering entries
// the one with the highest specificity wins.
func (p Path) Specificity() int {
	return len(p.segments)
}

// Key is the canonical identity of the path: its dotted segments without
// the argument. Paths with equal keys are the same path for matching.
func (p Path) Key() string {
	return strings.Join(p.segments, SegmentDelimiter)
}

// Argument returns the path's argument and whether one is present.
// A present argument may be the empty string.
func (p Path) Argument() (string, bool) {
	return p.argument, p.hasArgument
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// IsZero reports whether p is the invalid zero value.
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// String reconstructs the parseable form of the path, including the
// argument if present.
func (p Path) String() string {
	if !p.hasArgument {
		return p.Key()
	}
	return p.Key() + ArgumentDelimiter + p.argument
}

// Compare orders paths by specificity (fewer segments first), then by
// key. Arguments are ignored, matching path identity. The ordering is
// deterministic and intended for stable listings.
func Compare(a, b Path) int {
	if d := len(a.segments) - len(b.segments); d != 0 {
		return d
	}
	return strings.Compare(a.Key(), b.Key())
}
