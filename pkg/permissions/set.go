package permissions

import (
	"slices"

	"github.com/c-massie/PermissionsSystem-sub001/pkg/permpath"
)

// Set is a collection of permission entries owned by a single subject
// (a user, a group, or the registry's default set). Each entry is either
// a positive grant or an explicit negation, stored at the entry path's
// key, so a set holds at most one entry per path.
//
// Set is not safe for concurrent use; the registry's synchronized
// wrapper provides that at the boundary.
type Set struct {
	entries map[string]setEntry
}

type setEntry struct {
	path    permpath.Path
	negated bool
}

// NewSet creates an empty permission set.
func NewSet() *Set {
	return &Set{entries: make(map[string]setEntry)}
}

// Assign inserts a positive grant at the path, replacing any existing
// entry (grant or negation) at that exact path. Idempotent.
func (s *Set) Assign(p permpath.Path) {
	s.entries[p.Key()] = setEntry{path: p}
}

// AssignNegating inserts an explicit negation at the path, replacing any
// existing entry at that exact path. A negation denies the path and its
// descendants, overriding less specific grants held elsewhere.
func (s *Set) AssignNegating(p permpath.Path) {
	s.entries[p.Key()] = setEntry{path: p, negated: true}
}

// Revoke removes the entry at the exact path, grant or negation alike.
// Returns false when no entry was present; an absent entry is not an
// error.
func (s *Set) Revoke(p permpath.Path) bool {
	key := p.Key()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Match finds the most specific entry covering the queried path. The
// second return value is false when no entry covers it, which means the
// set holds no information about the path at all; the caller can then
// fall through to other sources. This is distinct from a match whose
// Negated flag is set, which is an explicit denial.
func (s *Set) Match(queried permpath.Path) (Match, bool) {
	var (
		best  setEntry
		found bool
	)
	for _, entry := range s.entries {
		if !entry.path.Covers(queried) {
			continue
		}
		if !found || entry.path.Specificity() > best.path.Specificity() {
			best = entry
			found = true
		}
	}
	if !found {
		return Match{}, false
	}

	arg, hasArg := best.path.Argument()
	return Match{
		Path:        best.path,
		Argument:    arg,
		HasArgument: hasArg,
		Negated:     best.negated,
	}, true
}

// IsEmpty reports whether the set holds no entries.
func (s *Set) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the set.
func (s *Set) Len() int {
	return len(s.entries)
}

// Paths returns the paths of all entries, negations included, in
// deterministic order (specificity, then key). Negating entries are not
// distinguished here; use Match to learn how an entry applies.
func (s *Set) Paths() []permpath.Path {
	paths := make([]permpath.Path, 0, len(s.entries))
	for _, entry := range s.entries {
		paths = append(paths, entry.path)
	}
	slices.SortFunc(paths, permpath.Compare)
	return paths
}

// strings returns the parseable string form of every entry, negation
// prefix included, in deterministic order. Used for diagnostics.
func (s *Set) strings() []string {
	entries := make([]setEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b setEntry) int {
		return permpath.Compare(a.path, b.path)
	})

	out := make([]string, len(entries))
	for i, entry := range entries {
		if entry.negated {
			out[i] = NegationPrefix + entry.path.String()
		} else {
			out[i] = entry.path.String()
		}
	}
	return out
}
