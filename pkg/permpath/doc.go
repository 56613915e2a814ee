// Package permpath provides parsing and matching of hierarchical
// permission paths: dot-separated segment strings with an optional
// trailing argument.
//
// A path like "first.second.third" names a node in a permission
// hierarchy. A path covers itself and every descendant, so an entry at
// "first.second" implicitly applies to "first.second.third". When several
// entries cover a queried path, the most specific one (most segments)
// wins.
//
// An argument is free-form text attached to a grant after ":":
//
//	p, err := permpath.Parse("first.second:someArg")
//	arg, ok := p.Argument() // "someArg", true
//
// Arguments do not participate in path identity or matching; two paths
// with the same segments are the same path.
//
// Basic usage:
//
//	granted := permpath.MustParse("first.second")
//	queried := permpath.MustParse("first.second.third")
//
//	granted.Covers(queried) // true
//	queried.Covers(granted) // false
//	granted.Specificity()   // 2
//
// Parse is strict about segment syntax: empty input, a leading or
// trailing dot, or a doubled dot all yield ErrInvalidPath.
package permpath
