// Package routes maps addressable paths to application views.
//
// # Overview
//
// Every screen of mealplan is reachable through a path such as "/saved-meals" or
// "/shopping-list/42". This package holds the route table that declares those paths
// and the resolver that turns a requested path into the matched entry plus the values
// bound to its placeholders.
//
// # Patterns
//
// A pattern is a slash separated template. Each segment is either a literal or a
// placeholder written as ":name":
//
//	/                         root, zero segments
//	/saved-meals              one literal
//	/shopping-list/:planId    literal followed by a placeholder
//
// Patterns are parsed once when the table is built. A pattern must start with "/",
// must not contain empty segments or a trailing slash, and each placeholder name must
// be an identifier that is unique within the pattern.
//
// # Table
//
// NewTable validates the declared entries and fails without returning a table when
// two entries share a name (DuplicateRouteNameError) or a byte-identical pattern
// (DuplicatePathPatternError). The table is immutable afterwards. Declaration order is
// match precedence.
//
// Shadows lists pairs where an earlier pattern matches everything a later one does,
// e.g. "/:id" declared before "/statistics". The later entry can never be reached.
// Shadowing is reported rather than rejected; callers decide whether to log it.
//
// # Resolution
//
// Resolve normalizes the requested target before matching:
//
//  1. "#fragment" and "?query" are split off and carried through unmodified
//  2. an empty path becomes "/"
//  3. the path is cleaned with httppath.Clean ("//", "." and ".." are removed)
//  4. a trailing slash is dropped
//  5. each segment is percent-decoded on its own, so "%2F" stays inside a value
//
// Entries are then tried in declaration order. A literal segment must equal the
// decoded segment exactly (case-sensitive); a placeholder matches any single
// non-empty segment. Segment counts must be equal. The first matching entry wins.
//
// Resolution never fails. An unmatched path, including one whose segments cannot be
// percent-decoded, produces a Resolution whose Found method returns false, which the
// caller renders as a fallback view.
//
// # Reverse routing
//
// Table.Path builds a concrete path for a named entry from parameter values, escaping
// each value as a single segment. It is the inverse of Resolve for every path the
// table can produce.
package routes
