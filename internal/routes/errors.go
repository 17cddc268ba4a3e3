package routes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern reports a path pattern or entry that cannot be parsed.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrMissingParam reports a placeholder without a value when building a path.
	ErrMissingParam = errors.New("missing route parameter")

	// ErrUnknownRoute reports a lookup by a name the table does not declare.
	ErrUnknownRoute = errors.New("unknown route")
)

// DuplicateRouteNameError is returned by NewTable when two entries share a name.
type DuplicateRouteNameError struct {
	Name   string
	First  int // index of the first declaration
	Second int // index of the conflicting declaration
}

func (e *DuplicateRouteNameError) Error() string {
	return fmt.Sprintf("duplicate route name %q (entries %d and %d)", e.Name, e.First, e.Second)
}

// DuplicatePathPatternError is returned by NewTable when two entries declare
// byte-identical patterns.
type DuplicatePathPatternError struct {
	Pattern string
	First   int
	Second  int
}

func (e *DuplicatePathPatternError) Error() string {
	return fmt.Sprintf("duplicate path pattern %q (entries %d and %d)", e.Pattern, e.First, e.Second)
}
