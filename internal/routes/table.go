package routes

import (
	"fmt"
	"strings"
)

// Entry declares one addressable location. View is an opaque binding that the
// table hands back on a match and never inspects.
type Entry[V any] struct {
	Pattern string
	Name    string
	View    V
}

type route[V any] struct {
	entry   Entry[V]
	pattern Pattern
}

// Table is an ordered, immutable set of entries. Declaration order is match precedence.
type Table[V any] struct {
	routes []route[V]
	byName map[string]int
}

// NewTable validates entries and builds a table. On error no table is returned.
func NewTable[V any](entries ...Entry[V]) (*Table[V], error) {
	t := &Table[V]{
		routes: make([]route[V], 0, len(entries)),
		byName: make(map[string]int, len(entries)),
	}
	byPattern := make(map[string]int, len(entries))

	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d (%q) has no name", ErrInvalidPattern, i, e.Pattern)
		}
		if first, ok := t.byName[e.Name]; ok {
			return nil, &DuplicateRouteNameError{Name: e.Name, First: first, Second: i}
		}
		if first, ok := byPattern[e.Pattern]; ok {
			return nil, &DuplicatePathPatternError{Pattern: e.Pattern, First: first, Second: i}
		}
		p, err := ParsePattern(e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", e.Name, err)
		}
		t.byName[e.Name] = i
		byPattern[e.Pattern] = i
		t.routes = append(t.routes, route[V]{entry: e, pattern: p})
	}
	return t, nil
}

// MustTable is like NewTable but panics upon error.
func MustTable[V any](entries ...Entry[V]) *Table[V] {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the entries in declaration order.
func (t *Table[V]) Entries() []Entry[V] {
	out := make([]Entry[V], len(t.routes))
	for i, r := range t.routes {
		out[i] = r.entry
	}
	return out
}

// Len returns the number of entries.
func (t *Table[V]) Len() int { return len(t.routes) }

// Lookup returns the entry declared under name.
func (t *Table[V]) Lookup(name string) (Entry[V], bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry[V]{}, false
	}
	return t.routes[i].entry, true
}

// Path builds a concrete path for the named entry.
func (t *Table[V]) Path(name string, params ...Param) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownRoute, name)
	}
	return t.routes[i].pattern.build(params)
}

// Shadow describes an entry that can never match because an earlier one
// matches every path it would.
type Shadow struct {
	Earlier        string // name of the entry that wins
	EarlierPattern string
	Later          string // name of the unreachable entry
	LaterPattern   string
}

func (s Shadow) String() string {
	return fmt.Sprintf("%s (%s) shadows %s (%s)", s.Earlier, s.EarlierPattern, s.Later, s.LaterPattern)
}

// Shadows reports every shadowed entry, in declaration order of the later entry.
func (t *Table[V]) Shadows() []Shadow {
	var out []Shadow
	for j := 1; j < len(t.routes); j++ {
		later := t.routes[j]
		for i := 0; i < j; i++ {
			earlier := t.routes[i]
			if !earlier.pattern.covers(later.pattern) {
				continue
			}
			out = append(out, Shadow{
				Earlier:        earlier.entry.Name,
				EarlierPattern: earlier.entry.Pattern,
				Later:          later.entry.Name,
				LaterPattern:   later.entry.Pattern,
			})
			break
		}
	}
	return out
}
