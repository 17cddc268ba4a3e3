package routes

import (
	"net/url"
	"strings"

	"github.com/dimfeld/httppath"
)

// Resolution is the outcome of matching one navigation target.
type Resolution[V any] struct {
	Entry    *Entry[V] // nil when nothing matched
	Params   Params
	Path     string // normalized path that was matched
	RawQuery string // carried through unmodified
	Fragment string
}

// Found reports whether an entry matched.
func (r Resolution[V]) Found() bool { return r.Entry != nil }

// Name returns the matched entry's name, or "" when not found.
func (r Resolution[V]) Name() string {
	if r.Entry == nil {
		return ""
	}
	return r.Entry.Name
}

// Query parses RawQuery. Malformed pairs are dropped.
func (r Resolution[V]) Query() url.Values {
	q, _ := url.ParseQuery(r.RawQuery)
	return q
}

// Target reassembles path, query and fragment.
func (r Resolution[V]) Target() string {
	out := r.Path
	if r.RawQuery != "" {
		out += "?" + r.RawQuery
	}
	if r.Fragment != "" {
		out += "#" + r.Fragment
	}
	return out
}

// Resolver matches navigation targets against a table.
type Resolver[V any] struct {
	table *Table[V]
}

// NewResolver returns a Resolver over table.
func NewResolver[V any](table *Table[V]) *Resolver[V] {
	return &Resolver[V]{table: table}
}

// Table returns the table the resolver matches against.
func (r *Resolver[V]) Table() *Table[V] { return r.table }

// Resolve matches target and never fails; see the package documentation for the
// normalization rules.
func (r *Resolver[V]) Resolve(target string) Resolution[V] {
	path, rawQuery, fragment := splitTarget(target)
	segs, clean, ok := normalizePath(path)

	res := Resolution[V]{Path: clean, RawQuery: rawQuery, Fragment: fragment}
	if !ok || r == nil || r.table == nil {
		return res
	}

	for _, rt := range r.table.routes {
		params, matched := rt.pattern.match(segs)
		if !matched {
			continue
		}
		e := rt.entry
		res.Entry = &e
		res.Params = params
		return res
	}
	return res
}

func splitTarget(target string) (path, rawQuery, fragment string) {
	path = strings.TrimSpace(target)
	if i := strings.IndexByte(path, '#'); i >= 0 {
		fragment = path[i+1:]
		path = path[:i]
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		rawQuery = path[i+1:]
		path = path[:i]
	}
	return path, rawQuery, fragment
}

// normalizePath returns the decoded segments and the cleaned path. ok is false when
// a segment is not valid percent-encoding.
func normalizePath(path string) (segs []string, clean string, ok bool) {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	clean = httppath.Clean(path)
	if len(clean) > 1 && clean[len(clean)-1] == '/' {
		clean = clean[:len(clean)-1]
	}
	if clean == "/" {
		return nil, clean, true
	}

	raw := strings.Split(clean[1:], "/")
	segs = make([]string, len(raw))
	for i, s := range raw {
		decoded, err := url.PathUnescape(s)
		if err != nil {
			return nil, clean, false
		}
		segs[i] = decoded
	}
	return segs, clean, true
}
