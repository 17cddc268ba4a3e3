package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// segment is either a literal or, when param is set, a placeholder.
type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool { return s.param != "" }

// Pattern is a parsed path template.
type Pattern struct {
	raw      string
	segments []segment
}

// ParsePattern splits raw into literal and placeholder segments.
func ParsePattern(raw string) (Pattern, error) {
	if raw == "" || raw[0] != '/' {
		return Pattern{}, fmt.Errorf("%w %q: must start with /", ErrInvalidPattern, raw)
	}
	p := Pattern{raw: raw}
	if raw == "/" {
		return p, nil
	}
	if strings.HasSuffix(raw, "/") {
		return Pattern{}, fmt.Errorf("%w %q: trailing slash", ErrInvalidPattern, raw)
	}

	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw[1:], "/") {
		if part == "" {
			return Pattern{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPattern, raw)
		}
		if part[0] != ':' {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}
		name := part[1:]
		if !isIdentifier(name) {
			return Pattern{}, fmt.Errorf("%w %q: placeholder %q is not an identifier", ErrInvalidPattern, raw, part)
		}
		if _, dup := seen[name]; dup {
			return Pattern{}, fmt.Errorf("%w %q: placeholder %q repeated", ErrInvalidPattern, raw, name)
		}
		seen[name] = struct{}{}
		p.segments = append(p.segments, segment{param: name})
	}
	return p, nil
}

// String returns the pattern as declared.
func (p Pattern) String() string { return p.raw }

// Len returns the number of segments; the root pattern has none.
func (p Pattern) Len() int { return len(p.segments) }

// ParamNames returns the placeholder names in order of appearance,
// i.e. "/a/:x/b/:y" returns []string{"x", "y"}.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, s := range p.segments {
		if s.isParam() {
			names = append(names, s.param)
		}
	}
	return names
}

// match compares decoded path segments against the pattern.
func (p Pattern) match(segs []string) (Params, bool) {
	if len(segs) != len(p.segments) {
		return nil, false
	}
	var params Params
	for i, s := range p.segments {
		if s.isParam() {
			if segs[i] == "" {
				return nil, false
			}
			params = append(params, Param{Key: s.param, Value: segs[i]})
			continue
		}
		if s.literal != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// build interpolates params into the pattern. Every placeholder needs a non-empty
// value; extra params are ignored.
func (p Pattern) build(params Params) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}
	var b strings.Builder
	b.Grow(len(p.raw) + 16)
	for _, s := range p.segments {
		b.WriteByte('/')
		if !s.isParam() {
			b.WriteString(s.literal)
			continue
		}
		v := params.Get(s.param)
		if v == "" {
			return "", fmt.Errorf("%w %q for %q", ErrMissingParam, s.param, p.raw)
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}

// covers reports whether p matches every path that other matches.
func (p Pattern) covers(other Pattern) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if s.isParam() {
			continue
		}
		o := other.segments[i]
		if o.isParam() || o.literal != s.literal {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Param is a placeholder name and the value bound to it.
type Param struct {
	Key   string
	Value string
}

// Params holds extracted values in the order the placeholders appear in the pattern.
type Params []Param

// Get returns the named value or an empty string if not present.
func (ps Params) Get(name string) string {
	for i := range ps {
		if ps[i].Key == name {
			return ps[i].Value
		}
	}
	return ""
}

// Map returns the params as a map.
func (ps Params) Map() map[string]string {
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Key] = p.Value
	}
	return m
}
