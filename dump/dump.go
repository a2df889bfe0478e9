// Package dump renders node trees as indented text for inspection and
// reports differences between trees.
//
// The output reads like block style YAML: containers reachable more
// than once, including through cycles, carry an anchor (&1) where first
// shown and are referenced (*1) afterwards. It is not meant as an
// emitter; scalars are quoted with Go syntax and tags are shown only
// when they differ from the implicit tag of the node's type.
package dump

import (
	"io"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/go-ydom/dom"
)

type Option func(*state)

// WithColors colors the output. A nil *Colors disables color.
func WithColors(c *Colors) Option {
	return func(s *state) { s.colors = c }
}

// Indent sets the number of spaces per level, 2 by default.
func Indent(n int) Option {
	return func(s *state) {
		if n > 0 {
			s.indent = n
		}
	}
}

type state struct {
	colors  *Colors
	indent  int
	shared  map[any]bool
	anchors map[any]string
	next    int
}

func newState(opts []Option) *state {
	s := &state{
		indent:  2,
		shared:  map[any]bool{},
		anchors: map[any]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dump writes n to w.
func Dump(n dom.Node, w io.Writer, opts ...Option) error {
	_, err := io.WriteString(w, String(n, opts...))
	return err
}

// String returns the dump of n, ending in a newline.
func String(n dom.Node, opts ...Option) string {
	s := newState(opts)
	s.scan(n, map[any]int{})
	var b strings.Builder
	h, more := s.head(n)
	if h != "" {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	if more {
		s.body(&b, n, 0)
	}
	return b.String()
}

// scan finds the containers reachable more than once.
func (s *state) scan(n dom.Node, seen map[any]int) {
	if !isContainer(n.Type()) {
		return
	}
	id := n.StorageID()
	seen[id]++
	if seen[id] > 1 {
		s.shared[id] = true
		return
	}
	for k, v := range n.Elements() {
		if k.Valid() {
			s.scan(k, seen)
		}
		s.scan(v, seen)
	}
}

// head renders the part of n shown on the line that introduces it, and
// reports whether n continues with an indented body.
func (s *state) head(n dom.Node) (string, bool) {
	t := n.Type()
	var parts []string
	if isContainer(t) && s.shared[n.StorageID()] {
		id := n.StorageID()
		if a, ok := s.anchors[id]; ok {
			return s.color(t, RefColor, "*"+a), false
		}
		s.next++
		a := strconv.Itoa(s.next)
		s.anchors[id] = a
		parts = append(parts, s.color(t, RefColor, "&"+a))
	}
	if tag := n.Tag(); tag != "" && tag != t.ImplicitTag() {
		parts = append(parts, s.color(t, TagColor, tag))
	}
	more := false
	switch t {
	case dom.UndefinedType:
		parts = append(parts, s.color(t, ValueColor, "<undefined>"))
	case dom.NullType:
		parts = append(parts, s.color(t, ValueColor, "null"))
	case dom.ScalarType:
		parts = append(parts, s.color(t, ValueColor, quote(n.Scalar())))
	case dom.SequenceType:
		if more = hasElements(n); !more {
			parts = append(parts, s.color(t, SepColor, "[]"))
		}
	case dom.MapType:
		if more = hasElements(n); !more {
			parts = append(parts, s.color(t, SepColor, "{}"))
		}
	}
	return strings.Join(parts, " "), more
}

func (s *state) body(b *strings.Builder, n dom.Node, depth int) {
	pad := strings.Repeat(" ", depth*s.indent)
	if n.IsSequence() {
		for v := range n.Values() {
			b.WriteString(pad)
			b.WriteString(s.color(dom.SequenceType, SepColor, "-"))
			s.entry(b, v, depth)
		}
		return
	}
	for k, v := range n.Pairs() {
		b.WriteString(pad)
		b.WriteString(s.key(k))
		b.WriteString(s.color(dom.MapType, SepColor, ":"))
		s.entry(b, v, depth)
	}
}

func (s *state) entry(b *strings.Builder, v dom.Node, depth int) {
	h, more := s.head(v)
	if h != "" {
		b.WriteByte(' ')
		b.WriteString(h)
	}
	b.WriteByte('\n')
	if more {
		s.body(b, v, depth+1)
	}
}

func (s *state) key(k dom.Node) string {
	if k.IsScalar() {
		return s.color(dom.MapType, KeyColor, quote(k.Scalar()))
	}
	return s.color(dom.MapType, KeyColor, k.String())
}

func (s *state) color(t dom.Type, a ColorAttr, v string) string {
	return s.colors.Color(t, a, v)
}

func isContainer(t dom.Type) bool {
	return t == dom.SequenceType || t == dom.MapType
}

func hasElements(n dom.Node) bool {
	for range n.Values() {
		return true
	}
	return false
}

// quote returns s, or s quoted when it could be mistaken for structure
// or for null.
func quote(s string) string {
	switch {
	case s == "", s == "null", s == "~", s != strings.TrimSpace(s):
		return strconv.Quote(s)
	case strings.ContainsAny(s, ":#,[]{}\"'\n\t"):
		return strconv.Quote(s)
	case strings.ContainsAny(s[:1], "&*!-?|>%@`"):
		return strconv.Quote(s)
	}
	return s
}
