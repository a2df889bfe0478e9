package dom

import (
	"strconv"
	"strings"
)

// String renders x on one line in flow style, for debugging and test
// failure messages. It is not an emitter: nothing parses it back.
func (x Node) String() string {
	if x.n == nil {
		return "<invalid>"
	}
	var b strings.Builder
	writeFlow(&b, x.n, map[*data]bool{})
	return b.String()
}

func writeFlow(b *strings.Builder, n *Ident, active map[*data]bool) {
	d := n.d
	t := d.nodeType()
	if d.tagSet && d.tag != t.ImplicitTag() {
		b.WriteString(d.tag)
		b.WriteByte(' ')
	}
	switch t {
	case UndefinedType:
		b.WriteString("<undefined>")
		return
	case NullType:
		b.WriteString("null")
		return
	case ScalarType:
		b.WriteString(flowScalar(d.scalar))
		return
	}
	if active[d] {
		b.WriteString("<cycle>")
		return
	}
	active[d] = true
	defer delete(active, d)
	if t == SequenceType {
		b.WriteByte('[')
		for i, v := range d.seq {
			if i > 0 {
				b.WriteString(", ")
			}
			writeFlow(b, v, active)
		}
		b.WriteByte(']')
		return
	}
	b.WriteByte('{')
	i := 0
	for k, v := range n.Pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		writeFlow(b, k, active)
		b.WriteString(": ")
		writeFlow(b, v, active)
		i++
	}
	b.WriteByte('}')
}

func flowScalar(s string) string {
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, ",:[]{}#\"'\n") {
		return strconv.Quote(s)
	}
	return s
}
