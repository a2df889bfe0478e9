package yamlsrc

import "github.com/signadot/tony-format/go-ydom/dom"

// Pos is a position in the source, counting from 1.
type Pos struct {
	Line   int
	Column int
}

type loadOpts struct {
	tags      bool
	mem       *dom.Memory
	positions map[*dom.Ident]Pos
}

type Option func(*loadOpts)

// WithTags controls whether explicit tags in the source are stored on
// nodes. It is on by default.
func WithTags(v bool) Option {
	return func(o *loadOpts) { o.tags = v }
}

// WithMemory allocates every loaded node from mem instead of one fresh
// memory per document.
func WithMemory(mem *dom.Memory) Option {
	return func(o *loadOpts) { o.mem = mem }
}

// WithPositions records the source position of each loaded node in m.
func WithPositions(m map[*dom.Ident]Pos) Option {
	return func(o *loadOpts) { o.positions = m }
}
