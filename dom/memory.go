package dom

const chunkSize = 64

// Ident is one position in a document tree. Idents are allocated by a
// Memory, live as long as it does, and are only ever referred to by
// pointer: sequences and maps store Idents, not values.
type Ident struct {
	Ref
}

// Is reports whether n and o are the same identity.
func (n *Ident) Is(o *Ident) bool {
	return n == o
}

// Memory owns the nodes of a document. Nodes are never freed one at a
// time; the whole pool goes at once, so node graphs may contain cycles
// without any bookkeeping.
//
// A Memory is a holder: merging two holders makes them share a single
// pool.
type Memory struct {
	a *arena
}

type arena struct {
	parent   *arena
	chunks   [][]Ident
	n        int
	released bool
}

func NewMemory() *Memory {
	return &Memory{a: &arena{}}
}

func (a *arena) root() *arena {
	r := a
	for r.parent != nil {
		r = r.parent
	}
	for a != r {
		next := a.parent
		a.parent = r
		a = next
	}
	return r
}

func (m *Memory) arena() *arena {
	r := m.a.root()
	m.a = r
	return r
}

// CreateNode allocates a new undefined node owned by m.
func (m *Memory) CreateNode() *Ident {
	a := m.arena()
	if a.released {
		panic(ErrReleased)
	}
	last := len(a.chunks) - 1
	if last < 0 || len(a.chunks[last]) == cap(a.chunks[last]) {
		a.chunks = append(a.chunks, make([]Ident, 0, chunkSize))
		last++
	}
	// appending within capacity keeps earlier element addresses stable.
	c := &a.chunks[last]
	*c = append(*c, Ident{Ref: Ref{d: newData()}})
	a.n++
	return &(*c)[len(*c)-1]
}

// Merge moves every node owned by o into m's pool. Afterwards m and o,
// and any holder previously merged into either, share one pool.
func (m *Memory) Merge(o *Memory) {
	if o == nil || o == m {
		return
	}
	a, b := m.arena(), o.arena()
	if a == b {
		return
	}
	if a.released || b.released {
		panic(ErrReleased)
	}
	a.chunks = append(a.chunks, b.chunks...)
	a.n += b.n
	b.chunks = nil
	b.n = 0
	b.parent = a
	o.a = a
}

// Shares reports whether m and o allocate from the same pool.
func (m *Memory) Shares(o *Memory) bool {
	return o != nil && m.arena() == o.arena()
}

// Len returns the number of nodes the pool owns.
func (m *Memory) Len() int {
	return m.arena().n
}

// Release drops the pool. Nodes created from it must not be used
// afterwards and further allocation panics.
func (m *Memory) Release() {
	a := m.arena()
	a.chunks = nil
	a.n = 0
	a.released = true
}
